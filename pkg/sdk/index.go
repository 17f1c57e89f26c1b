package sdk

import (
	"context"
	"net/http"
)

// ReindexSummary reports the outcome of a full reindex.
type ReindexSummary struct {
	Status    string `json:"status"`
	Attempted int    `json:"attempted"`
	Indexed   int    `json:"indexed"`
	Failed    int    `json:"failed"`
}

// InitIndex creates the search index if it does not exist. Admin only.
func (c *Client) InitIndex(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/search/init", nil, nil, nil)
}

// RecreateIndex drops and recreates the search index. Admin only.
// All documents are lost until the next reindex.
func (c *Client) RecreateIndex(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/search/recreate", nil, nil, nil)
}

// IndexAllPlayers reindexes every player from the primary store. Admin only.
func (c *Client) IndexAllPlayers(ctx context.Context) (ReindexSummary, error) {
	var sum ReindexSummary
	if err := c.do(ctx, http.MethodPost, "/api/v1/search/index-players", nil, nil, &sum); err != nil {
		return ReindexSummary{}, err
	}
	return sum, nil
}

// IndexPlayer reindexes a single player by id. The caller must own the
// player's fund or hold the admin role.
func (c *Client) IndexPlayer(ctx context.Context, playerID string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/search/index-player/"+playerID, nil, nil, nil)
}
