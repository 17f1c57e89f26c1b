package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Player is one ranked hit from the unified search.
type Player struct {
	ID             string     `json:"id"`
	Score          float64    `json:"score"`
	FullName       string     `json:"full_name"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	MiddleName     string     `json:"middle_name,omitempty"`
	FundName       string     `json:"fund_name,omitempty"`
	Nicknames      []Nickname `json:"nicknames,omitempty"`
	Display        []string   `json:"display,omitempty"`
	CasesCount     int        `json:"cases_count"`
	LatestCaseDate *time.Time `json:"latest_case_date,omitempty"`
}

// Nickname is one room account attached to a hit.
type Nickname struct {
	Nickname   string `json:"nickname"`
	Room       string `json:"room,omitempty"`
	Discipline string `json:"discipline,omitempty"`
}

// Page is one page of search hits.
type Page struct {
	Players      []Player `json:"players"`
	TotalPlayers int      `json:"total_players"`
}

// SearchOption narrows or pages a search.
type SearchOption func(url.Values)

// WithRoom keeps only players with a nickname in the given room.
func WithRoom(room string) SearchOption {
	return func(q url.Values) {
		q.Set("room", room)
	}
}

// WithDiscipline keeps only players with a nickname in the given discipline.
func WithDiscipline(discipline string) SearchOption {
	return func(q url.Values) {
		q.Set("discipline", discipline)
	}
}

// WithPaging sets the result window. The server caps limit.
func WithPaging(skip, limit int) SearchOption {
	return func(q url.Values) {
		q.Set("skip", strconv.Itoa(skip))
		q.Set("limit", strconv.Itoa(limit))
	}
}

// Search runs a unified search for the query term.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) (Page, error) {
	q := url.Values{}
	q.Set("query", query)
	for _, o := range opts {
		o(q)
	}

	var page Page
	if err := c.do(ctx, http.MethodGet, "/api/v1/search/unified", q, nil, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}
