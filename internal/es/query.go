package es

import "encoding/json"

// Query is a fully-built search request body with pagination.
// Body is the complete request ("query", "sort", "from", "size" included);
// the builder in repository/search owns its shape.
type Query struct {
	Index string
	Body  []byte
}

// Result is the output of a search operation.
type Result struct {
	Total int
	Hits  []Hit
}

// Hit is a single document hit.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}
