package search

import (
	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/domain/names"
)

// Request is one fully-resolved search request: the query term after
// variant normalization, optional nickname filters, the caller scope, and
// paging. It is built by the usecase layer and translated by the
// repository into a backend query.
type Request struct {
	Term       names.Normalized
	Room       string
	Discipline string
	Scope      domain.Scope
	From       int
	Size       int
}
