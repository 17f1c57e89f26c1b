package names

import "strings"

// Normalized is the outcome of query normalization. Original is the
// lower-cased literal query; Term is the canonical search term (the formal
// name when the query resolved to one, the original otherwise). IsName is
// true only on an exact hit against a formal name or one of its
// diminutives, and raises the name-field boosts in the query builder.
type Normalized struct {
	Original string
	Term     string
	IsName   bool
}

// Normalize resolves a raw query against the table. Pure and
// deterministic: same input, same output.
//
// Resolution order: exact diminutive -> formal; exact formal -> itself;
// formal-name prefix -> the formal name as a suggestion (IsName stays
// false, the literal query is still searched); anything else passes
// through unchanged.
func (t *Table) Normalize(query string) Normalized {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Normalized{}
	}

	if formal, ok := t.reverse[q]; ok {
		return Normalized{Original: q, Term: formal, IsName: true}
	}
	if _, ok := t.forward[q]; ok {
		return Normalized{Original: q, Term: q, IsName: true}
	}
	for _, formal := range t.formals {
		if strings.HasPrefix(formal, q) {
			return Normalized{Original: q, Term: formal}
		}
	}
	return Normalized{Original: q, Term: q}
}
