// Package names holds the formal-name/diminutive knowledge base and the
// query normalizer built on top of it. The table is assembled once at
// process start and is immutable afterwards; concurrent reads need no
// synchronization.
package names

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is the bidirectional formal ↔ diminutive mapping.
// All keys and values are lower-cased on construction.
type Table struct {
	forward map[string][]string // formal -> variants, declared order kept
	reverse map[string]string   // variant -> formal
	formals []string            // sorted, for deterministic iteration
}

// New builds a Table from a formal -> variants mapping. Input casing is
// normalized; a variant mapped to two different formals is an error since
// the reverse lookup would be ambiguous.
func New(variants map[string][]string) (*Table, error) {
	t := &Table{
		forward: make(map[string][]string, len(variants)),
		reverse: make(map[string]string),
	}

	for formal, vs := range variants {
		formal = strings.ToLower(strings.TrimSpace(formal))
		if formal == "" {
			return nil, fmt.Errorf("empty formal name")
		}
		kept := make([]string, 0, len(vs))
		for _, v := range vs {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" || v == formal {
				continue
			}
			if prev, ok := t.reverse[v]; ok && prev != formal {
				return nil, fmt.Errorf("variant %q maps to both %q and %q", v, prev, formal)
			}
			if _, ok := t.reverse[v]; !ok {
				kept = append(kept, v)
			}
			t.reverse[v] = formal
		}
		t.forward[formal] = kept
		t.formals = append(t.formals, formal)
	}

	sort.Strings(t.formals)
	return t, nil
}

// MustNew is New for static tables; it panics on a malformed mapping.
func MustNew(variants map[string][]string) *Table {
	t, err := New(variants)
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a formal -> variants mapping from a YAML file and merges it
// over the default table. Entries in the file win on conflict.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read name variants %s: %w", path, err)
	}

	var fromFile map[string][]string
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parse name variants %s: %w", path, err)
	}

	merged := make(map[string][]string, len(defaultVariants)+len(fromFile))
	for f, vs := range defaultVariants {
		merged[f] = vs
	}
	for f, vs := range fromFile {
		merged[strings.ToLower(f)] = vs
	}

	t, err := New(merged)
	if err != nil {
		return nil, fmt.Errorf("invalid name variants %s: %w", path, err)
	}
	return t, nil
}

// Default returns the built-in table.
func Default() *Table {
	return MustNew(defaultVariants)
}

// Formal resolves a diminutive to its formal name.
func (t *Table) Formal(variant string) (string, bool) {
	f, ok := t.reverse[strings.ToLower(variant)]
	return f, ok
}

// IsFormal reports whether the term is a known formal name.
func (t *Table) IsFormal(term string) bool {
	_, ok := t.forward[strings.ToLower(term)]
	return ok
}

// Variants returns the diminutives of a formal name.
func (t *Table) Variants(formal string) []string {
	return t.forward[strings.ToLower(formal)]
}

// Formals returns all formal names in sorted order.
func (t *Table) Formals() []string {
	return t.formals
}

// SynonymRules renders the table as analyzer synonym rules: one
// contracting rule "v1,v2,…,f => f" per formal name, followed by an
// expanding rule "f => f,v" per (formal, variant) pair. The search index
// is created with exactly these rules; recall for diminutive queries
// depends on both directions being present.
func (t *Table) SynonymRules() []string {
	rules := make([]string, 0, len(t.formals)*2)
	for _, f := range t.formals {
		vs := t.forward[f]
		if len(vs) == 0 {
			continue
		}
		rules = append(rules, strings.Join(append(append([]string{}, vs...), f), ",")+" => "+f)
		for _, v := range vs {
			rules = append(rules, f+" => "+f+","+v)
		}
	}
	return rules
}
