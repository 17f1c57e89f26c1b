package search

import (
	"encoding/json"
	"fmt"

	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	"github.com/fundguard/playersearch/internal/es"
)

// Field boosts. Full-name hits outrank discrete-name hits, which outrank
// nickname hits; contact and location hits rank unweighted.
const (
	fullNameBoost  = 4.0
	nameBoost      = 3.0
	nicknameBoost  = 2.0
	exactNameBoost = 5.0
)

// BuildQuery translates normalized input plus filters into the backend
// request body. All match clauses are disjunctive (a hit on any single
// field surfaces the player, scored by summation); room/discipline and the
// tenant scope are hard filters.
func BuildQuery(index string, p domsearch.Request) (*es.Query, error) {
	// Fuzzy clauses search the resolved formal only when the input itself
	// is a known name. A formal-prefix suggestion keeps the typed term so
	// contacts, cities, and nicknames literally containing it still match;
	// the suggested formal surfaces through the prefix clause below.
	broadTerm := p.Term.Term
	if !p.Term.IsName {
		broadTerm = p.Term.Original
	}

	should := []any{
		// Generic weighted fuzzy clause over the flat fields. One fixed
		// prefix character bounds the fuzzy expansion cost.
		map[string]any{
			"multi_match": map[string]any{
				"query": broadTerm,
				"fields": []string{
					fmt.Sprintf("full_name^%v", fullNameBoost),
					fmt.Sprintf("first_name^%v", nameBoost),
					fmt.Sprintf("last_name^%v", nameBoost),
					"middle_name",
					"description",
				},
				"type":          "best_fields",
				"fuzziness":     "AUTO",
				"prefix_length": 1,
			},
		},
		nestedMatch("nicknames", "nicknames.nickname", broadTerm, nicknameBoost, true),
		nestedMatch("contacts", "contacts.value", broadTerm, 0, false),
		nestedMatch("locations", "locations.city", broadTerm, 0, false),
		// Incremental-search clause: edge-ngram prefixes of names and
		// nicknames match the literal query while the user is still typing.
		map[string]any{
			"multi_match": map[string]any{
				"query":  p.Term.Original,
				"fields": []string{"full_name.prefix", "first_name.prefix", "last_name.prefix"},
			},
		},
		nestedMatch("nicknames", "nicknames.nickname.prefix", p.Term.Original, 0, false),
	}

	if p.Term.IsName {
		should = append(should,
			map[string]any{
				"term": map[string]any{
					"first_name.raw": map[string]any{
						"value": p.Term.Term,
						"boost": exactNameBoost,
					},
				},
			},
			map[string]any{
				"match_phrase": map[string]any{
					"full_name": map[string]any{
						"query": p.Term.Term,
						"boost": exactNameBoost,
					},
				},
			},
		)
	}

	var filters []any
	if !p.Scope.Admin() {
		filters = append(filters, map[string]any{
			"term": map[string]any{"fund_id": p.Scope.FundID().String()},
		})
	}
	if f := nicknameFilter(p.Room, p.Discipline); f != nil {
		filters = append(filters, f)
	}

	boolQuery := map[string]any{
		"should":               should,
		"minimum_should_match": 1,
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"sort": []any{
			map[string]any{"_score": map[string]any{"order": "desc"}},
		},
		"from": p.From,
		"size": p.Size,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}
	return &es.Query{Index: index, Body: data}, nil
}

// nestedMatch builds a nested match clause on a single field.
func nestedMatch(path, field, term string, boost float64, fuzzy bool) map[string]any {
	match := map[string]any{"query": term}
	if boost > 0 {
		match["boost"] = boost
	}
	if fuzzy {
		match["fuzziness"] = "AUTO"
		match["prefix_length"] = 1
	}
	return map[string]any{
		"nested": map[string]any{
			"path":  path,
			"query": map[string]any{"match": map[string]any{field: match}},
		},
	}
}

// nicknameFilter builds one nested filter where room and discipline must
// hold inside the same nickname element. Two separate nested filters would
// wrongly accept a player whose room and discipline come from different
// nicknames.
func nicknameFilter(room, discipline string) map[string]any {
	var must []any
	if room != "" {
		must = append(must, map[string]any{"term": map[string]any{"nicknames.room": room}})
	}
	if discipline != "" {
		must = append(must, map[string]any{"term": map[string]any{"nicknames.discipline": discipline}})
	}
	if len(must) == 0 {
		return nil
	}
	return map[string]any{
		"nested": map[string]any{
			"path":  "nicknames",
			"query": map[string]any{"bool": map[string]any{"must": must}},
		},
	}
}
