package index

import (
	"encoding/json"
	"fmt"

	"github.com/fundguard/playersearch/internal/domain/names"
)

// Analyzer and filter names referenced by the query builder; keep in sync
// with repository/search.
const (
	NameAnalyzer         = "names_analyzer"
	TextAnalyzer         = "text_analyzer"
	PrefixAnalyzer       = "prefix_analyzer"
	PrefixSearchAnalyzer = "prefix_search_analyzer"
)

// BuildMapping renders the index settings+mappings body. The synonym
// filter is generated from the name variant table at index-creation time;
// recreating the index is the only way to pick up table changes.
func BuildMapping(table *names.Table) ([]byte, error) {
	body := map[string]any{
		"settings": map[string]any{
			"analysis": map[string]any{
				"filter": map[string]any{
					"russian_stop": map[string]any{
						"type":      "stop",
						"stopwords": "_russian_",
					},
					"russian_stemmer": map[string]any{
						"type":     "stemmer",
						"language": "russian",
					},
					"name_synonyms": map[string]any{
						"type":     "synonym",
						"synonyms": table.SynonymRules(),
					},
					"name_edge_ngram": map[string]any{
						"type":     "edge_ngram",
						"min_gram": 2,
						"max_gram": 20,
					},
				},
				"analyzer": map[string]any{
					NameAnalyzer: map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "name_synonyms", "russian_stop", "russian_stemmer"},
					},
					TextAnalyzer: map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "russian_stop", "russian_stemmer"},
					},
					PrefixAnalyzer: map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "name_edge_ngram"},
					},
					PrefixSearchAnalyzer: map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase"},
					},
				},
			},
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":          map[string]any{"type": "keyword"},
				"full_name":   nameField(),
				"first_name":  nameField(),
				"last_name":   nameField(),
				"middle_name": nameField(),
				"birth_date":  map[string]any{"type": "date"},
				"description": map[string]any{"type": "text", "analyzer": TextAnalyzer},
				"fund_id":     map[string]any{"type": "keyword"},
				"fund_name":   textField(),
				"nicknames": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"nickname":   nameField(),
						"room":       map[string]any{"type": "keyword"},
						"discipline": map[string]any{"type": "keyword"},
					},
				},
				"contacts": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"type":  map[string]any{"type": "keyword"},
						"value": textField(),
					},
				},
				"locations": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"country": textField(),
						"city":    textField(),
						"address": map[string]any{"type": "text", "analyzer": TextAnalyzer},
					},
				},
				"payment_methods": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"type":  map[string]any{"type": "keyword"},
						"value": map[string]any{"type": "keyword"},
					},
				},
				"social_profiles": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"network": map[string]any{"type": "keyword"},
						"handle":  textField(),
					},
				},
				// Rendering only, never matched.
				"display":          map[string]any{"type": "text", "index": false},
				"cases_count":      map[string]any{"type": "integer"},
				"latest_case_date": map[string]any{"type": "date"},
			},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal index mapping: %w", err)
	}
	return data, nil
}

// nameField is a language-analyzed text field with raw and edge-ngram
// prefix sub-fields.
func nameField() map[string]any {
	return map[string]any{
		"type":     "text",
		"analyzer": NameAnalyzer,
		"fields": map[string]any{
			"raw": map[string]any{"type": "keyword"},
			"prefix": map[string]any{
				"type":            "text",
				"analyzer":        PrefixAnalyzer,
				"search_analyzer": PrefixSearchAnalyzer,
			},
		},
	}
}

// textField is a language-analyzed text field with a raw sub-field.
func textField() map[string]any {
	return map[string]any{
		"type":     "text",
		"analyzer": TextAnalyzer,
		"fields": map[string]any{
			"raw": map[string]any{"type": "keyword"},
		},
	}
}
