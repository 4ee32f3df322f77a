package models

import (
	"encoding/json"
	"fmt"
)

// RecommendationItem is a single named suggestion produced by the model.
type RecommendationItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecommendationList is an ordered list of items published under a
// topic-specific key such as "list_of_places". The number of items is a
// prompt-level hint only and is never enforced.
type RecommendationList struct {
	Key   string
	Items []RecommendationItem
}

// MarshalJSON renders the list as {"<Key>": [...]}.
func (l RecommendationList) MarshalJSON() ([]byte, error) {
	if l.Key == "" {
		return nil, fmt.Errorf("recommendation list has no key")
	}
	items := l.Items
	if items == nil {
		items = []RecommendationItem{}
	}
	return json.Marshal(map[string][]RecommendationItem{l.Key: items})
}

// SearchQuery is the topic and destination a search-backed pipeline
// formats into a single query string.
type SearchQuery struct {
	Topic       string
	Destination string
}
