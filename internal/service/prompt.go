package service

import (
	"fmt"
	"strings"

	"github.com/wizerservices/tripz-api/internal/config"
	"github.com/wizerservices/tripz-api/internal/models"
	"github.com/wizerservices/tripz-api/internal/schema"
)

// NoSearchResults stands in for the search text when the provider finds nothing.
const NoSearchResults = "No search results found."

// FormatTopicQuery renders the topic's search query for a destination.
func FormatTopicQuery(prompt config.TopicPrompt, q models.SearchQuery) (string, error) {
	query, err := config.RenderPrompt(prompt.Query, map[string]interface{}{
		"Destination": q.Destination,
	})
	if err != nil {
		return "", fmt.Errorf("render %s query: %w", q.Topic, err)
	}
	return query, nil
}

// FormatTopicPrompt merges the topic instruction, destination, raw search
// text and the schema's format instructions into one prompt. Values are
// inserted verbatim.
func FormatTopicPrompt(prompt config.TopicPrompt, destination, searchResults string, s *schema.Schema) (string, error) {
	if strings.TrimSpace(searchResults) == "" {
		searchResults = NoSearchResults
	}
	out, err := config.RenderPrompt(prompt.Instruction, map[string]interface{}{
		"Destination":        destination,
		"SearchResults":      searchResults,
		"FormatInstructions": s.FormatInstructions(),
	})
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", s.Name, err)
	}
	return out, nil
}

// FormatItineraryPrompt builds the budget itinerary prompt from trip
// constraints alone.
func FormatItineraryPrompt(prompt config.ItineraryPrompt, req models.TripRequest, s *schema.Schema) (string, error) {
	out, err := config.RenderPrompt(prompt.Instruction, map[string]interface{}{
		"FromCity":           req.FromCity,
		"DestinationCity":    req.DestinationCity,
		"NumDays":            req.NumDays,
		"MaxBudget":          req.MaxBudget,
		"Interests":          req.Interests,
		"FormatInstructions": s.FormatInstructions(),
	})
	if err != nil {
		return "", fmt.Errorf("render itinerary prompt: %w", err)
	}
	return out, nil
}
