package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/wizerservices/tripz-api/internal/logger"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// placesSearcher is the slice of the Maps client PlacesProvider needs.
type placesSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// PlacesProvider implements SearchProvider with Google Places text search.
// Results are venue names and addresses rather than web snippets.
type PlacesProvider struct {
	client placesSearcher
}

// NewPlacesProvider creates a Places search provider with the given API key.
func NewPlacesProvider(apiKey string) (*PlacesProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesProvider{client: client}, nil
}

// Search runs a text search and renders one line per place.
func (p *PlacesProvider) Search(ctx context.Context, query string) (string, error) {
	resp, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return "", providerError("places", "search", 0, err)
	}

	lines := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		lines = append(lines, renderPlace(r))
	}

	logger.Get().Debug("places search complete",
		zap.String("query", query),
		zap.Int("results", len(lines)),
	)
	return strings.Join(lines, "\n"), nil
}

func renderPlace(r maps.PlacesSearchResult) string {
	line := r.Name
	if r.FormattedAddress != "" {
		line += " - " + r.FormattedAddress
	}
	if r.Rating > 0 {
		line += fmt.Sprintf(" (rated %.1f from %d reviews)", r.Rating, r.UserRatingsTotal)
	}
	return line
}
