package testutil

import (
	"testing"

	"github.com/wizerservices/tripz-api/internal/config"
)

// ParisPlacesJSON is a valid /getplaces model answer for Paris.
const ParisPlacesJSON = `{"list_of_places":[{"name":"Eiffel Tower","description":"Iconic iron tower"},{"name":"Louvre Museum","description":"World's largest art museum"}]}`

// GoaTripPlanJSON is a valid itinerary model answer for a Delhi to Goa trip.
const GoaTripPlanJSON = `{"travel_mode":"Train","hotel_type":"Budget","location_details":"Stay near Calangute beach","food_recommendation":"Beach shacks and local Goan thalis","activities_recommendation":"Baga beach, Fort Aguada, Dudhsagar falls"}`

// TestConfig returns a config carrying the embedded default prompts.
func TestConfig(t testing.TB) *config.Config {
	t.Helper()
	prompts, err := config.DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts error: %v", err)
	}
	return &config.Config{
		EnvVars: config.EnvVars{
			Port:           "8080",
			LLMProvider:    config.LLMProviderGemini,
			GoogleAPIKey:   "test-google-key",
			SearchProvider: config.SearchProviderSerper,
			SerperAPIKey:   "test-serper-key",
		},
		Prompts: prompts,
	}
}
