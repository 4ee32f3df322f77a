package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/wizerservices/tripz-api/internal/ai"
	"github.com/wizerservices/tripz-api/internal/models"
	"github.com/wizerservices/tripz-api/internal/service"
	"github.com/wizerservices/tripz-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, search ai.SearchProvider, model ai.LanguageModel) *gin.Engine {
	t.Helper()
	svc, err := service.NewRecommendationService(testutil.TestConfig(t), search, model)
	if err != nil {
		t.Fatalf("NewRecommendationService error: %v", err)
	}
	handler := NewRecommendationHandler(svc)

	r := gin.New()
	for _, topic := range service.Topics {
		r.GET(topic.Path, handler.GetTopic(topic))
	}
	r.GET("/getreccomendations", handler.GetTripPlan)
	return r
}

func serve(r *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %s", w.Body.String())
	}
	return body
}

func TestGetPlaces_Paris(t *testing.T) {
	search := testutil.StaticSearch("Eiffel Tower\nLouvre Museum")
	r := newRouter(t, search, testutil.StaticModel(testutil.ParisPlacesJSON))

	w := serve(r, "/getplaces?destination_city=Paris")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if w.Body.String() != testutil.ParisPlacesJSON {
		t.Errorf("body = %s, want %s", w.Body.String(), testutil.ParisPlacesJSON)
	}
	if q := search.Queries(); len(q) != 1 || q[0] != "Top 10 places to visit in Paris" {
		t.Errorf("queries = %v", q)
	}
}

func TestGetFineDining_Path(t *testing.T) {
	answer := `{"list_of_fine_dining":[{"name":"Le Cinq","description":"Three Michelin stars"}]}`
	r := newRouter(t, testutil.StaticSearch("results"), testutil.StaticModel(answer))

	w := serve(r, "/getfineDining?destination_city=Paris")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if w.Body.String() != answer {
		t.Errorf("body = %s, want %s", w.Body.String(), answer)
	}
}

func TestGetTopic_MissingDestination(t *testing.T) {
	search := testutil.StaticSearch("results")
	r := newRouter(t, search, testutil.StaticModel(testutil.ParisPlacesJSON))

	w := serve(r, "/getcafes")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeBadRequest {
		t.Errorf("code = %q, want %q", body.Code, models.ErrCodeBadRequest)
	}
	if search.Calls() != 0 {
		t.Errorf("search calls = %d, want 0", search.Calls())
	}
}

func TestGetTopic_ProviderUnavailable(t *testing.T) {
	search := &testutil.MockSearchProvider{
		SearchFunc: func(ctx context.Context, query string) (string, error) {
			return "", &ai.ProviderError{Provider: "serper", Op: "search", StatusCode: 401, Err: context.Canceled}
		},
	}
	r := newRouter(t, search, testutil.StaticModel(testutil.ParisPlacesJSON))

	w := serve(r, "/getfoods?destination_city=Tokyo")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeProviderUnavailable {
		t.Errorf("code = %q, want %q", body.Code, models.ErrCodeProviderUnavailable)
	}
}

func TestGetTopic_InvalidModelOutput(t *testing.T) {
	r := newRouter(t, testutil.StaticSearch("results"), testutil.StaticModel("Sorry, I cannot help with that."))

	w := serve(r, "/getactivities?destination_city=Rome")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeInvalidModelOutput {
		t.Errorf("code = %q, want %q", body.Code, models.ErrCodeInvalidModelOutput)
	}
}

func TestGetTopic_Timeout(t *testing.T) {
	model := &testutil.MockLanguageModel{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", &ai.ProviderError{Provider: "gemini", Op: "generate", Err: context.DeadlineExceeded}
		},
	}
	r := newRouter(t, testutil.StaticSearch("results"), model)

	w := serve(r, "/getstreetfood?destination_city=Bangkok")
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", w.Code, http.StatusGatewayTimeout)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeTimeout {
		t.Errorf("code = %q, want %q", body.Code, models.ErrCodeTimeout)
	}
}

func TestGetTripPlan_Goa(t *testing.T) {
	search := testutil.StaticSearch("should not be used")
	model := testutil.StaticModel(testutil.GoaTripPlanJSON)
	r := newRouter(t, search, model)

	w := serve(r, "/getreccomendations?from_city=Delhi&destination_city=Goa&num_days=3&interests=beach&max_budget=15000")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if w.Body.String() != testutil.GoaTripPlanJSON {
		t.Errorf("body = %s, want %s", w.Body.String(), testutil.GoaTripPlanJSON)
	}
	if search.Calls() != 0 {
		t.Errorf("search calls = %d, want 0", search.Calls())
	}
	if model.Calls() != 1 {
		t.Errorf("model calls = %d, want 1", model.Calls())
	}
}

func TestGetTripPlan_BadParams(t *testing.T) {
	cases := map[string]string{
		"missing from":       "/getreccomendations?destination_city=Goa&num_days=3&interests=beach&max_budget=15000",
		"missing days":       "/getreccomendations?from_city=Delhi&destination_city=Goa&interests=beach&max_budget=15000",
		"missing interests":  "/getreccomendations?from_city=Delhi&destination_city=Goa&num_days=3&max_budget=15000",
		"blank interests":    "/getreccomendations?from_city=Delhi&destination_city=Goa&num_days=3&interests=%20&max_budget=15000",
		"non-numeric days":   "/getreccomendations?from_city=Delhi&destination_city=Goa&num_days=three&interests=beach&max_budget=15000",
		"non-numeric budget": "/getreccomendations?from_city=Delhi&destination_city=Goa&num_days=3&interests=beach&max_budget=cheap",
	}

	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			model := testutil.StaticModel(testutil.GoaTripPlanJSON)
			r := newRouter(t, testutil.StaticSearch(""), model)

			w := serve(r, target)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if body := decodeError(t, w); body.Code != models.ErrCodeBadRequest {
				t.Errorf("code = %q, want %q", body.Code, models.ErrCodeBadRequest)
			}
			if model.Calls() != 0 {
				t.Errorf("model calls = %d, want 0", model.Calls())
			}
		})
	}
}

func TestGetTripPlan_InvalidModelOutput(t *testing.T) {
	r := newRouter(t, testutil.StaticSearch(""), testutil.StaticModel(`{"travel_mode":"Train"}`))

	w := serve(r, "/getreccomendations?from_city=Delhi&destination_city=Goa&num_days=3&interests=beach&max_budget=15000")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeInvalidModelOutput {
		t.Errorf("code = %q, want %q", body.Code, models.ErrCodeInvalidModelOutput)
	}
}
