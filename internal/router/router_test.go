package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/wizerservices/tripz-api/internal/config"
	"github.com/wizerservices/tripz-api/internal/service"
	"github.com/wizerservices/tripz-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	search := testutil.StaticSearch("results")
	model := testutil.StaticModel(testutil.ParisPlacesJSON)
	svc, err := service.NewRecommendationService(cfg, search, model)
	if err != nil {
		t.Fatalf("NewRecommendationService error: %v", err)
	}
	return SetupRouter(t.Context(), cfg, svc)
}

func TestSetupRouter_Ping(t *testing.T) {
	r := newTestRouter(t, testutil.TestConfig(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry X-Request-ID")
	}
}

func TestSetupRouter_RegistersEveryRoute(t *testing.T) {
	r := newTestRouter(t, testutil.TestConfig(t))

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /ping",
		"GET /getplaces",
		"GET /getfoods",
		"GET /getactivities",
		"GET /getcafes",
		"GET /getfineDining",
		"GET /getstreetfood",
		"GET /getreccomendations",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %s is not registered", route)
		}
	}
}

func TestSetupRouter_ServesPlaces(t *testing.T) {
	r := newTestRouter(t, testutil.TestConfig(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/getplaces?destination_city=Paris", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != testutil.ParisPlacesJSON {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSetupRouter_PermissiveCORS(t *testing.T) {
	r := newTestRouter(t, testutil.TestConfig(t))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://trips.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://trips.example.org" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want true", got)
	}
}

func TestSetupRouter_CredentialedPreflight(t *testing.T) {
	r := newTestRouter(t, testutil.TestConfig(t))

	req := httptest.NewRequest("OPTIONS", "/getplaces", nil)
	req.Header.Set("Origin", "https://trips.example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	if strings.Contains(allowed, "*") {
		t.Errorf("Access-Control-Allow-Headers = %q, a wildcard is ignored for credentialed requests", allowed)
	}
	for _, h := range []string{"content-type", "authorization"} {
		if !strings.Contains(allowed, h) {
			t.Errorf("Access-Control-Allow-Headers = %q, want it to include %s", allowed, h)
		}
	}
}

func TestSetupRouter_RestrictedCORS(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.EnvVars.CORSAllowedOrigins = []string{"https://tripz.app"}
	r := newTestRouter(t, cfg)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestSetupRouter_RateLimit(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.EnvVars.RateLimitRPS = 1
	r := newTestRouter(t, cfg)

	var last int
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", last)
	}
}
