package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wizerservices/tripz-api/internal/logger"
	"go.uber.org/zap"
)

const braveSearchEndpoint = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider implements SearchProvider using Brave web search.
type BraveProvider struct {
	apiKey     string
	endpoint   string
	count      int
	httpClient *http.Client
}

// NewBraveProvider creates a Brave search provider returning up to ten results.
func NewBraveProvider(apiKey string, timeout time.Duration) *BraveProvider {
	return &BraveProvider{
		apiKey:   apiKey,
		endpoint: braveSearchEndpoint,
		count:    10,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type braveSearchResponse struct {
	Web *braveWebResults `json:"web"`
}

type braveWebResults struct {
	Results []braveResult `json:"results"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Search queries Brave and renders each hit as "title: description".
func (p *BraveProvider) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", p.count))

	reqURL := fmt.Sprintf("%s?%s", p.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create brave request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", providerError("brave", "search", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", providerError("brave", "search", resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", providerError("brave", "search", resp.StatusCode, fmt.Errorf("unexpected response: %s", string(body)))
	}

	var bResp braveSearchResponse
	if err := json.Unmarshal(body, &bResp); err != nil {
		return "", providerError("brave", "search", resp.StatusCode, fmt.Errorf("failed to parse response: %w", err))
	}

	if bResp.Web == nil {
		return "", nil
	}

	lines := make([]string, 0, len(bResp.Web.Results))
	for _, r := range bResp.Web.Results {
		desc := stripTags(r.Description)
		switch {
		case r.Title != "" && desc != "":
			lines = append(lines, r.Title+": "+desc)
		case desc != "":
			lines = append(lines, desc)
		case r.Title != "":
			lines = append(lines, r.Title)
		}
	}

	logger.Get().Debug("brave search complete",
		zap.String("query", query),
		zap.Int("results", len(lines)),
	)
	return strings.Join(lines, "\n"), nil
}

// stripTags removes the <strong> highlighting Brave puts in descriptions.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
