package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/wizerservices/tripz-api/internal/logger"
	"go.uber.org/zap"
)

const serperSearchEndpoint = "https://google.serper.dev/search"

// SerperProvider implements SearchProvider using the Serper Google Search API.
type SerperProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewSerperProvider creates a Serper search provider.
func NewSerperProvider(apiKey string, timeout time.Duration) *SerperProvider {
	return &SerperProvider{
		apiKey:   apiKey,
		endpoint: serperSearchEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type serperRequest struct {
	Q string `json:"q"`
}

type serperResponse struct {
	AnswerBox      *serperAnswerBox      `json:"answerBox"`
	KnowledgeGraph *serperKnowledgeGraph `json:"knowledgeGraph"`
	Organic        []serperOrganic       `json:"organic"`
}

type serperAnswerBox struct {
	Answer             string   `json:"answer"`
	Snippet            string   `json:"snippet"`
	SnippetHighlighted []string `json:"snippetHighlighted"`
}

type serperKnowledgeGraph struct {
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes"`
}

type serperOrganic struct {
	Title      string            `json:"title"`
	Link       string            `json:"link"`
	Snippet    string            `json:"snippet"`
	Attributes map[string]string `json:"attributes"`
}

// Search posts the query to Serper and flattens the answer box, knowledge
// graph and organic snippets into newline separated text.
func (p *SerperProvider) Search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(serperRequest{Q: query})
	if err != nil {
		return "", fmt.Errorf("failed to encode serper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create serper request: %w", err)
	}
	req.Header.Set("X-API-KEY", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", providerError("serper", "search", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", providerError("serper", "search", resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", providerError("serper", "search", resp.StatusCode, fmt.Errorf("unexpected response: %s", string(body)))
	}

	var sResp serperResponse
	if err := json.Unmarshal(body, &sResp); err != nil {
		return "", providerError("serper", "search", resp.StatusCode, fmt.Errorf("failed to parse response: %w", err))
	}

	text := renderSerperResults(&sResp)
	logger.Get().Debug("serper search complete",
		zap.String("query", query),
		zap.Int("organic", len(sResp.Organic)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// renderSerperResults turns a Serper response into plain text. A direct
// answer wins outright; otherwise knowledge graph and organic snippets are
// listed in order.
func renderSerperResults(r *serperResponse) string {
	if box := r.AnswerBox; box != nil {
		switch {
		case box.Answer != "":
			return box.Answer
		case box.Snippet != "":
			return strings.ReplaceAll(box.Snippet, "\n", " ")
		case len(box.SnippetHighlighted) > 0:
			return strings.Join(box.SnippetHighlighted, "\n")
		}
	}

	var lines []string
	if kg := r.KnowledgeGraph; kg != nil {
		if kg.Title != "" && kg.Type != "" {
			lines = append(lines, fmt.Sprintf("%s: %s.", kg.Title, kg.Type))
		}
		if kg.Description != "" {
			lines = append(lines, kg.Description)
		}
		lines = append(lines, renderAttributes(kg.Title, kg.Attributes)...)
	}
	for _, o := range r.Organic {
		if o.Snippet != "" {
			lines = append(lines, o.Snippet)
		}
		lines = append(lines, renderAttributes(o.Title, o.Attributes)...)
	}
	return strings.Join(lines, "\n")
}

func renderAttributes(title string, attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s %s: %s.", title, k, attrs[k]))
	}
	return lines
}
