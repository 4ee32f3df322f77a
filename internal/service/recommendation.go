package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wizerservices/tripz-api/internal/ai"
	"github.com/wizerservices/tripz-api/internal/config"
	"github.com/wizerservices/tripz-api/internal/logger"
	"github.com/wizerservices/tripz-api/internal/models"
	"github.com/wizerservices/tripz-api/internal/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "tripz/service"

// ErrUnknownTopic is returned by Recommend for a topic with no pipeline.
var ErrUnknownTopic = errors.New("unknown recommendation topic")

// Topic binds a prompt set entry to its HTTP path and response key.
type Topic struct {
	Name    string
	Path    string
	ListKey string
}

// Topics lists every search-backed recommendation topic.
var Topics = []Topic{
	{Name: "places", Path: "/getplaces", ListKey: "list_of_places"},
	{Name: "foods", Path: "/getfoods", ListKey: "list_of_foods"},
	{Name: "activities", Path: "/getactivities", ListKey: "list_of_activities"},
	{Name: "cafes", Path: "/getcafes", ListKey: "list_of_cafes"},
	{Name: "fine_dining", Path: "/getfineDining", ListKey: "list_of_fine_dining"},
	{Name: "street_food", Path: "/getstreetfood", ListKey: "list_of_street_food"},
}

// Pipeline runs search, prompt formatting, one model call and schema-guided
// parsing for a single topic. It holds no per-request state.
type Pipeline struct {
	Topic  Topic
	Schema *schema.Schema
	prompt config.TopicPrompt
	search ai.SearchProvider
	model  ai.LanguageModel
}

// NewPipeline creates the pipeline for one topic.
func NewPipeline(topic Topic, prompt config.TopicPrompt, search ai.SearchProvider, model ai.LanguageModel) *Pipeline {
	return &Pipeline{
		Topic:  topic,
		Schema: schema.RecommendationList(topic.ListKey, prompt.ListDescription, prompt.NameDescription, prompt.ItemDescription),
		prompt: prompt,
		search: search,
		model:  model,
	}
}

// Run produces the recommendation list for a destination. An empty search
// result is replaced by NoSearchResults; provider and parse failures are
// returned unchanged and no partial list is produced.
func (p *Pipeline) Run(ctx context.Context, destination string) (list *models.RecommendationList, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Pipeline.Run", trace.WithAttributes(
		attribute.String("topic", p.Topic.Name),
		attribute.String("destination", destination),
	))
	defer func() {
		endSpan(span, err)
	}()

	query, err := FormatTopicQuery(p.prompt, models.SearchQuery{Topic: p.Topic.Name, Destination: destination})
	if err != nil {
		return nil, err
	}

	results, err := p.search.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(results) == "" {
		logger.Get().Warn("search returned no results, continuing with placeholder",
			zap.String("topic", p.Topic.Name),
			zap.String("query", query),
		)
	}
	span.SetAttributes(attribute.Int("search.length", len(results)))

	prompt, err := FormatTopicPrompt(p.prompt, destination, results, p.Schema)
	if err != nil {
		return nil, err
	}

	completion, err := p.model.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("completion.length", len(completion)))

	var parsed map[string]json.RawMessage
	if err := p.Schema.Parse(completion, &parsed); err != nil {
		logParseFailure(p.Topic.Name, err)
		return nil, err
	}

	// Other top-level keys are ignored; an absent list reads as empty.
	list = &models.RecommendationList{Key: p.Topic.ListKey}
	if raw, ok := parsed[p.Topic.ListKey]; ok {
		if err := json.Unmarshal(raw, &list.Items); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", p.Topic.ListKey, err)
		}
	}
	return list, nil
}

// ItineraryPipeline asks the model for a budget trip plan directly; it never
// calls a search provider.
type ItineraryPipeline struct {
	Schema *schema.Schema
	prompt config.ItineraryPrompt
	model  ai.LanguageModel
}

// NewItineraryPipeline creates the direct-planning pipeline.
func NewItineraryPipeline(prompt config.ItineraryPrompt, model ai.LanguageModel) *ItineraryPipeline {
	return &ItineraryPipeline{
		Schema: schema.TripPlan(),
		prompt: prompt,
		model:  model,
	}
}

// Run produces a trip plan for the request.
func (p *ItineraryPipeline) Run(ctx context.Context, req models.TripRequest) (plan *models.TripPlan, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ItineraryPipeline.Run", trace.WithAttributes(
		attribute.String("from", req.FromCity),
		attribute.String("destination", req.DestinationCity),
		attribute.Int("days", req.NumDays),
		attribute.Int("budget", req.MaxBudget),
	))
	defer func() {
		endSpan(span, err)
	}()

	prompt, err := FormatItineraryPrompt(p.prompt, req, p.Schema)
	if err != nil {
		return nil, err
	}

	completion, err := p.model.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed models.TripPlan
	if err := p.Schema.Parse(completion, &parsed); err != nil {
		logParseFailure("itinerary", err)
		return nil, err
	}
	return &parsed, nil
}

// RecommendationService owns one pipeline per topic plus the itinerary
// pipeline. Pipelines share the provider clients, which are safe for
// concurrent use, and nothing else.
type RecommendationService struct {
	Cfg            *config.Config
	SearchProvider ai.SearchProvider
	Model          ai.LanguageModel
	pipelines      map[string]*Pipeline
	itinerary      *ItineraryPipeline
}

// NewRecommendationService builds every pipeline from cfg.Prompts.
func NewRecommendationService(cfg *config.Config, search ai.SearchProvider, model ai.LanguageModel) (*RecommendationService, error) {
	if cfg.Prompts == nil {
		return nil, errors.New("prompts are not loaded")
	}

	pipelines := make(map[string]*Pipeline, len(Topics))
	for _, topic := range Topics {
		prompt, ok := cfg.Prompts.Topics[topic.Name]
		if !ok {
			return nil, fmt.Errorf("no prompt configured for topic %q", topic.Name)
		}
		pipelines[topic.Name] = NewPipeline(topic, prompt, search, model)
	}

	return &RecommendationService{
		Cfg:            cfg,
		SearchProvider: search,
		Model:          model,
		pipelines:      pipelines,
		itinerary:      NewItineraryPipeline(cfg.Prompts.Itinerary, model),
	}, nil
}

// Recommend runs the named topic's pipeline for a destination.
func (s *RecommendationService) Recommend(ctx context.Context, topic, destination string) (*models.RecommendationList, error) {
	p, ok := s.pipelines[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	return p.Run(ctx, destination)
}

// PlanTrip runs the budget itinerary pipeline.
func (s *RecommendationService) PlanTrip(ctx context.Context, req models.TripRequest) (*models.TripPlan, error) {
	return s.itinerary.Run(ctx, req)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func logParseFailure(topic string, err error) {
	fields := []zap.Field{zap.String("topic", topic), zap.Error(err)}
	var vErr *schema.ValidationError
	if errors.As(err, &vErr) {
		raw := vErr.Raw
		if len(raw) > 500 {
			raw = raw[:500]
		}
		fields = append(fields, zap.String("raw", raw))
	}
	logger.Get().Warn("model output failed schema validation", fields...)
}
