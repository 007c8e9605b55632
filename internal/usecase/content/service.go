package content

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
	"github.com/sx-tane/tourii-backend-sub002/internal/metrics"
)

// Content length caps.
const (
	DefaultMaxNameLength = 80
	DefaultMaxDescLength = 400
	maxRecommendations   = 5
)

// Config holds content generator settings.
type Config struct {
	MaxNameLength int
	MaxDescLength int
	Timeout       time.Duration
}

// Service produces route content through a primary provider call with a
// deterministic fallback. Generate never returns an error: any provider
// failure degrades to synthesized content at fallback confidence.
type Service struct {
	provider      TextGenerationProvider
	maxNameLength int
	maxDescLength int
	timeout       time.Duration
	logger        *zap.Logger
}

// New creates a content generator. provider may be nil, in which case
// every call takes the fallback path.
func New(provider TextGenerationProvider, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxNameLength <= 0 {
		cfg.MaxNameLength = DefaultMaxNameLength
	}
	if cfg.MaxDescLength <= 0 {
		cfg.MaxDescLength = DefaultMaxDescLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Service{
		provider:      provider,
		maxNameLength: cfg.MaxNameLength,
		maxDescLength: cfg.MaxDescLength,
		timeout:       cfg.Timeout,
		logger:        logger,
	}
}

// generatedPayload is the JSON object requested from the provider.
type generatedPayload struct {
	RouteName         string   `json:"route_name"`
	RegionDesc        string   `json:"region_desc"`
	Recommendations   []string `json:"recommendations"`
	EstimatedDuration string   `json:"estimated_duration"`
}

// Generate produces content for one cluster.
func (s *Service) Generate(
	ctx context.Context,
	c domcluster.Cluster,
	keywords []string,
	extra *AdditionalContext,
) domroute.GeneratedContent {
	if s.provider == nil {
		return s.fallback(c, keywords, "no_provider", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Complete(callCtx, systemPrompt, buildPrompt(c, keywords, extra))
	if err != nil {
		return s.fallback(c, keywords, "provider_error", err)
	}
	if strings.TrimSpace(raw) == "" {
		return s.fallback(c, keywords, "empty_response", nil)
	}

	payload, ok := s.parsePayload(raw)
	if !ok {
		return s.fallback(c, keywords, "invalid_response", nil)
	}

	return domroute.GeneratedContent{
		RouteName:         truncate(payload.RouteName, s.maxNameLength),
		RegionDesc:        truncate(payload.RegionDesc, s.maxDescLength),
		Recommendations:   payload.Recommendations,
		EstimatedDuration: payload.EstimatedDuration,
		ConfidenceScore:   domroute.PrimaryConfidence,
	}
}

// parsePayload decodes and validates the provider response. Markdown
// code fences around the JSON are tolerated.
func (s *Service) parsePayload(raw string) (generatedPayload, bool) {
	trimmed := stripCodeFence(raw)

	var payload generatedPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return generatedPayload{}, false
	}

	payload.RouteName = strings.TrimSpace(payload.RouteName)
	payload.RegionDesc = strings.TrimSpace(payload.RegionDesc)
	payload.EstimatedDuration = strings.TrimSpace(payload.EstimatedDuration)
	if payload.RouteName == "" || payload.RegionDesc == "" || payload.EstimatedDuration == "" {
		return generatedPayload{}, false
	}

	recs := make([]string, 0, len(payload.Recommendations))
	for _, r := range payload.Recommendations {
		if r = strings.TrimSpace(r); r != "" {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return generatedPayload{}, false
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	payload.Recommendations = recs

	return payload, true
}

func (s *Service) fallback(
	c domcluster.Cluster, keywords []string, reason string, err error,
) domroute.GeneratedContent {
	metrics.GenerationFallbacksTotal.WithLabelValues(reason).Inc()
	s.logger.Warn("content generation degraded to fallback",
		zap.String("cluster_id", c.ID),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return s.fallbackContent(c, keywords)
}

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
