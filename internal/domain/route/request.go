package route

import (
	"strings"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
)

// Request parameter limits.
const (
	MaxKeywords      = 10
	MaxKeywordLength = 50
	DefaultMaxRoutes = 5
	MaxMaxRoutes     = 20
)

// Request is a validated route recommendation query.
type Request struct {
	keywords   []string
	mode       domain.MatchMode
	region     string
	clustering cluster.Options
	maxRoutes  int
	userID     string
}

// NewRequest validates and normalizes recommendation parameters.
// Defaults: mode=ANY, maxRoutes=5, clustering options from cluster.DefaultOptions.
// Zero-valued clustering overrides fall back to their defaults field by field.
func NewRequest(
	keywords []string,
	mode domain.MatchMode,
	region string,
	clustering cluster.Options,
	maxRoutes int,
	userID string,
) (Request, error) {
	if len(keywords) == 0 {
		return Request{}, domain.NewValidationError("keywords", "at least one keyword is required")
	}
	if len(keywords) > MaxKeywords {
		return Request{}, domain.NewValidationError("keywords", "too many keywords")
	}

	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			return Request{}, domain.NewValidationError("keywords", "keyword must not be empty")
		}
		if len(kw) > MaxKeywordLength {
			return Request{}, domain.NewValidationError("keywords", "keyword too long")
		}
		normalized = append(normalized, kw)
	}

	if mode == "" {
		mode = domain.MatchAny
	}
	if !mode.IsValid() {
		return Request{}, domain.NewValidationError("mode", "must be ALL or ANY")
	}

	defaults := cluster.DefaultOptions()
	if clustering.ProximityRadiusKm == 0 {
		clustering.ProximityRadiusKm = defaults.ProximityRadiusKm
	}
	if clustering.MinSpotsPerCluster == 0 {
		clustering.MinSpotsPerCluster = defaults.MinSpotsPerCluster
	}
	if clustering.MaxSpotsPerCluster == 0 {
		clustering.MaxSpotsPerCluster = defaults.MaxSpotsPerCluster
	}
	if err := clustering.Validate(); err != nil {
		return Request{}, err
	}

	if maxRoutes == 0 {
		maxRoutes = DefaultMaxRoutes
	}
	if maxRoutes < 1 || maxRoutes > MaxMaxRoutes {
		return Request{}, domain.NewValidationError("max_routes", "must be between 1 and 20")
	}

	return Request{
		keywords:   normalized,
		mode:       mode,
		region:     strings.TrimSpace(region),
		clustering: clustering,
		maxRoutes:  maxRoutes,
		userID:     userID,
	}, nil
}

// Keywords returns the normalized user keywords.
func (r *Request) Keywords() []string { return r.keywords }

// Mode returns the hashtag match mode.
func (r *Request) Mode() domain.MatchMode { return r.mode }

// Region returns the optional region filter.
func (r *Request) Region() string { return r.region }

// Clustering returns the effective clustering options.
func (r *Request) Clustering() cluster.Options { return r.clustering }

// MaxRoutes returns the maximum number of routes to generate.
func (r *Request) MaxRoutes() int { return r.maxRoutes }

// UserID returns the requesting user, if known.
func (r *Request) UserID() string { return r.userID }
