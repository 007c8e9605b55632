package routes

import (
	"context"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
	"github.com/sx-tane/tourii-backend-sub002/internal/usecase/content"
)

// SpotRepository matches tourist spots to normalized keywords.
type SpotRepository interface {
	FindByHashtags(
		ctx context.Context, keywords []string, mode domain.MatchMode, region string,
	) ([]domain.TouristSpot, error)
}

// RouteRepository persists assembled routes and their spot links.
type RouteRepository interface {
	// CreateRoute saves the route and returns its persisted identifier.
	CreateRoute(ctx context.Context, r *domroute.GeneratedRoute) (string, error)
	// LinkSpotsToRoute writes junction records, display order = slice order.
	LinkSpotsToRoute(ctx context.Context, routeID string, spotIDs []string) error
}

// Clusterer groups candidate spots into proximity clusters.
type Clusterer interface {
	Cluster(spots []domain.TouristSpot, opts domcluster.Options) ([]domcluster.Cluster, error)
}

// ContentGenerator produces route content for one cluster. It never
// fails: provider problems degrade to deterministic fallback content.
type ContentGenerator interface {
	Generate(
		ctx context.Context, c domcluster.Cluster, keywords []string,
		extra *content.AdditionalContext,
	) domroute.GeneratedContent
}

// ImageProvider looks up a representative image for a location.
// An empty URL with nil error means "no image found".
type ImageProvider interface {
	Lookup(ctx context.Context, name string, lat, lng float64, address string) (string, error)
}

// RouteAssembler combines a cluster with its content, resolves a
// representative image and persists the result.
type RouteAssembler interface {
	Assemble(
		ctx context.Context, c domcluster.Cluster,
		generated domroute.GeneratedContent, keywords []string,
	) (domroute.GeneratedRoute, error)
}
