package routes

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
	"github.com/sx-tane/tourii-backend-sub002/internal/metrics"
)

// regionFallbackImages are served when neither the member spots nor the
// image provider yield a picture.
var regionFallbackImages = map[string]string{
	"Tokyo":    "https://upload.wikimedia.org/wikipedia/commons/b/b2/Skyscrapers_of_Shinjuku_2009_January.jpg",
	"Osaka":    "https://upload.wikimedia.org/wikipedia/commons/2/2b/Osaka_Dotonbori.jpg",
	"Kyoto":    "https://upload.wikimedia.org/wikipedia/commons/0/02/Kinkaku-ji_2015.jpg",
	"Hokkaido": "https://upload.wikimedia.org/wikipedia/commons/9/96/Sapporo_TV_Tower.jpg",
	"Okinawa":  "https://upload.wikimedia.org/wikipedia/commons/3/35/Shurijo_Seiden.jpg",
}

const defaultFallbackImage = "https://upload.wikimedia.org/wikipedia/commons/c/c9/Itsukushima_torii.jpg"

// Assembler is the pipeline's output boundary: it joins a cluster with
// its content and a representative image, then persists the route and
// its spot links.
type Assembler struct {
	routes RouteRepository
	images ImageProvider
	logger *zap.Logger
}

// NewAssembler creates a route assembler. images may be nil, in which
// case the lookup step is skipped.
func NewAssembler(routeRepo RouteRepository, images ImageProvider, logger *zap.Logger) *Assembler {
	return &Assembler{routes: routeRepo, images: images, logger: logger}
}

// Assemble builds and persists one route. A persistence failure returns
// an error wrapping domain.ErrRoutePersistFailed; the caller drops the
// route and continues with the rest of the batch.
func (a *Assembler) Assemble(
	ctx context.Context,
	c domcluster.Cluster,
	generated domroute.GeneratedContent,
	keywords []string,
) (domroute.GeneratedRoute, error) {
	r := domroute.GeneratedRoute{
		Cluster:  c,
		Content:  generated,
		ImageURL: a.representativeImage(ctx, c),
		Meta: domroute.Metadata{
			SourceKeywords:   keywords,
			SpotCount:        len(c.Spots),
			GeneratedAt:      time.Now().UTC(),
			AlgorithmVersion: domroute.AlgorithmVersion,
		},
	}

	id, err := a.routes.CreateRoute(ctx, &r)
	if err != nil {
		return domroute.GeneratedRoute{}, fmt.Errorf("create route: %w: %w", domain.ErrRoutePersistFailed, err)
	}
	if id == "" {
		return domroute.GeneratedRoute{}, fmt.Errorf("create route returned no id: %w", domain.ErrRoutePersistFailed)
	}
	r.ID = id

	spotIDs := make([]string, len(c.Spots))
	for i, s := range c.Spots {
		spotIDs[i] = s.ID
	}
	if err := a.routes.LinkSpotsToRoute(ctx, id, spotIDs); err != nil {
		return domroute.GeneratedRoute{}, fmt.Errorf("link spots to route %s: %w: %w", id, domain.ErrRoutePersistFailed, err)
	}

	metrics.RoutesGeneratedTotal.Inc()
	return r, nil
}

// representativeImage scans member spots in order for an available
// image, then tries the external lookup for the first member, then
// falls back to a region-keyed stock image.
func (a *Assembler) representativeImage(ctx context.Context, c domcluster.Cluster) string {
	for _, s := range c.Spots {
		if s.ImageURL != "" {
			return s.ImageURL
		}
	}

	if a.images != nil && len(c.Spots) > 0 {
		first := c.Spots[0]
		url, err := a.images.Lookup(ctx, first.Name, first.Lat, first.Lng, first.Address)
		if err != nil {
			a.logger.Warn("location image lookup failed",
				zap.String("spot_id", first.ID),
				zap.Error(err),
			)
		} else if url != "" {
			return url
		}
	}

	if url, ok := regionFallbackImages[c.Region]; ok {
		return url
	}
	return defaultFallbackImage
}
