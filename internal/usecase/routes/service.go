package routes

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
	clusteruc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/cluster"
	"github.com/sx-tane/tourii-backend-sub002/internal/usecase/content"
)

// Service runs the route recommendation pipeline:
// spot matching -> proximity clustering -> scoring/selection ->
// content generation -> assembly/persistence.
type Service struct {
	spots     SpotRepository
	clusterer Clusterer
	generator ContentGenerator
	assembler RouteAssembler
	logger    *zap.Logger
}

// New creates the recommendation pipeline service.
func New(
	spots SpotRepository,
	clusterer Clusterer,
	generator ContentGenerator,
	assembler RouteAssembler,
	logger *zap.Logger,
) *Service {
	return &Service{
		spots:     spots,
		clusterer: clusterer,
		generator: generator,
		assembler: assembler,
		logger:    logger,
	}
}

// Recommend executes one pipeline run. Generation failures degrade per
// cluster; persistence failures drop the affected route but the batch
// continues, so a partial result with an accurate summary is normal.
func (s *Service) Recommend(
	ctx context.Context, req *domroute.Request, extra *content.AdditionalContext,
) (domroute.Result, error) {
	start := time.Now()

	spots, err := s.spots.FindByHashtags(ctx, req.Keywords(), req.Mode(), req.Region())
	if err != nil {
		return domroute.Result{}, fmt.Errorf("find spots: %w", err)
	}

	if len(spots) == 0 {
		return domroute.Result{Summary: summary(0, 0, 0, start)}, nil
	}

	clusters, err := s.clusterer.Cluster(spots, req.Clustering())
	if err != nil {
		return domroute.Result{}, fmt.Errorf("cluster spots: %w", err)
	}

	selected := clusteruc.SelectTop(clusters, req.MaxRoutes())

	generated := make([]domroute.GeneratedRoute, 0, len(selected))
	for _, c := range selected {
		if ctx.Err() != nil {
			return domroute.Result{}, fmt.Errorf("recommendation cancelled: %w", ctx.Err())
		}

		generatedContent := s.generator.Generate(ctx, c, req.Keywords(), extra)

		r, err := s.assembler.Assemble(ctx, c, generatedContent, req.Keywords())
		if err != nil {
			// Partial-failure tolerance: drop this route, keep the rest.
			s.logger.Error("route dropped: persistence failed",
				zap.String("cluster_id", c.ID),
				zap.Error(err),
			)
			continue
		}
		generated = append(generated, r)
	}

	return domroute.Result{
		Routes:  generated,
		Summary: summary(len(spots), len(clusters), len(generated), start),
	}, nil
}

func summary(spotCount, clusterCount, routeCount int, start time.Time) domroute.Summary {
	return domroute.Summary{
		TotalSpotsFound:  spotCount,
		ClustersFormed:   clusterCount,
		RoutesGenerated:  routeCount,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
}
