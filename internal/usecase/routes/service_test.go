package routes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
	"github.com/sx-tane/tourii-backend-sub002/internal/usecase/content"
)

// --- Mocks ---

type mockSpotRepo struct {
	spots []domain.TouristSpot
	err   error
}

func (m *mockSpotRepo) FindByHashtags(
	_ context.Context, _ []string, _ domain.MatchMode, _ string,
) ([]domain.TouristSpot, error) {
	return m.spots, m.err
}

type mockClusterer struct {
	clusters []domcluster.Cluster
	err      error
}

func (m *mockClusterer) Cluster(
	_ []domain.TouristSpot, _ domcluster.Options,
) ([]domcluster.Cluster, error) {
	return m.clusters, m.err
}

type mockGenerator struct {
	calls int
}

func (m *mockGenerator) Generate(
	_ context.Context, c domcluster.Cluster, _ []string, _ *content.AdditionalContext,
) domroute.GeneratedContent {
	m.calls++
	return domroute.GeneratedContent{
		RouteName:         "Route " + c.ID,
		RegionDesc:        "desc",
		Recommendations:   []string{"Local Culture"},
		EstimatedDuration: "1 day",
		ConfidenceScore:   domroute.PrimaryConfidence,
	}
}

type mockAssembler struct {
	failFor   map[string]bool
	assembled []string
}

func (m *mockAssembler) Assemble(
	_ context.Context, c domcluster.Cluster, generated domroute.GeneratedContent, _ []string,
) (domroute.GeneratedRoute, error) {
	if m.failFor[c.ID] {
		return domroute.GeneratedRoute{}, fmt.Errorf("save: %w", domain.ErrRoutePersistFailed)
	}
	m.assembled = append(m.assembled, c.ID)
	return domroute.GeneratedRoute{ID: "route-" + c.ID, Cluster: c, Content: generated}, nil
}

func makeCluster(id string, size int, avgDist float64) domcluster.Cluster {
	spots := make([]domain.TouristSpot, size)
	for i := range spots {
		spots[i] = domain.TouristSpot{ID: fmt.Sprintf("%s-s%d", id, i)}
	}
	return domcluster.Cluster{ID: id, Spots: spots, AverageDistanceKm: avgDist, Region: "Tokyo"}
}

func makeRequest(t *testing.T, maxRoutes int) *domroute.Request {
	t.Helper()
	req, err := domroute.NewRequest(
		[]string{"temple", "garden"}, domain.MatchAny, "", domcluster.Options{}, maxRoutes, "",
	)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return &req
}

func someSpots(n int) []domain.TouristSpot {
	spots := make([]domain.TouristSpot, n)
	for i := range spots {
		spots[i] = domain.TouristSpot{ID: fmt.Sprintf("s%d", i), Lat: 35.6, Lng: 139.7}
	}
	return spots
}

// --- Tests ---

func TestRecommend_HappyPath(t *testing.T) {
	clusters := []domcluster.Cluster{makeCluster("c1", 4, 2), makeCluster("c2", 3, 5)}
	gen := &mockGenerator{}
	asm := &mockAssembler{}
	svc := New(&mockSpotRepo{spots: someSpots(7)}, &mockClusterer{clusters: clusters}, gen, asm, zap.NewNop())

	result, err := svc.Recommend(context.Background(), makeRequest(t, 5), nil)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(result.Routes))
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}

	s := result.Summary
	if s.TotalSpotsFound != 7 || s.ClustersFormed != 2 || s.RoutesGenerated != 2 {
		t.Errorf("summary = %+v", s)
	}
}

func TestRecommend_SelectsHighestScoredClusters(t *testing.T) {
	// Five qualifying clusters, maxRoutes=2: only the two best survive,
	// in descending score order.
	clusters := []domcluster.Cluster{
		makeCluster("weak", 2, 30),
		makeCluster("best", 8, 1),
		makeCluster("mid", 4, 10),
		makeCluster("second", 6, 2),
		makeCluster("meh", 3, 20),
	}
	asm := &mockAssembler{}
	svc := New(&mockSpotRepo{spots: someSpots(20)}, &mockClusterer{clusters: clusters}, &mockGenerator{}, asm, zap.NewNop())

	result, err := svc.Recommend(context.Background(), makeRequest(t, 2), nil)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(result.Routes))
	}
	if asm.assembled[0] != "best" || asm.assembled[1] != "second" {
		t.Errorf("assembled %v, want [best second]", asm.assembled)
	}
	if result.Summary.ClustersFormed != 5 {
		t.Errorf("ClustersFormed = %d, want 5", result.Summary.ClustersFormed)
	}
}

func TestRecommend_PersistFailureDropsRouteOnly(t *testing.T) {
	clusters := []domcluster.Cluster{
		makeCluster("ok1", 4, 2),
		makeCluster("broken", 4, 3),
		makeCluster("ok2", 4, 4),
	}
	asm := &mockAssembler{failFor: map[string]bool{"broken": true}}
	svc := New(&mockSpotRepo{spots: someSpots(12)}, &mockClusterer{clusters: clusters}, &mockGenerator{}, asm, zap.NewNop())

	result, err := svc.Recommend(context.Background(), makeRequest(t, 5), nil)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Routes) != 2 {
		t.Fatalf("got %d routes, want 2 (one dropped)", len(result.Routes))
	}
	if result.Summary.RoutesGenerated != 2 {
		t.Errorf("RoutesGenerated = %d, want 2", result.Summary.RoutesGenerated)
	}
}

func TestRecommend_NoSpots(t *testing.T) {
	svc := New(&mockSpotRepo{}, &mockClusterer{}, &mockGenerator{}, &mockAssembler{}, zap.NewNop())

	result, err := svc.Recommend(context.Background(), makeRequest(t, 5), nil)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Routes) != 0 || result.Summary.TotalSpotsFound != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestRecommend_SpotRepoError(t *testing.T) {
	svc := New(&mockSpotRepo{err: errors.New("redis down")}, &mockClusterer{}, &mockGenerator{}, &mockAssembler{}, zap.NewNop())

	_, err := svc.Recommend(context.Background(), makeRequest(t, 5), nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRecommend_ClusterValidationErrorPropagates(t *testing.T) {
	svc := New(
		&mockSpotRepo{spots: someSpots(3)},
		&mockClusterer{err: domain.NewValidationError("proximity_radius_km", "must be greater than 0")},
		&mockGenerator{}, &mockAssembler{}, zap.NewNop(),
	)

	_, err := svc.Recommend(context.Background(), makeRequest(t, 5), nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestRecommend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clusters := []domcluster.Cluster{makeCluster("c1", 4, 2)}
	svc := New(&mockSpotRepo{spots: someSpots(4)}, &mockClusterer{clusters: clusters}, &mockGenerator{}, &mockAssembler{}, zap.NewNop())

	_, err := svc.Recommend(ctx, makeRequest(t, 5), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
