package routes

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
)

type mockRouteRepo struct {
	id        string
	createErr error
	linkErr   error
	linked    []string
}

func (m *mockRouteRepo) CreateRoute(_ context.Context, _ *domroute.GeneratedRoute) (string, error) {
	return m.id, m.createErr
}

func (m *mockRouteRepo) LinkSpotsToRoute(_ context.Context, _ string, spotIDs []string) error {
	m.linked = spotIDs
	return m.linkErr
}

type mockImageProvider struct {
	url    string
	err    error
	called bool
}

func (m *mockImageProvider) Lookup(_ context.Context, _ string, _, _ float64, _ string) (string, error) {
	m.called = true
	return m.url, m.err
}

func contentFixture() domroute.GeneratedContent {
	return domroute.GeneratedContent{
		RouteName:         "Temple Walk",
		RegionDesc:        "desc",
		Recommendations:   []string{"Historical Sites"},
		EstimatedDuration: "1 day",
		ConfidenceScore:   domroute.PrimaryConfidence,
	}
}

func TestAssemble_PersistsAndLinksInOrder(t *testing.T) {
	repo := &mockRouteRepo{id: "route-1"}
	asm := NewAssembler(repo, &mockImageProvider{}, zap.NewNop())

	c := domcluster.Cluster{
		ID:     "c1",
		Region: "Tokyo",
		Spots: []domain.TouristSpot{
			{ID: "s2", ImageURL: "https://img/s2.jpg"},
			{ID: "s1"},
			{ID: "s3"},
		},
	}

	r, err := asm.Assemble(context.Background(), c, contentFixture(), []string{"temple"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if r.ID != "route-1" {
		t.Errorf("ID = %q, want route-1", r.ID)
	}
	if r.Meta.AlgorithmVersion != domroute.AlgorithmVersion {
		t.Errorf("AlgorithmVersion = %q", r.Meta.AlgorithmVersion)
	}
	if r.Meta.SpotCount != 3 {
		t.Errorf("SpotCount = %d, want 3", r.Meta.SpotCount)
	}

	// Display order must follow cluster order, not be re-sorted.
	want := []string{"s2", "s1", "s3"}
	for i, id := range want {
		if repo.linked[i] != id {
			t.Errorf("linked[%d] = %q, want %q", i, repo.linked[i], id)
		}
	}
}

func TestAssemble_ImageFromFirstSpotWithImage(t *testing.T) {
	images := &mockImageProvider{url: "https://img/external.jpg"}
	asm := NewAssembler(&mockRouteRepo{id: "r"}, images, zap.NewNop())

	c := domcluster.Cluster{
		ID:     "c1",
		Region: "Tokyo",
		Spots: []domain.TouristSpot{
			{ID: "s1"},
			{ID: "s2", ImageURL: "https://img/s2.jpg"},
		},
	}

	r, err := asm.Assemble(context.Background(), c, contentFixture(), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if r.ImageURL != "https://img/s2.jpg" {
		t.Errorf("ImageURL = %q, want spot image", r.ImageURL)
	}
	if images.called {
		t.Error("external lookup should be skipped when a spot has an image")
	}
}

func TestAssemble_ImageFromExternalLookup(t *testing.T) {
	images := &mockImageProvider{url: "https://img/external.jpg"}
	asm := NewAssembler(&mockRouteRepo{id: "r"}, images, zap.NewNop())

	c := domcluster.Cluster{
		ID:     "c1",
		Region: "Tokyo",
		Spots:  []domain.TouristSpot{{ID: "s1", Name: "Senso-ji"}},
	}

	r, err := asm.Assemble(context.Background(), c, contentFixture(), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if r.ImageURL != "https://img/external.jpg" {
		t.Errorf("ImageURL = %q, want external lookup result", r.ImageURL)
	}
}

func TestAssemble_ImageRegionFallback(t *testing.T) {
	tests := []struct {
		name   string
		region string
		images ImageProvider
	}{
		{"lookup error", "Kyoto", &mockImageProvider{err: errors.New("api down")}},
		{"lookup empty", "Kyoto", &mockImageProvider{}},
		{"no provider", "Kyoto", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm := NewAssembler(&mockRouteRepo{id: "r"}, tt.images, zap.NewNop())
			c := domcluster.Cluster{ID: "c1", Region: tt.region, Spots: []domain.TouristSpot{{ID: "s1"}}}

			r, err := asm.Assemble(context.Background(), c, contentFixture(), nil)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if r.ImageURL != regionFallbackImages["Kyoto"] {
				t.Errorf("ImageURL = %q, want region fallback", r.ImageURL)
			}
		})
	}
}

func TestAssemble_ImageDefaultFallbackForUnknownRegion(t *testing.T) {
	asm := NewAssembler(&mockRouteRepo{id: "r"}, nil, zap.NewNop())
	c := domcluster.Cluster{ID: "c1", Region: "Unknown", Spots: []domain.TouristSpot{{ID: "s1"}}}

	r, err := asm.Assemble(context.Background(), c, contentFixture(), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if r.ImageURL != defaultFallbackImage {
		t.Errorf("ImageURL = %q, want default fallback", r.ImageURL)
	}
}

func TestAssemble_PersistFailures(t *testing.T) {
	tests := []struct {
		name string
		repo *mockRouteRepo
	}{
		{"create error", &mockRouteRepo{createErr: errors.New("write failed")}},
		{"no id returned", &mockRouteRepo{id: ""}},
		{"link error", &mockRouteRepo{id: "r", linkErr: errors.New("write failed")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm := NewAssembler(tt.repo, nil, zap.NewNop())
			c := domcluster.Cluster{ID: "c1", Region: "Tokyo", Spots: []domain.TouristSpot{{ID: "s1"}}}

			_, err := asm.Assemble(context.Background(), c, contentFixture(), nil)
			if !errors.Is(err, domain.ErrRoutePersistFailed) {
				t.Errorf("error = %v, want ErrRoutePersistFailed", err)
			}
		})
	}
}
