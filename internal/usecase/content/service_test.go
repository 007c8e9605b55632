package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
)

// --- Mocks ---

type mockProvider struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	called     bool
}

func (m *mockProvider) Complete(_ context.Context, system, user string) (string, error) {
	m.called = true
	m.lastSystem = system
	m.lastUser = user
	return m.response, m.err
}

func testCluster(size int, region string, hashtags ...[]string) domcluster.Cluster {
	spots := make([]domain.TouristSpot, size)
	for i := range spots {
		spots[i] = domain.TouristSpot{
			ID:   string(rune('a' + i)),
			Name: "Spot " + string(rune('A'+i)),
			Lat:  35.6 + float64(i)*0.01,
			Lng:  139.7,
		}
		if i < len(hashtags) {
			spots[i].Hashtags = hashtags[i]
		}
	}
	return domcluster.New(spots, region)
}

func newService(p TextGenerationProvider) *Service {
	return New(p, Config{}, zap.NewNop())
}

const validResponse = `{
	"route_name": "Old Tokyo Temple Walk",
	"region_desc": "A stroll through the historic east side.",
	"recommendations": ["Historical Sites", "Local Food"],
	"estimated_duration": "2 days"
}`

// --- Primary path ---

func TestGenerate_PrimarySuccess(t *testing.T) {
	provider := &mockProvider{response: validResponse}
	svc := newService(provider)

	got := svc.Generate(context.Background(), testCluster(4, "Tokyo"), []string{"temple"}, nil)

	if got.ConfidenceScore != 0.9 {
		t.Errorf("ConfidenceScore = %v, want 0.9", got.ConfidenceScore)
	}
	if got.RouteName != "Old Tokyo Temple Walk" {
		t.Errorf("RouteName = %q", got.RouteName)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("Recommendations = %v", got.Recommendations)
	}
	if !provider.called {
		t.Error("provider not called")
	}
}

func TestGenerate_PrimaryToleratesCodeFence(t *testing.T) {
	provider := &mockProvider{response: "```json\n" + validResponse + "\n```"}
	svc := newService(provider)

	got := svc.Generate(context.Background(), testCluster(4, "Tokyo"), []string{"temple"}, nil)
	if got.ConfidenceScore != 0.9 {
		t.Errorf("ConfidenceScore = %v, want 0.9 for fenced JSON", got.ConfidenceScore)
	}
}

func TestGenerate_LengthCapsApplied(t *testing.T) {
	longName := strings.Repeat("x", 200)
	provider := &mockProvider{response: `{
		"route_name": "` + longName + `",
		"region_desc": "ok",
		"recommendations": ["a"],
		"estimated_duration": "1 day"
	}`}
	svc := New(provider, Config{MaxNameLength: 80, MaxDescLength: 400}, zap.NewNop())

	got := svc.Generate(context.Background(), testCluster(3, "Tokyo"), []string{"temple"}, nil)
	if len([]rune(got.RouteName)) != 80 {
		t.Errorf("RouteName length = %d, want capped at 80", len([]rune(got.RouteName)))
	}
	if !strings.HasSuffix(got.RouteName, "...") {
		t.Error("truncated name should end with ellipsis marker")
	}
}

func TestGenerate_RecommendationsCappedAtFive(t *testing.T) {
	provider := &mockProvider{response: `{
		"route_name": "n",
		"region_desc": "d",
		"recommendations": ["1","2","3","4","5","6","7"],
		"estimated_duration": "1 day"
	}`}
	svc := newService(provider)

	got := svc.Generate(context.Background(), testCluster(3, "Tokyo"), []string{"temple"}, nil)
	if len(got.Recommendations) != 5 {
		t.Errorf("got %d recommendations, want 5", len(got.Recommendations))
	}
}

func TestGenerate_PromptContainsClusterFacts(t *testing.T) {
	provider := &mockProvider{response: validResponse}
	svc := newService(provider)

	c := testCluster(3, "Kyoto",
		[]string{"temple", "zen"}, []string{"temple"}, []string{"temple", "garden"})
	svc.Generate(context.Background(), c, []string{"temple", "garden"},
		&AdditionalContext{Season: "autumn", TravelStyle: "slow", GroupSize: 2})

	for _, want := range []string{"Kyoto", "Spot A", "temple, garden", "autumn", "slow", "Spot count: 3"} {
		if !strings.Contains(provider.lastUser, want) {
			t.Errorf("prompt missing %q:\n%s", want, provider.lastUser)
		}
	}
	if !strings.Contains(provider.lastSystem, "JSON") {
		t.Error("system prompt should demand JSON output")
	}
}

// --- Fallback path ---

func TestGenerate_FallbackMatrix(t *testing.T) {
	tests := []struct {
		name     string
		provider TextGenerationProvider
	}{
		{"no provider", nil},
		{"provider error", &mockProvider{err: errors.New("boom")}},
		{"empty response", &mockProvider{response: "   "}},
		{"invalid json", &mockProvider{response: "not json at all"}},
		{"missing fields", &mockProvider{response: `{"route_name": "x"}`}},
		{"empty recommendations", &mockProvider{response: `{
			"route_name": "x", "region_desc": "y",
			"recommendations": [], "estimated_duration": "1 day"
		}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(tt.provider)
			got := svc.Generate(context.Background(), testCluster(4, "Tokyo"), []string{"temple", "garden"}, nil)

			if got.ConfidenceScore != 0.6 {
				t.Errorf("ConfidenceScore = %v, want 0.6", got.ConfidenceScore)
			}
			if got.RouteName == "" || got.RegionDesc == "" || got.EstimatedDuration == "" {
				t.Errorf("fallback produced empty fields: %+v", got)
			}
			if len(got.Recommendations) == 0 {
				t.Error("fallback produced no recommendations")
			}
		})
	}
}

func TestGenerate_FallbackNameFromKeywordsAndRegion(t *testing.T) {
	svc := newService(nil)

	got := svc.Generate(context.Background(), testCluster(4, "Tokyo"), []string{"temple", "garden", "food"}, nil)
	if got.RouteName != "Temple & Garden Tokyo" {
		t.Errorf("RouteName = %q, want %q", got.RouteName, "Temple & Garden Tokyo")
	}
}

func TestGenerate_FallbackRecommendationCategories(t *testing.T) {
	svc := newService(nil)

	got := svc.Generate(context.Background(), testCluster(4, "Tokyo"), []string{"temple", "food"}, nil)
	want := []string{"Historical Sites", "Local Food", "Scenic Views"}
	if len(got.Recommendations) != len(want) {
		t.Fatalf("Recommendations = %v, want %v", got.Recommendations, want)
	}
	for i := range want {
		if got.Recommendations[i] != want[i] {
			t.Errorf("Recommendations[%d] = %q, want %q", i, got.Recommendations[i], want[i])
		}
	}
}

func TestGenerate_FallbackPadsUnknownKeywords(t *testing.T) {
	svc := newService(nil)

	got := svc.Generate(context.Background(), testCluster(4, "Tokyo"), []string{"xyzzy"}, nil)
	if len(got.Recommendations) < 2 {
		t.Errorf("expected generic padding, got %v", got.Recommendations)
	}
}

func TestDurationForSpotCount_Buckets(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "1 day"},
		{2, "1 day"},
		{3, "2 days"},
		{4, "2 days"},
		{5, "2-3 days"},
		{6, "2-3 days"},
		{7, "3-4 days"},
		{8, "3-4 days"},
		{9, "4-5 days"},
		{20, "4-5 days"},
	}
	for _, tt := range tests {
		if got := DurationForSpotCount(tt.count); got != tt.want {
			t.Errorf("DurationForSpotCount(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestCommonHashtags_Threshold(t *testing.T) {
	// 6 members: threshold = max(2, ceil(6*0.3)) = 2.
	spots := []domain.TouristSpot{
		{ID: "a", Hashtags: []string{"temple", "zen"}},
		{ID: "b", Hashtags: []string{"temple"}},
		{ID: "c", Hashtags: []string{"garden"}},
		{ID: "d", Hashtags: []string{"garden"}},
		{ID: "e", Hashtags: []string{"solo"}},
		{ID: "f", Hashtags: nil},
	}

	got := CommonHashtags(spots)
	want := []string{"temple", "garden"}
	if len(got) != len(want) {
		t.Fatalf("CommonHashtags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CommonHashtags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCommonHashtags_RepeatWithinOneSpotCountsOnce(t *testing.T) {
	spots := []domain.TouristSpot{
		{ID: "a", Hashtags: []string{"temple", "temple", "temple"}},
		{ID: "b", Hashtags: []string{"garden"}},
		{ID: "c", Hashtags: []string{"garden"}},
	}

	got := CommonHashtags(spots)
	if len(got) != 1 || got[0] != "garden" {
		t.Errorf("CommonHashtags = %v, want [garden]", got)
	}
}

func TestCommonHashtags_LargeClusterThreshold(t *testing.T) {
	// 10 members: threshold = max(2, ceil(10*0.3)) = 3.
	spots := make([]domain.TouristSpot, 10)
	for i := range spots {
		spots[i] = domain.TouristSpot{ID: string(rune('a' + i))}
	}
	spots[0].Hashtags = []string{"popular", "rare"}
	spots[1].Hashtags = []string{"popular", "rare"}
	spots[2].Hashtags = []string{"popular"}

	got := CommonHashtags(spots)
	if len(got) != 1 || got[0] != "popular" {
		t.Errorf("CommonHashtags = %v, want [popular] (rare is below threshold 3)", got)
	}
}
