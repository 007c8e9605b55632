package route

import (
	"time"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
)

// Content confidence levels: a reliability signal, not a probability.
// Primary means the text-generation provider produced the content,
// Fallback means it was synthesized deterministically.
const (
	PrimaryConfidence  = 0.9
	FallbackConfidence = 0.6
)

// AlgorithmVersion tags generated routes with the pipeline revision that
// produced them.
const AlgorithmVersion = "proximity-v2"

// GeneratedContent is the human-readable payload of one route.
type GeneratedContent struct {
	RouteName         string
	RegionDesc        string
	Recommendations   []string
	EstimatedDuration string
	ConfidenceScore   float64
}

// Metadata carries provenance for a generated route.
type Metadata struct {
	SourceKeywords   []string
	SpotCount        int
	GeneratedAt      time.Time
	AlgorithmVersion string
}

// GeneratedRoute is the pipeline's unit of output: a cluster joined with
// its generated content, a representative image and provenance metadata.
type GeneratedRoute struct {
	ID       string
	Cluster  cluster.Cluster
	Content  GeneratedContent
	ImageURL string
	Meta     Metadata
}

// Summary reports aggregate pipeline statistics back to the caller.
type Summary struct {
	TotalSpotsFound  int
	ClustersFormed   int
	RoutesGenerated  int
	ProcessingTimeMs int64
}

// Result is the full pipeline response.
type Result struct {
	Routes  []GeneratedRoute
	Summary Summary
}
