package chi

import (
	"time"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest              = "bad_request"
	codeValidationFailed        = "validation_failed"
	codeRouteNotFound           = "route_not_found"
	codeSpotNotFound            = "spot_not_found"
	codeGenerationProviderError = "generation_provider_error"
	codeRoutePersistFailed      = "route_persist_failed"
	codeInternalError           = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// recommendationRequest is the POST /api/routes/recommendations body.
type recommendationRequest struct {
	Keywords   []string           `json:"keywords"`
	Mode       string             `json:"mode,omitempty"`
	Region     string             `json:"region,omitempty"`
	MaxRoutes  int                `json:"max_routes,omitempty"`
	Clustering *clusteringOptions `json:"clustering,omitempty"`
	Context    *additionalContext `json:"context,omitempty"`
	UserID     string             `json:"user_id,omitempty"`
}

type clusteringOptions struct {
	ProximityRadiusKm  float64 `json:"proximity_radius_km,omitempty"`
	MinSpotsPerCluster int     `json:"min_spots_per_cluster,omitempty"`
	MaxSpotsPerCluster int     `json:"max_spots_per_cluster,omitempty"`
}

type additionalContext struct {
	Season      string `json:"season,omitempty"`
	TravelStyle string `json:"travel_style,omitempty"`
	GroupSize   int    `json:"group_size,omitempty"`
}

// recommendationResponse is the pipeline result payload.
type recommendationResponse struct {
	Routes  []routeResponse `json:"generated_routes"`
	Summary summaryResponse `json:"summary"`
}

type summaryResponse struct {
	TotalSpotsFound  int   `json:"total_spots_found"`
	ClustersFormed   int   `json:"clusters_formed"`
	RoutesGenerated  int   `json:"routes_generated"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type routeResponse struct {
	ID                string          `json:"id"`
	RouteName         string          `json:"route_name"`
	RegionDesc        string          `json:"region_desc"`
	Recommendations   []string        `json:"recommendations"`
	EstimatedDuration string          `json:"estimated_duration"`
	ConfidenceScore   float64         `json:"confidence_score"`
	Region            string          `json:"region"`
	ImageURL          string          `json:"image_url,omitempty"`
	Spots             []spotResponse  `json:"spots"`
	Meta              metadataPayload `json:"meta"`
}

type spotResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Address  string   `json:"address,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

type metadataPayload struct {
	SourceKeywords   []string  `json:"source_keywords"`
	SpotCount        int       `json:"spot_count"`
	GeneratedAt      time.Time `json:"generated_at"`
	AlgorithmVersion string    `json:"algorithm_version"`
}

func routeToResponse(r domroute.GeneratedRoute) routeResponse {
	spots := make([]spotResponse, len(r.Cluster.Spots))
	for i, s := range r.Cluster.Spots {
		spots[i] = spotToResponse(s)
	}
	return routeResponse{
		ID:                r.ID,
		RouteName:         r.Content.RouteName,
		RegionDesc:        r.Content.RegionDesc,
		Recommendations:   r.Content.Recommendations,
		EstimatedDuration: r.Content.EstimatedDuration,
		ConfidenceScore:   r.Content.ConfidenceScore,
		Region:            r.Cluster.Region,
		ImageURL:          r.ImageURL,
		Spots:             spots,
		Meta: metadataPayload{
			SourceKeywords:   r.Meta.SourceKeywords,
			SpotCount:        r.Meta.SpotCount,
			GeneratedAt:      r.Meta.GeneratedAt,
			AlgorithmVersion: r.Meta.AlgorithmVersion,
		},
	}
}

func spotToResponse(s domain.TouristSpot) spotResponse {
	return spotResponse{
		ID:       s.ID,
		Name:     s.Name,
		Lat:      s.Lat,
		Lng:      s.Lng,
		Address:  s.Address,
		Hashtags: s.Hashtags,
		ImageURL: s.ImageURL,
	}
}

func resultToResponse(res domroute.Result) recommendationResponse {
	routes := make([]routeResponse, len(res.Routes))
	for i, r := range res.Routes {
		routes[i] = routeToResponse(r)
	}
	return recommendationResponse{
		Routes: routes,
		Summary: summaryResponse{
			TotalSpotsFound:  res.Summary.TotalSpotsFound,
			ClustersFormed:   res.Summary.ClustersFormed,
			RoutesGenerated:  res.Summary.RoutesGenerated,
			ProcessingTimeMs: res.Summary.ProcessingTimeMs,
		},
	}
}
