package route

import (
	"time"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
)

// routeDocument is the persisted JSON shape of a generated route. The
// document is self-contained: spot snapshots are embedded so a read does
// not fan out to the spot hashes.
type routeDocument struct {
	ID       string           `json:"id"`
	Content  contentDocument  `json:"content"`
	Cluster  clusterDocument  `json:"cluster"`
	ImageURL string           `json:"image_url,omitempty"`
	Meta     metadataDocument `json:"meta"`
}

type contentDocument struct {
	RouteName         string   `json:"route_name"`
	RegionDesc        string   `json:"region_desc"`
	Recommendations   []string `json:"recommendations"`
	EstimatedDuration string   `json:"estimated_duration"`
	ConfidenceScore   float64  `json:"confidence_score"`
}

type clusterDocument struct {
	ID                string         `json:"id"`
	Region            string         `json:"region"`
	CenterLat         float64        `json:"center_lat"`
	CenterLng         float64        `json:"center_lng"`
	AverageDistanceKm float64        `json:"average_distance_km"`
	Spots             []spotDocument `json:"spots"`
}

type spotDocument struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Address  string   `json:"address,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

type metadataDocument struct {
	SourceKeywords   []string  `json:"source_keywords"`
	SpotCount        int       `json:"spot_count"`
	GeneratedAt      time.Time `json:"generated_at"`
	AlgorithmVersion string    `json:"algorithm_version"`
}

func routeToDocument(r route.GeneratedRoute) routeDocument {
	spots := make([]spotDocument, len(r.Cluster.Spots))
	for i, s := range r.Cluster.Spots {
		spots[i] = spotDocument{
			ID:       s.ID,
			Name:     s.Name,
			Lat:      s.Lat,
			Lng:      s.Lng,
			Address:  s.Address,
			Hashtags: s.Hashtags,
			ImageURL: s.ImageURL,
		}
	}
	return routeDocument{
		ID: r.ID,
		Content: contentDocument{
			RouteName:         r.Content.RouteName,
			RegionDesc:        r.Content.RegionDesc,
			Recommendations:   r.Content.Recommendations,
			EstimatedDuration: r.Content.EstimatedDuration,
			ConfidenceScore:   r.Content.ConfidenceScore,
		},
		Cluster: clusterDocument{
			ID:                r.Cluster.ID,
			Region:            r.Cluster.Region,
			CenterLat:         r.Cluster.CenterLat,
			CenterLng:         r.Cluster.CenterLng,
			AverageDistanceKm: r.Cluster.AverageDistanceKm,
			Spots:             spots,
		},
		ImageURL: r.ImageURL,
		Meta: metadataDocument{
			SourceKeywords:   r.Meta.SourceKeywords,
			SpotCount:        r.Meta.SpotCount,
			GeneratedAt:      r.Meta.GeneratedAt,
			AlgorithmVersion: r.Meta.AlgorithmVersion,
		},
	}
}

func routeFromDocument(doc routeDocument) route.GeneratedRoute {
	spots := make([]domain.TouristSpot, len(doc.Cluster.Spots))
	for i, s := range doc.Cluster.Spots {
		spots[i] = domain.TouristSpot{
			ID:       s.ID,
			Name:     s.Name,
			Lat:      s.Lat,
			Lng:      s.Lng,
			Address:  s.Address,
			Hashtags: s.Hashtags,
			ImageURL: s.ImageURL,
		}
	}
	return route.GeneratedRoute{
		ID: doc.ID,
		Cluster: cluster.Cluster{
			ID:                doc.Cluster.ID,
			Region:            doc.Cluster.Region,
			CenterLat:         doc.Cluster.CenterLat,
			CenterLng:         doc.Cluster.CenterLng,
			AverageDistanceKm: doc.Cluster.AverageDistanceKm,
			Spots:             spots,
		},
		Content: route.GeneratedContent{
			RouteName:         doc.Content.RouteName,
			RegionDesc:        doc.Content.RegionDesc,
			Recommendations:   doc.Content.Recommendations,
			EstimatedDuration: doc.Content.EstimatedDuration,
			ConfidenceScore:   doc.Content.ConfidenceScore,
		},
		ImageURL: doc.ImageURL,
		Meta: route.Metadata{
			SourceKeywords:   doc.Meta.SourceKeywords,
			SpotCount:        doc.Meta.SpotCount,
			GeneratedAt:      doc.Meta.GeneratedAt,
			AlgorithmVersion: doc.Meta.AlgorithmVersion,
		},
	}
}
