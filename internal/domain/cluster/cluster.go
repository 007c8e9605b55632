package cluster

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain/geo"
)

// Clustering defaults.
const (
	DefaultProximityRadiusKm  = 50.0
	DefaultMinSpotsPerCluster = 2
	DefaultMaxSpotsPerCluster = 8
)

// Options controls proximity clustering.
type Options struct {
	ProximityRadiusKm  float64
	MinSpotsPerCluster int
	MaxSpotsPerCluster int
}

// DefaultOptions returns the standard clustering parameters.
func DefaultOptions() Options {
	return Options{
		ProximityRadiusKm:  DefaultProximityRadiusKm,
		MinSpotsPerCluster: DefaultMinSpotsPerCluster,
		MaxSpotsPerCluster: DefaultMaxSpotsPerCluster,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.ProximityRadiusKm <= 0 {
		return domain.NewValidationError("proximity_radius_km", "must be greater than 0")
	}
	if o.MinSpotsPerCluster < 1 {
		return domain.NewValidationError("min_spots_per_cluster", "must be at least 1")
	}
	if o.MaxSpotsPerCluster < o.MinSpotsPerCluster {
		return domain.NewValidationError("max_spots_per_cluster", "must be >= min_spots_per_cluster")
	}
	return nil
}

// Cluster is a group of geographically nearby tourist spots treated as
// one candidate route.
type Cluster struct {
	ID                string
	Spots             []domain.TouristSpot
	CenterLat         float64
	CenterLng         float64
	Region            string
	AverageDistanceKm float64
}

// New builds a cluster from its members: center is the unweighted mean of
// member coordinates, average distance is the mean Haversine distance of
// members from that center, and the id is an order-independent content
// hash of the member ids.
func New(spots []domain.TouristSpot, region string) Cluster {
	var latSum, lngSum float64
	for _, s := range spots {
		latSum += s.Lat
		lngSum += s.Lng
	}
	centerLat := latSum / float64(len(spots))
	centerLng := lngSum / float64(len(spots))

	var distSum float64
	for _, s := range spots {
		distSum += geo.Haversine(s.Lat, s.Lng, centerLat, centerLng)
	}

	return Cluster{
		ID:                ID(spots),
		Spots:             spots,
		CenterLat:         centerLat,
		CenterLng:         centerLng,
		Region:            region,
		AverageDistanceKm: distSum / float64(len(spots)),
	}
}

// Score rewards clusters that are both large and geographically tight.
func (c *Cluster) Score() float64 {
	return float64(len(c.Spots)) / (c.AverageDistanceKm + 1)
}

// ID derives a stable cluster id from the sorted member-id list, so the
// same membership yields the same id regardless of member ordering.
func ID(spots []domain.TouristSpot) string {
	ids := make([]string, len(spots))
	for i, s := range spots {
		ids[i] = s.ID
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return "cluster_" + hex.EncodeToString(sum[:8])
}
