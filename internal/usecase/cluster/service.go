package cluster

import (
	"strings"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain/geo"
	domregion "github.com/sx-tane/tourii-backend-sub002/internal/domain/region"
)

// Service groups candidate spots into geographically compact clusters.
type Service struct {
	regions RegionClassifier
}

// New creates a proximity clusterer.
func New(regions RegionClassifier) *Service {
	return &Service{regions: regions}
}

// Cluster greedily groups spots by great-circle proximity to a seed.
//
// The grouping is seed-order dependent: spots are scanned in input order,
// and a seed claims every unassigned spot within the radius, up to the
// size cap. Two mutually-nearby spots can land in different clusters when
// an earlier seed claims one of them first. This mirrors how operators
// curate the catalog (ordered by editorial priority) and is intentional.
func (s *Service) Cluster(spots []domain.TouristSpot, opts domcluster.Options) ([]domcluster.Cluster, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	located := make([]domain.TouristSpot, 0, len(spots))
	for _, spot := range spots {
		if spot.HasCoordinates() && geo.ValidateCoordinates(spot.Lat, spot.Lng) {
			located = append(located, spot)
		}
	}

	assigned := make(map[string]bool, len(located))
	var clusters []domcluster.Cluster

	for _, seed := range located {
		if assigned[seed.ID] {
			continue
		}

		var members []domain.TouristSpot
		for _, candidate := range located {
			if assigned[candidate.ID] {
				continue
			}
			if geo.Haversine(seed.Lat, seed.Lng, candidate.Lat, candidate.Lng) <= opts.ProximityRadiusKm {
				members = append(members, candidate)
			}
		}

		// Too few neighbors: the seed stays unclustered this pass. It may
		// still be claimed as a neighbor of a later seed.
		if len(members) < opts.MinSpotsPerCluster {
			continue
		}
		if len(members) > opts.MaxSpotsPerCluster {
			members = members[:opts.MaxSpotsPerCluster]
		}

		clusters = append(clusters, domcluster.New(members, s.clusterRegion(members)))
		for _, m := range members {
			assigned[m.ID] = true
		}
	}

	return clusters, nil
}

// clusterRegion reduces member region signals to their mode. A spot's
// leading hashtag is taken as the region signal when present (operators
// tag spots with a region hashtag first); otherwise the classifier runs
// on the spot's address or coordinates. Ties break by first-seen order.
func (s *Service) clusterRegion(members []domain.TouristSpot) string {
	counts := make(map[string]int, len(members))
	var seen []string

	for _, m := range members {
		signal := ""
		if len(m.Hashtags) > 0 {
			signal = strings.TrimPrefix(m.Hashtags[0], "#")
		} else {
			cls := s.regions.Classify(m.Address, m.Lat, m.Lng, m.HasCoordinates())
			if cls.IsKnown() {
				signal = cls.Region
			}
		}
		if signal == "" || signal == domregion.Unknown {
			continue
		}
		if counts[signal] == 0 {
			seen = append(seen, signal)
		}
		counts[signal]++
	}

	best, bestCount := domregion.Unknown, 0
	for _, r := range seen {
		if counts[r] > bestCount {
			best, bestCount = r, counts[r]
		}
	}
	return best
}
