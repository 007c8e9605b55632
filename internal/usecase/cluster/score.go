package cluster

import (
	"sort"

	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
)

// SelectTop ranks clusters by density score, descending, and truncates to
// maxRoutes. The sort is stable: score ties keep the clusterer's output
// order, so results are deterministic for a given input ordering.
func SelectTop(clusters []domcluster.Cluster, maxRoutes int) []domcluster.Cluster {
	ranked := append([]domcluster.Cluster(nil), clusters...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	if len(ranked) > maxRoutes {
		ranked = ranked[:maxRoutes]
	}
	return ranked
}
