package cluster

import (
	domregion "github.com/sx-tane/tourii-backend-sub002/internal/domain/region"
)

// RegionClassifier resolves a spot's address or coordinates to a region tag.
type RegionClassifier interface {
	Classify(address string, lat, lng float64, hasCoords bool) domregion.Classification
}
