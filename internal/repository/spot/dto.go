package spot

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
)

// spotToHash converts a domain TouristSpot to a map for HSET.
func spotToHash(s domain.TouristSpot) (map[string]string, error) {
	tagsJSON, err := json.Marshal(s.Hashtags)
	if err != nil {
		return nil, fmt.Errorf("marshal hashtags: %w", err)
	}
	return map[string]string{
		"name":          s.Name,
		"lat":           strconv.FormatFloat(s.Lat, 'f', -1, 64),
		"lng":           strconv.FormatFloat(s.Lng, 'f', -1, 64),
		"address":       s.Address,
		"hashtags_json": string(tagsJSON),
		"image_url":     s.ImageURL,
	}, nil
}

// spotFromHash hydrates a domain TouristSpot from an HGETALL result map.
func spotFromHash(id string, m map[string]string) (domain.TouristSpot, error) {
	s := domain.TouristSpot{
		ID:       id,
		Name:     m["name"],
		Address:  m["address"],
		ImageURL: m["image_url"],
	}

	if latStr := m["lat"]; latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return domain.TouristSpot{}, fmt.Errorf("invalid lat for spot %s: %w", id, err)
		}
		s.Lat = lat
	}
	if lngStr := m["lng"]; lngStr != "" {
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return domain.TouristSpot{}, fmt.Errorf("invalid lng for spot %s: %w", id, err)
		}
		s.Lng = lng
	}

	if tagsJSON := m["hashtags_json"]; tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &s.Hashtags); err != nil {
			return domain.TouristSpot{}, fmt.Errorf("unmarshal hashtags for spot %s: %w", id, err)
		}
	}

	return s, nil
}
