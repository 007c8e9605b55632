package spot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sx-tane/tourii-backend-sub002/internal/db"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
)

var keyPrefix = domain.KeyPrefix + "spot:"

// store is the consumer interface for spot storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/routes.SpotRepository over redis hashes.
type Repo struct {
	store store
}

// New creates a spot repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores one spot.
func (r *Repo) Save(ctx context.Context, s domain.TouristSpot) error {
	fields, err := spotToHash(s)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, keyPrefix+s.ID, fields); err != nil {
		return fmt.Errorf("hset spot %s: %w", s.ID, err)
	}
	return nil
}

// SaveMulti stores spots in a single pipelined round-trip.
func (r *Repo) SaveMulti(ctx context.Context, spots []domain.TouristSpot) error {
	items := make([]db.HashSetItem, len(spots))
	for i, s := range spots {
		fields, err := spotToHash(s)
		if err != nil {
			return err
		}
		items[i] = db.HashSetItem{Key: keyPrefix + s.ID, Fields: fields}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset spots: %w", err)
	}
	return nil
}

// Get retrieves a spot by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.TouristSpot, error) {
	m, err := r.store.HGetAll(ctx, keyPrefix+id)
	if err != nil {
		return domain.TouristSpot{}, fmt.Errorf("hgetall spot %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.TouristSpot{}, domain.ErrSpotNotFound
	}
	return spotFromHash(id, m)
}

// FindByHashtags returns spots whose hashtags match the keywords.
// Matching is case-insensitive substring on each hashtag; ALL requires
// every keyword to match some hashtag, ANY requires at least one.
// Results are ordered by spot id: SCAN order is not stable, and the
// clusterer downstream is seed-order dependent.
func (r *Repo) FindByHashtags(
	ctx context.Context, keywords []string, mode domain.MatchMode, region string,
) ([]domain.TouristSpot, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan spots: %w", err)
	}
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load spots: %w", err)
	}

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	regionLower := strings.ToLower(region)

	var matched []domain.TouristSpot
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		s, err := spotFromHash(strings.TrimPrefix(keys[i], keyPrefix), m)
		if err != nil {
			return nil, err
		}
		if !matchesKeywords(s.Hashtags, lowered, mode) {
			continue
		}
		if regionLower != "" && !matchesRegion(s, regionLower) {
			continue
		}
		matched = append(matched, s)
	}
	return matched, nil
}

func matchesKeywords(hashtags []string, loweredKeywords []string, mode domain.MatchMode) bool {
	matchOne := func(kw string) bool {
		for _, tag := range hashtags {
			if strings.Contains(strings.ToLower(tag), kw) {
				return true
			}
		}
		return false
	}

	if mode == domain.MatchAll {
		for _, kw := range loweredKeywords {
			if !matchOne(kw) {
				return false
			}
		}
		return true
	}

	for _, kw := range loweredKeywords {
		if matchOne(kw) {
			return true
		}
	}
	return false
}

// matchesRegion checks the leading hashtag (the operator region tag)
// and the address text.
func matchesRegion(s domain.TouristSpot, regionLower string) bool {
	if len(s.Hashtags) > 0 && strings.EqualFold(s.Hashtags[0], regionLower) {
		return true
	}
	return strings.Contains(strings.ToLower(s.Address), regionLower)
}
