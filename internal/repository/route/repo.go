package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/sx-tane/tourii-backend-sub002/internal/db"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
)

const keyPrefix = domain.KeyPrefix + "route:"

// store is the narrow database surface this repository needs.
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
}

// Repo persists generated routes as JSON documents, with spot links kept
// in junction hashes alongside the document.
type Repo struct {
	store store
}

func New(store store) *Repo {
	return &Repo{store: store}
}

// CreateRoute stores the route document and returns its id. A missing id
// is minted here so callers never persist an unaddressable route.
func (r *Repo) CreateRoute(ctx context.Context, gr *route.GeneratedRoute) (string, error) {
	if gr.ID == "" {
		gr.ID = uuid.NewString()
	}

	data, err := json.Marshal(routeToDocument(*gr))
	if err != nil {
		return "", fmt.Errorf("marshal route %s: %w", gr.ID, err)
	}
	if err := r.store.JSONSet(ctx, keyPrefix+gr.ID, "$", data); err != nil {
		return "", fmt.Errorf("store route %s: %w", gr.ID, err)
	}
	return gr.ID, nil
}

// LinkSpotsToRoute writes one junction hash per spot, preserving the
// cluster's display order.
func (r *Repo) LinkSpotsToRoute(ctx context.Context, routeID string, spotIDs []string) error {
	if len(spotIDs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(spotIDs))
	for i, spotID := range spotIDs {
		items[i] = db.HashSetItem{
			Key: fmt.Sprintf("%s%s:spot:%d", keyPrefix, routeID, i),
			Fields: map[string]string{
				"spot_id":       spotID,
				"display_order": strconv.Itoa(i),
			},
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("link %d spots to route %s: %w", len(spotIDs), routeID, err)
	}
	return nil
}

// GetRoute loads a previously stored route document.
func (r *Repo) GetRoute(ctx context.Context, id string) (route.GeneratedRoute, error) {
	raw, err := r.store.JSONGet(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return route.GeneratedRoute{}, domain.ErrRouteNotFound
		}
		return route.GeneratedRoute{}, fmt.Errorf("load route %s: %w", id, err)
	}

	var doc routeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return route.GeneratedRoute{}, fmt.Errorf("decode route %s: %w", id, err)
	}
	return routeFromDocument(doc), nil
}
