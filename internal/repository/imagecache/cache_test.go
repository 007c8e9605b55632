package imagecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/db"
)

type mockProvider struct {
	url   string
	err   error
	calls int
}

func (m *mockProvider) Lookup(_ context.Context, _ string, _, _ float64, _ string) (string, error) {
	m.calls++
	return m.url, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	values map[string][]byte
	getErr error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{values: make(map[string][]byte)}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func TestLookup_MissThenHit(t *testing.T) {
	inner := &mockProvider{url: "https://img/a.jpg"}
	cache := New(inner, newMockKVStore(), time.Hour, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		url, err := cache.Lookup(context.Background(), "Senso-ji", 35.7148, 139.7967, "")
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if url != "https://img/a.jpg" {
			t.Errorf("url = %q", url)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestLookup_NegativeResultCached(t *testing.T) {
	inner := &mockProvider{url: ""}
	cache := New(inner, newMockKVStore(), time.Hour, nil, zap.NewNop())

	for i := 0; i < 2; i++ {
		url, err := cache.Lookup(context.Background(), "Nowhere", 0.1, 0.1, "")
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if url != "" {
			t.Errorf("url = %q, want empty", url)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1 (empty result cached)", inner.calls)
	}
}

func TestLookup_ErrorsNotCached(t *testing.T) {
	inner := &mockProvider{err: errors.New("geosearch down")}
	store := newMockKVStore()
	cache := New(inner, store, time.Hour, nil, zap.NewNop())

	if _, err := cache.Lookup(context.Background(), "Senso-ji", 35.7148, 139.7967, ""); err == nil {
		t.Fatal("expected error from inner provider")
	}
	if len(store.values) != 0 {
		t.Errorf("error result was cached: %v", store.values)
	}

	if _, err := cache.Lookup(context.Background(), "Senso-ji", 35.7148, 139.7967, ""); err == nil {
		t.Fatal("expected error from inner provider")
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2 (errors retried)", inner.calls)
	}
}

func TestLookup_StoreFailureFallsThrough(t *testing.T) {
	inner := &mockProvider{url: "https://img/a.jpg"}
	store := newMockKVStore()
	store.getErr = errors.New("connection reset")
	cache := New(inner, store, time.Hour, nil, zap.NewNop())

	url, err := cache.Lookup(context.Background(), "Senso-ji", 35.7148, 139.7967, "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if url != "https://img/a.jpg" {
		t.Errorf("url = %q", url)
	}
}

func TestCacheKey_CoordinateSensitive(t *testing.T) {
	cache := New(&mockProvider{}, newMockKVStore(), time.Hour, nil, zap.NewNop())

	a := cache.cacheKey("Senso-ji", 35.7148, 139.7967)
	b := cache.cacheKey("Senso-ji", 35.7149, 139.7967)
	if a == b {
		t.Error("keys for different coordinates must differ")
	}
}
