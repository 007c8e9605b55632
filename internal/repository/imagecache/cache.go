package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/db"
	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "img_cache:"

// store is the consumer interface for the image cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// provider matches the image lookup contract this cache decorates.
type provider interface {
	Lookup(ctx context.Context, name string, lat, lng float64, address string) (string, error)
}

// CachedProvider caches image lookup results in a key-value store.
// Empty results are cached too, so a spot with no nearby image does not
// hit the external API on every request.
type CachedProvider struct {
	inner      provider
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner provider,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedProvider {
	return &CachedProvider{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Lookup returns a cached image URL or calls the inner provider.
// Provider errors are not cached.
func (c *CachedProvider) Lookup(
	ctx context.Context, name string, lat, lng float64, address string,
) (string, error) {
	key := c.cacheKey(name, lat, lng)

	data, err := c.store.Get(ctx, key)
	if err == nil {
		c.incCache("hit")
		return string(data), nil
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		c.logger.Warn("image cache read failed", zap.Error(err))
	}

	c.incCache("miss")

	url, err := c.inner.Lookup(ctx, name, lat, lng, address)
	if err != nil {
		return "", err
	}

	if err := c.store.SetWithTTL(ctx, key, []byte(url), c.ttl); err != nil {
		c.logger.Warn("image cache write failed", zap.Error(err))
	}
	return url, nil
}

func (c *CachedProvider) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedProvider) cacheKey(name string, lat, lng float64) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%.5f|%.5f", name, lat, lng)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}
