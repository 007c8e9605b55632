package wikimedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	"github.com/sx-tane/tourii-backend-sub002/internal/metrics"
)

const (
	defaultBaseURL = "https://commons.wikimedia.org/w/api.php"
	defaultTimeout = 10 * time.Second

	// searchRadiusM bounds the geosearch around the spot coordinates.
	searchRadiusM = 500
)

// ImageProvider resolves representative images from Wikimedia Commons
// by coordinate geosearch.
type ImageProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *zap.Logger
}

// Config holds the image provider settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// NewImageProvider creates a Wikimedia Commons image provider.
func NewImageProvider(cfg *Config) *ImageProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImageProvider{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// geosearchResponse mirrors the MediaWiki query API shape this provider
// consumes.
type geosearchResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup returns the URL of an image near the given coordinates. An
// empty URL with nil error means nothing suitable was found.
func (p *ImageProvider) Lookup(ctx context.Context, name string, lat, lng float64, address string) (string, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("format", "json")
	query.Set("generator", "geosearch")
	query.Set("ggscoord", fmt.Sprintf("%f|%f", lat, lng))
	query.Set("ggsradius", fmt.Sprintf("%d", searchRadiusM))
	query.Set("ggslimit", "5")
	query.Set("ggsnamespace", "6")
	query.Set("prop", "imageinfo")
	query.Set("iiprop", "url")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		metrics.ImageLookupsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("build geosearch request: %w", domain.ErrImageProviderError)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.ImageLookupsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("geosearch for %q: %v: %w", name, err, domain.ErrImageProviderError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ImageLookupsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("geosearch for %q: status %d: %w", name, resp.StatusCode, domain.ErrImageProviderError)
	}

	var parsed geosearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ImageLookupsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode geosearch response: %v: %w", err, domain.ErrImageProviderError)
	}

	for _, page := range parsed.Query.Pages {
		for _, info := range page.ImageInfo {
			if info.URL != "" {
				metrics.ImageLookupsTotal.WithLabelValues("found").Inc()
				return info.URL, nil
			}
		}
	}

	metrics.ImageLookupsTotal.WithLabelValues("not_found").Inc()
	p.logger.Debug("no image near coordinates",
		zap.String("name", name), zap.Float64("lat", lat), zap.Float64("lng", lng))
	return "", nil
}
