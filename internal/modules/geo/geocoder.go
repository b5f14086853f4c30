package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Provider resolves a normalized postcode to coordinates.
type Provider interface {
	Lookup(ctx context.Context, postcode string) (lat, lon float64, err error)
}

// Geocoder caches successful provider lookups. Provider failures are absorbed
// and reported as not-found: geocoding must never block the operation that
// asked for it, callers fall back to manually supplied coordinates. Failed
// lookups are not cached, so the next call retries.
type Geocoder struct {
	provider Provider
	cache    *Cache
}

func NewGeocoder(provider Provider, cache *Cache) *Geocoder {
	return &Geocoder{provider: provider, cache: cache}
}

// Resolve returns coordinates for a postcode, or ok=false when the postcode
// is unknown or the provider is unavailable.
func (g *Geocoder) Resolve(ctx context.Context, postcode string) (lat, lon float64, ok bool) {
	key := NormalizePostcode(postcode)
	if key == "" {
		return 0, 0, false
	}

	if lat, lon, ok := g.cache.Get(key); ok {
		return lat, lon, true
	}

	lat, lon, err := g.provider.Lookup(ctx, key)
	if err != nil {
		log.Printf("geocode lookup failed postcode=%s error=%q", key, err)
		return 0, 0, false
	}

	g.cache.Put(key, lat, lon)
	return lat, lon, true
}

// NormalizePostcode case-folds and strips all whitespace so that
// "sw1a 1aa" and "SW1A1AA" share a cache key.
func NormalizePostcode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// HTTPProvider looks postcodes up against a postcodes.io-compatible API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type postcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"result"`
}

func (p *HTTPProvider) Lookup(ctx context.Context, postcode string) (float64, float64, error) {
	endpoint := p.baseURL + "/postcodes/" + url.PathEscape(postcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("postcode lookup: unexpected status %d", resp.StatusCode)
	}

	var body postcodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("postcode lookup: decode: %w", err)
	}

	return body.Result.Latitude, body.Result.Longitude, nil
}
