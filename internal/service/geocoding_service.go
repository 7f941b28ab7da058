package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/metrics"
)

// GeocodingService resolves coordinates to street addresses through a
// Nominatim-style reverse geocoding endpoint. Lookups are best effort:
// failures return an empty address, never an error the caller must handle.
type GeocodingService struct {
	client  *resty.Client
	baseURL string
	apiKey  string

	mu       sync.Mutex
	lastCall time.Time
	cache    map[string]cachedAddress
}

type cachedAddress struct {
	address string
	expires time.Time
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

const (
	geocodeMinInterval = time.Second
	geocodeCacheTTL    = 24 * time.Hour
)

// NewGeocodingService creates a new geocoding service
func NewGeocodingService(baseURL, apiKey string) *GeocodingService {
	client := resty.New().
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "fieldtrace-backend/1.0")

	return &GeocodingService{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   make(map[string]cachedAddress),
	}
}

// ReverseGeocode resolves a coordinate to an address. Returns an empty
// string when the upstream provider is unavailable or has no result.
func (s *GeocodingService) ReverseGeocode(lat, lon float64) string {
	key := fmt.Sprintf("%.5f,%.5f", lat, lon)

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && time.Now().Before(entry.expires) {
		s.mu.Unlock()
		return entry.address
	}
	// Upstream asks for at most one request per second.
	if wait := geocodeMinInterval - time.Since(s.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	s.lastCall = time.Now()
	s.mu.Unlock()

	params := map[string]string{
		"format": "json",
		"lat":    fmt.Sprintf("%f", lat),
		"lon":    fmt.Sprintf("%f", lon),
	}
	if s.apiKey != "" {
		params["key"] = s.apiKey
	}

	resp, err := s.client.R().
		SetQueryParams(params).
		SetResult(&reverseResponse{}).
		Get(s.baseURL + "/reverse")
	if err != nil {
		log.Printf("[Geocoding] Reverse lookup failed: %v", err)
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return ""
	}
	if resp.StatusCode() != 200 {
		log.Printf("[Geocoding] Bad status: %d", resp.StatusCode())
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return ""
	}

	result, ok := resp.Result().(*reverseResponse)
	if !ok {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return ""
	}
	metrics.GeocodeLookups.WithLabelValues("ok").Inc()

	s.mu.Lock()
	s.cache[key] = cachedAddress{address: result.DisplayName, expires: time.Now().Add(geocodeCacheTTL)}
	s.mu.Unlock()

	return result.DisplayName
}
