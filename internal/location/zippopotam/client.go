// Package zippopotam provides a client for the Zippopotam.us postal
// code API, used as the external geocoding fallback when a zip misses
// the local lookup table.
package zippopotam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/findcare/findcare/internal/location"
	"github.com/findcare/findcare/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Zippopotam API.
	DefaultBaseURL = "https://api.zippopotam.us"

	// ProviderName identifies this provider.
	ProviderName = "zippopotam"
)

// ClientConfig holds configuration for the Zippopotam client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 5s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Zippopotam API client. It implements location.Geocoder.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Zippopotam client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      1,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     1 * time.Second,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type zipResponse struct {
	Places []placeData `json:"places"`
}

type placeData struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	PlaceName string `json:"place name"`
}

// Geocode resolves a US postal code to coordinates.
func (c *Client) Geocode(ctx context.Context, zip string) (location.Coordinates, error) {
	url := fmt.Sprintf("%s/us/%s", c.baseURL, zip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return location.Coordinates{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return location.Coordinates{}, fmt.Errorf("geocode zip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return location.Coordinates{}, fmt.Errorf("unexpected status %d from zip endpoint", resp.StatusCode)
	}

	var result zipResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return location.Coordinates{}, fmt.Errorf("decode zip response: %w", err)
	}

	if len(result.Places) == 0 {
		return location.Coordinates{}, fmt.Errorf("no places for zip %s", zip)
	}

	lat, err := strconv.ParseFloat(result.Places[0].Latitude, 64)
	if err != nil {
		return location.Coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Places[0].Longitude, 64)
	if err != nil {
		return location.Coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}

	return location.Coordinates{Lat: lat, Lon: lon}, nil
}
