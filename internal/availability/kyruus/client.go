// Package kyruus provides a client for the Kyruus scheduling API,
// used as the live slot source for facilities carrying a Kyruus
// location code.
package kyruus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/findcare/findcare/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Kyruus scheduling API.
	DefaultBaseURL = "https://providencekyruus.azurewebsites.net"

	// ProviderName identifies this provider.
	ProviderName = "kyruus"

	// defaultVisitType is sent when no visit type is configured.
	defaultVisitType = "default"
)

// ClientConfig holds configuration for the Kyruus client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// VisitType selects the appointment visit type (defaults to "default").
	VisitType string

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

// Client is a Kyruus scheduling API client. It implements
// availability.SlotProvider.
type Client struct {
	baseURL    string
	visitType  string
	httpClient HTTPDoer
}

// NewClient creates a new Kyruus client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	visitType := cfg.VisitType
	if visitType == "" {
		visitType = defaultVisitType
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
		visitType:  visitType,
		httpClient: httpClient,
	}
}

type timeslotsResponse struct {
	Timeslots struct {
		Dates []dateData `json:"dates"`
	} `json:"timeslots"`
}

type dateData struct {
	Times []timeData `json:"times"`
}

type timeData struct {
	Timeslot string `json:"timeslot"`
}

// Slots fetches the available appointment times for a location code.
// The returned strings are passed through unmodified; Kyruus already
// emits timestamps.
func (c *Client) Slots(ctx context.Context, locationCode string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/api/getprovinnovatetimeslots?location_code=%s&visitType=%s",
		c.baseURL, url.QueryEscape(locationCode), url.QueryEscape(c.visitType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timeslots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from timeslots endpoint", resp.StatusCode)
	}

	var result timeslotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode timeslots response: %w", err)
	}

	var slots []string
	for _, d := range result.Timeslots.Dates {
		for _, t := range d.Times {
			if t.Timeslot != "" {
				slots = append(slots, t.Timeslot)
			}
		}
	}

	return slots, nil
}

// Location is a raw partner location record as returned by the
// locations endpoint. Only the fields the dataset refresh consumes
// are mapped.
type Location struct {
	Name            string              `json:"name"`
	BookingWheel    string              `json:"booking_wheelhouse"`
	IsUrgentCare    bool                `json:"is_urgent_care"`
	IsExpressCare   bool                `json:"is_express_care"`
	AddressPlain    string              `json:"address_plain"`
	Coordinates     *LocationCoords     `json:"coordinates"`
	Hours           map[string]DayHours `json:"hours"`
}

// LocationCoords is the coordinate pair on a raw location record.
type LocationCoords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// DayHours is the opening window for a single day, in partner
// format ("8:00 am").
type DayHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type locationsResponse struct {
	Locations []Location `json:"locations"`
}

// Locations fetches the raw partner location listing.
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	reqURL := c.baseURL + "/api/searchlocationsbyservices"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch locations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from locations endpoint", resp.StatusCode)
	}

	var result locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode locations response: %w", err)
	}

	return result.Locations, nil
}
