package kyruus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findcare/findcare/internal/availability/kyruus"
)

func TestClient_Slots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getprovinnovatetimeslots", r.URL.Path)
		assert.Equal(t, "ANC-MID-UC", r.URL.Query().Get("location_code"))
		assert.Equal(t, "default", r.URL.Query().Get("visitType"))

		response := map[string]interface{}{
			"timeslots": map[string]interface{}{
				"dates": []map[string]interface{}{
					{
						"times": []map[string]interface{}{
							{"timeslot": "2026-01-06T18:00:00Z"},
							{"timeslot": "2026-01-06T18:30:00Z"},
						},
					},
					{
						"times": []map[string]interface{}{
							{"timeslot": "2026-01-07T17:00:00Z"},
							{"timeslot": ""},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := kyruus.NewClient(kyruus.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	slots, err := client.Slots(context.Background(), "ANC-MID-UC")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-01-06T18:00:00Z",
		"2026-01-06T18:30:00Z",
		"2026-01-07T17:00:00Z",
	}, slots)
}

func TestClient_Slots_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := kyruus.NewClient(kyruus.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	slots, err := client.Slots(context.Background(), "ANC-MID-UC")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestClient_Slots_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := kyruus.NewClient(kyruus.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Slots(context.Background(), "ANC-MID-UC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClient_Locations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/searchlocationsbyservices", r.URL.Path)

		response := map[string]interface{}{
			"locations": []map[string]interface{}{
				{
					"name":               "Providence Express Care Midtown",
					"booking_wheelhouse": "anc-midtown",
					"is_urgent_care":     true,
					"address_plain":      "3300 Providence Dr, Anchorage, AK 99508",
					"coordinates":        map[string]float64{"lat": 61.19, "lng": -149.82},
					"hours": map[string]interface{}{
						"Monday": map[string]string{"start": "8:00 am", "end": "8:00 pm"},
					},
				},
				{
					"name": "No booking wheelhouse",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := kyruus.NewClient(kyruus.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	locations, err := client.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)

	loc := locations[0]
	assert.Equal(t, "anc-midtown", loc.BookingWheel)
	assert.True(t, loc.IsUrgentCare)
	require.NotNil(t, loc.Coordinates)
	assert.InDelta(t, 61.19, loc.Coordinates.Lat, 0.0001)
	assert.InDelta(t, -149.82, loc.Coordinates.Lon, 0.0001)
	assert.Equal(t, "8:00 am", loc.Hours["Monday"].Start)
}

func TestClient_Locations_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := kyruus.NewClient(kyruus.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Locations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
}
