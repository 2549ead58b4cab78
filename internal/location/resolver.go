// Package location resolves caller-supplied position hints (explicit
// coordinates or a postal code) to concrete coordinates for facility
// search.
package location

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"math"

	"github.com/rs/zerolog"
)

// ErrLocationRequired is returned when neither coordinates nor a
// resolvable zip code were supplied. Unlike other external failures in
// the search path this one has no fallback and propagates to the caller.
var ErrLocationRequired = errors.New("location required: provide lat/lon or a known zip")

//go:embed data/zip.json
var zipJSON []byte

// Coordinates is a resolved WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type zipEntry struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	City string  `json:"city"`
}

// DefaultZipTable returns the embedded zip table.
func DefaultZipTable() map[string]Coordinates {
	var entries map[string]zipEntry
	if err := json.Unmarshal(zipJSON, &entries); err != nil {
		return map[string]Coordinates{}
	}
	table := make(map[string]Coordinates, len(entries))
	for zip, e := range entries {
		table[zip] = Coordinates{Lat: e.Lat, Lon: e.Lon}
	}
	return table
}

// Geocoder resolves a postal code via an external service.
type Geocoder interface {
	Geocode(ctx context.Context, zip string) (Coordinates, error)
}

// ResolverConfig holds configuration for the resolver.
type ResolverConfig struct {
	// ZipTable maps postal codes to coordinates and is consulted
	// before the external geocoder. Defaults to the embedded table.
	ZipTable map[string]Coordinates

	// Geocoder is the external fallback used when the zip table
	// misses. Optional; without it an unknown zip cannot be resolved.
	Geocoder Geocoder

	// Logger for resolver operations.
	Logger zerolog.Logger
}

// Resolver turns position hints into coordinates. Explicit coordinates
// win; otherwise the zip table is consulted, then the external
// geocoder.
type Resolver struct {
	zips     map[string]Coordinates
	geocoder Geocoder
	logger   zerolog.Logger
}

// NewResolver creates a new location resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	zips := cfg.ZipTable
	if zips == nil {
		zips = DefaultZipTable()
	}
	return &Resolver{
		zips:     zips,
		geocoder: cfg.Geocoder,
		logger:   cfg.Logger,
	}
}

// Resolve returns coordinates for the given hints. lat and lon are
// used as-is when both are present. A geocoder failure is not an
// error by itself; it only surfaces as ErrLocationRequired when no
// other path yields coordinates.
func (r *Resolver) Resolve(ctx context.Context, lat, lon *float64, zip string) (Coordinates, error) {
	if lat != nil && lon != nil {
		return Coordinates{Lat: *lat, Lon: *lon}, nil
	}

	if zip == "" {
		return Coordinates{}, ErrLocationRequired
	}

	if c, ok := r.zips[zip]; ok {
		return c, nil
	}

	if r.geocoder != nil {
		coords, err := r.geocoder.Geocode(ctx, zip)
		if err != nil {
			r.logger.Warn().Err(err).Str("zip", zip).Msg("external geocoding failed")
		} else if valid(coords) {
			return coords, nil
		}
	}

	return Coordinates{}, ErrLocationRequired
}

// valid rejects non-finite and out-of-range coordinates from the
// external service.
func valid(c Coordinates) bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
