package location

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

type stubGeocoder struct {
	coords Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(ctx context.Context, zip string) (Coordinates, error) {
	g.calls++
	return g.coords, g.err
}

func ptr(v float64) *float64 { return &v }

func TestResolveExplicitCoordinates(t *testing.T) {
	geo := &stubGeocoder{}
	r := NewResolver(ResolverConfig{Geocoder: geo, Logger: zerolog.Nop()})

	got, err := r.Resolve(context.Background(), ptr(61.2), ptr(-149.9), "98101")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Lat != 61.2 || got.Lon != -149.9 {
		t.Errorf("Resolve = %+v, want explicit coordinates", got)
	}
	if geo.calls != 0 {
		t.Errorf("geocoder called %d times with explicit coordinates", geo.calls)
	}
}

func TestResolveLocalZipTable(t *testing.T) {
	geo := &stubGeocoder{}
	r := NewResolver(ResolverConfig{Geocoder: geo, Logger: zerolog.Nop()})

	got, err := r.Resolve(context.Background(), nil, nil, "99508")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Lat != 61.2043 || got.Lon != -149.8115 {
		t.Errorf("Resolve(99508) = %+v", got)
	}
	if geo.calls != 0 {
		t.Errorf("geocoder called for a zip present in the local table")
	}
}

func TestResolveFixtureZipTable(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("geocode unavailable")}
	r := NewResolver(ResolverConfig{
		ZipTable: map[string]Coordinates{"00001": {Lat: 1.5, Lon: -2.5}},
		Geocoder: geo,
		Logger:   zerolog.Nop(),
	})

	got, err := r.Resolve(context.Background(), nil, nil, "00001")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Lat != 1.5 || got.Lon != -2.5 {
		t.Errorf("Resolve(00001) = %+v, want fixture entry", got)
	}

	// A fixture table replaces the embedded one entirely.
	if _, err := r.Resolve(context.Background(), nil, nil, "99508"); !errors.Is(err, ErrLocationRequired) {
		t.Errorf("Resolve(99508) err = %v, want ErrLocationRequired", err)
	}
}

func TestResolveGeocoderFallback(t *testing.T) {
	geo := &stubGeocoder{coords: Coordinates{Lat: 40.7128, Lon: -74.006}}
	r := NewResolver(ResolverConfig{Geocoder: geo, Logger: zerolog.Nop()})

	got, err := r.Resolve(context.Background(), nil, nil, "10001")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != geo.coords {
		t.Errorf("Resolve = %+v, want geocoder result", got)
	}
	if geo.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geo.calls)
	}
}

func TestResolveGeocoderFailure(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("timeout")}
	r := NewResolver(ResolverConfig{Geocoder: geo, Logger: zerolog.Nop()})

	if _, err := r.Resolve(context.Background(), nil, nil, "10001"); !errors.Is(err, ErrLocationRequired) {
		t.Fatalf("Resolve err = %v, want ErrLocationRequired", err)
	}
}

func TestResolveGeocoderInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
	}{
		{"NaN lat", Coordinates{Lat: math.NaN(), Lon: -74}},
		{"Inf lon", Coordinates{Lat: 40, Lon: math.Inf(1)}},
		{"lat out of range", Coordinates{Lat: 91, Lon: 0}},
		{"lon out of range", Coordinates{Lat: 0, Lon: -181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(ResolverConfig{Geocoder: &stubGeocoder{coords: tt.coords}, Logger: zerolog.Nop()})
			if _, err := r.Resolve(context.Background(), nil, nil, "10001"); !errors.Is(err, ErrLocationRequired) {
				t.Errorf("Resolve err = %v, want ErrLocationRequired", err)
			}
		})
	}
}

func TestResolveNoHints(t *testing.T) {
	r := NewResolver(ResolverConfig{Logger: zerolog.Nop()})
	if _, err := r.Resolve(context.Background(), nil, nil, ""); !errors.Is(err, ErrLocationRequired) {
		t.Fatalf("Resolve err = %v, want ErrLocationRequired", err)
	}
}

func TestResolveUnknownZipNoGeocoder(t *testing.T) {
	r := NewResolver(ResolverConfig{Logger: zerolog.Nop()})
	if _, err := r.Resolve(context.Background(), nil, nil, "00000"); !errors.Is(err, ErrLocationRequired) {
		t.Fatalf("Resolve err = %v, want ErrLocationRequired", err)
	}
}

func TestResolvePartialCoordinates(t *testing.T) {
	// A lone lat is not enough; fall through to zip resolution.
	r := NewResolver(ResolverConfig{Logger: zerolog.Nop()})
	got, err := r.Resolve(context.Background(), ptr(61.2), nil, "98101")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Lat != 47.6114 {
		t.Errorf("Resolve = %+v, want zip table entry for 98101", got)
	}
}
