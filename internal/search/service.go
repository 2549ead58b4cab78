// Package search filters and ranks the facility directory by distance,
// hours, pediatric-friendliness and insurance acceptance, with a
// progressive-relaxation fallback ladder for empty result sets.
package search

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/hours"
	"github.com/findcare/findcare/internal/insurance"
	"github.com/findcare/findcare/internal/location"
	"github.com/findcare/findcare/internal/triage"
	"github.com/findcare/findcare/pkg/geo"
)

// ErrInvalidVenue is returned when the requested venue is missing or
// not one of the known venue types.
var ErrInvalidVenue = errors.New("venue must be one of: urgent_care, er, primary_care, virtual")

// ServiceConfig holds configuration for the search service.
type ServiceConfig struct {
	// Directory is the loaded facility directory (required).
	Directory *directory.Service

	// Resolver turns zip codes into coordinates (required).
	Resolver *location.Resolver

	// Normalizer resolves insurance plan hints. Defaults to a
	// normalizer over the embedded plan set.
	Normalizer *insurance.Normalizer

	// Now returns the current time. Defaults to time.Now; injected in
	// tests to pin open-now evaluation.
	Now func() time.Time

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service executes facility searches.
type Service struct {
	directory  *directory.Service
	resolver   *location.Resolver
	normalizer *insurance.Normalizer
	now        func() time.Time
	logger     zerolog.Logger
}

// NewService creates a new search service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = insurance.NewNormalizer(insurance.NormalizerConfig{})
	}
	return &Service{
		directory:  cfg.Directory,
		resolver:   cfg.Resolver,
		normalizer: normalizer,
		now:        now,
		logger:     cfg.Logger,
	}
}

// Search resolves the request's location, filters the directory and
// ranks the results. When the requested filter set yields nothing the
// fallback ladder progressively relaxes filters, in order: drop
// openNow; drop pediatricFriendly if it was set; widen the radius to at
// least 25 miles; widen to at least 35 miles. The insurance filter is
// never relaxed. An exhausted ladder returns an empty list, not an
// error; an unresolvable location returns location.ErrLocationRequired.
func (s *Service) Search(ctx context.Context, req Request) ([]Result, error) {
	if !triage.IsValidVenue(req.Venue) {
		return nil, ErrInvalidVenue
	}

	coords, err := s.resolver.Resolve(ctx, req.Lat, req.Lon, req.Zip)
	if err != nil {
		return nil, err
	}

	radius := req.RadiusMiles
	if radius <= 0 {
		radius = DefaultRadiusMiles
	}

	candidates := s.directory.ByVenue(req.Venue)
	planID := s.normalizer.Normalize(req.AcceptsInsurancePlanID, req.AcceptsInsurancePlanName)
	now := s.now()

	f := filters{
		pediatricFriendly: req.PediatricFriendly,
		planID:            planID,
		openNow:           req.OpenNow,
	}

	results := computeResults(coords, candidates, radius, f, now)

	if len(results) == 0 {
		f.openNow = nil
		results = computeResults(coords, candidates, radius, f, now)
	}
	if len(results) == 0 && req.PediatricFriendly != nil {
		f.pediatricFriendly = nil
		results = computeResults(coords, candidates, radius, f, now)
	}
	if len(results) == 0 {
		f.pediatricFriendly = nil
		results = computeResults(coords, candidates, maxRadius(radius, 25), f, now)
	}
	if len(results) == 0 {
		results = computeResults(coords, candidates, maxRadius(radius, 35), f, now)
	}

	s.logger.Debug().
		Str("venue", string(req.Venue)).
		Float64("radiusMiles", radius).
		Int("results", len(results)).
		Msg("facility search complete")

	return results, nil
}

// computeResults annotates each facility with distance and open state,
// applies the filter set, and ranks open facilities first, nearest
// first within each group.
func computeResults(origin location.Coordinates, facilities []directory.Facility, radiusMiles float64, f filters, now time.Time) []Result {
	results := make([]Result, 0, len(facilities))
	for i := range facilities {
		fac := facilities[i]
		r := Result{
			Facility: fac,
			Distance: geo.Miles(origin.Lat, origin.Lon, fac.Lat, fac.Lon),
			OpenNow:  hours.IsOpen(fac.TimeZone, fac.WeeklyHours, now),
		}
		if r.Distance > radiusMiles {
			continue
		}
		if f.pediatricFriendly != nil && fac.PediatricFriendly != *f.pediatricFriendly {
			continue
		}
		if f.planID != "" && !fac.AcceptsPlan(f.planID) {
			continue
		}
		if f.openNow != nil && r.OpenNow != *f.openNow {
			continue
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].OpenNow != results[j].OpenNow {
			return results[i].OpenNow
		}
		return results[i].Distance < results[j].Distance
	})

	return results
}

func maxRadius(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
