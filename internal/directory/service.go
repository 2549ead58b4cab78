package directory

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/triage"
)

// ServiceConfig holds configuration for the directory service.
type ServiceConfig struct {
	// Primary supplies the base facility set (required).
	Primary Source

	// Partner supplies the richer externally-sourced set (optional).
	// When it yields any facilities for a venue, those fully replace
	// the primary's facilities for that venue; the two sets are never
	// merged within a venue.
	Partner Source

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service is the loaded facility directory. Load happens exactly once;
// reads afterwards are lock-free over immutable data.
type Service struct {
	primary Source
	partner Source
	logger  zerolog.Logger

	once       sync.Once
	loadErr    error
	facilities []Facility
	byID       map[string]*Facility
}

// NewService creates a new directory service. Call Load before serving
// requests.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		primary: cfg.Primary,
		partner: cfg.Partner,
		logger:  cfg.Logger,
	}
}

// Load populates the directory from its sources. Safe to call from
// concurrent first accesses; only the first call does work and all
// callers observe its result.
func (s *Service) Load(ctx context.Context) error {
	s.once.Do(func() {
		s.loadErr = s.load(ctx)
	})
	return s.loadErr
}

func (s *Service) load(ctx context.Context) error {
	primary, err := s.primary.Facilities(ctx)
	if err != nil {
		return err
	}

	var partner []Facility
	if s.partner != nil {
		partner, err = s.partner.Facilities(ctx)
		if err != nil {
			// The partner set enriches but is not required; fall back
			// to the primary set alone.
			s.logger.Warn().Err(err).
				Str("source", s.partner.Name()).
				Msg("partner facility source failed, using primary only")
			partner = nil
		}
	}

	// Venues for which the partner set has at least one record are
	// served exclusively from the partner set.
	partnerVenues := make(map[triage.Venue]bool)
	for _, f := range partner {
		partnerVenues[f.Venue] = true
	}

	merged := make([]Facility, 0, len(primary)+len(partner))
	for _, f := range primary {
		if !partnerVenues[f.Venue] {
			merged = append(merged, f)
		}
	}
	merged = append(merged, partner...)

	byID := make(map[string]*Facility, len(merged))
	for i := range merged {
		byID[merged[i].ID] = &merged[i]
	}

	s.facilities = merged
	s.byID = byID

	s.logger.Info().
		Int("total", len(merged)).
		Int("primary", len(primary)).
		Int("partner", len(partner)).
		Msg("facility directory loaded")

	return nil
}

// All returns every facility in the directory. The returned slice must
// not be modified.
func (s *Service) All() []Facility {
	return s.facilities
}

// ByVenue returns all facilities matching the given venue.
func (s *Service) ByVenue(venue triage.Venue) []Facility {
	var out []Facility
	for _, f := range s.facilities {
		if f.Venue == venue {
			out = append(out, f)
		}
	}
	return out
}

// Get returns the facility with the given id.
func (s *Service) Get(id string) (*Facility, bool) {
	f, ok := s.byID[id]
	return f, ok
}
