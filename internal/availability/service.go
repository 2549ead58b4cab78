// Package availability produces appointment slots for a facility,
// preferring a live scheduling provider and falling back to
// deterministic generation from the facility's weekly hours.
package availability

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/hours"
)

// Defaults and bounds for availability requests.
const (
	DefaultServiceCode = "urgent-care"
	DefaultDays        = 7
	MinDays            = 1
	MaxDays            = 14

	slotCountMin = 3
	slotCountMax = 6
)

var (
	// ErrFacilityNotFound is returned for an unknown facility id.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidDays is returned when the requested window is out of range.
	ErrInvalidDays = errors.New("days must be between 1 and 14")
)

// Request asks for appointment slots at a facility.
type Request struct {
	FacilityID  string `json:"facilityId"`
	ServiceCode string `json:"serviceCode,omitempty"`
	Days        int    `json:"days,omitempty"`
}

// Response carries the generated or live slots as RFC3339 UTC strings,
// sorted ascending.
type Response struct {
	FacilityID  string   `json:"facilityId"`
	ServiceCode string   `json:"serviceCode"`
	Slots       []string `json:"slots"`
}

// SlotProvider fetches live appointment slots from an external
// scheduling system.
type SlotProvider interface {
	Slots(ctx context.Context, locationCode string) ([]string, error)
}

// ServiceConfig holds configuration for the availability service.
type ServiceConfig struct {
	// Directory is the loaded facility directory (required).
	Directory *directory.Service

	// Live is the external scheduling provider. Optional; facilities
	// without a location code, provider errors and empty provider
	// results all fall back to deterministic generation.
	Live SlotProvider

	// LocationOverrides maps dataset location codes to corrected
	// codes for the live provider. Optional; a bad partner code can
	// be fixed here without waiting for a dataset refresh.
	LocationOverrides map[string]string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service answers availability requests.
type Service struct {
	directory *directory.Service
	live      SlotProvider
	overrides map[string]string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewService creates a new availability service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		directory: cfg.Directory,
		live:      cfg.Live,
		overrides: cfg.LocationOverrides,
		now:       now,
		logger:    cfg.Logger,
	}
}

// GetAvailability returns slots for the requested facility. The slot
// list for a given facility and service code is stable across calls
// when the deterministic fallback is used: the generator is seeded
// from the pair, never from the clock.
func (s *Service) GetAvailability(ctx context.Context, req Request) (*Response, error) {
	serviceCode := req.ServiceCode
	if serviceCode == "" {
		serviceCode = DefaultServiceCode
	}
	days := req.Days
	if days == 0 {
		days = DefaultDays
	}
	if days < MinDays || days > MaxDays {
		return nil, ErrInvalidDays
	}

	fac, ok := s.directory.Get(req.FacilityID)
	if !ok {
		return nil, ErrFacilityNotFound
	}

	if s.live != nil && fac.LocationCode != "" {
		code := fac.LocationCode
		if corrected, ok := s.overrides[code]; ok && corrected != "" {
			code = corrected
		}
		slots, err := s.live.Slots(ctx, code)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("facilityId", fac.ID).
				Str("locationCode", code).
				Msg("live availability lookup failed, using generated slots")
		} else if len(slots) > 0 {
			return &Response{FacilityID: fac.ID, ServiceCode: serviceCode, Slots: slots}, nil
		}
	}

	rng := mulberry32(seedFor(fac.ID, serviceCode))
	slots := hours.NextSlots(fac.TimeZone, fac.WeeklyHours, s.now(), days, slotCountMin, slotCountMax, rng)
	if slots == nil {
		slots = []string{}
	}

	return &Response{FacilityID: fac.ID, ServiceCode: serviceCode, Slots: slots}, nil
}
