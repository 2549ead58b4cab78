package search

import (
	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/triage"
)

// DefaultRadiusMiles is the search radius applied when the caller does
// not supply one.
const DefaultRadiusMiles = 40

// Request is a facility search request. Lat/Lon take precedence over
// Zip. OpenNow and PediatricFriendly are tri-state: nil means the
// filter is not applied.
type Request struct {
	Lat                      *float64     `json:"lat,omitempty"`
	Lon                      *float64     `json:"lon,omitempty"`
	Zip                      string       `json:"zip,omitempty"`
	RadiusMiles              float64      `json:"radiusMiles,omitempty"`
	Venue                    triage.Venue `json:"venue"`
	AcceptsInsurancePlanID   string       `json:"acceptsInsurancePlanId,omitempty"`
	AcceptsInsurancePlanName string       `json:"acceptsInsurancePlanName,omitempty"`
	OpenNow                  *bool        `json:"openNow,omitempty"`
	PediatricFriendly        *bool        `json:"pediatricFriendly,omitempty"`
}

// Result is a facility annotated with its distance from the search
// origin and whether it is open at search time.
type Result struct {
	directory.Facility
	Distance float64 `json:"distance"`
	OpenNow  bool    `json:"openNow"`
}

// filters is the relaxable subset of search criteria. The insurance
// plan filter is deliberately never relaxed by the fallback ladder.
type filters struct {
	pediatricFriendly *bool
	planID            string
	openNow           *bool
}
