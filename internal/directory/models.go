// Package directory holds the in-memory facility directory. Records are
// loaded once from configured sources at startup and never mutated
// afterwards; all search computation reads from the same immutable slice.
package directory

import (
	"github.com/findcare/findcare/internal/hours"
	"github.com/findcare/findcare/internal/triage"
)

// Address is a facility street address.
type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// Facility is a single care location. TimeZone may be empty, which means
// opening hours are unknown and the facility is treated as never open.
type Facility struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Venue             triage.Venue `json:"venue"`
	Lat               float64      `json:"lat"`
	Lon               float64      `json:"lon"`
	Address           Address      `json:"address"`
	PediatricFriendly bool         `json:"pediatricFriendly"`
	TimeZone          string       `json:"timeZone"`
	WeeklyHours       hours.Weekly `json:"weeklyHours"`
	InsurancePlanIDs  []string     `json:"insurancePlanIds,omitempty"`

	// LocationCode maps the facility to the partner scheduling system.
	// Empty when no live availability lookup is possible.
	LocationCode string `json:"locationCode,omitempty"`
}

// AcceptsPlan reports whether the facility lists the given canonical
// insurance plan id.
func (f *Facility) AcceptsPlan(planID string) bool {
	for _, id := range f.InsurancePlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}
