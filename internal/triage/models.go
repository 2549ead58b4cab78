// Package triage classifies reported symptoms into a recommended care
// venue, with a conservative red-flag check that routes potential
// emergencies to the Emergency Department.
package triage

// Venue is the category of care setting a patient is directed to.
type Venue string

const (
	VenueUrgentCare  Venue = "urgent_care"
	VenueER          Venue = "er"
	VenuePrimaryCare Venue = "primary_care"
	VenueVirtual     Venue = "virtual"
)

// Venues lists all valid venue values.
func Venues() []Venue {
	return []Venue{VenueUrgentCare, VenueER, VenuePrimaryCare, VenueVirtual}
}

// IsValidVenue reports whether v is a known venue.
func IsValidVenue(v Venue) bool {
	switch v {
	case VenueUrgentCare, VenueER, VenuePrimaryCare, VenueVirtual:
		return true
	}
	return false
}

// PregnancyStatus is the caller-reported pregnancy status.
type PregnancyStatus string

const (
	PregnancyUnknown     PregnancyStatus = "unknown"
	PregnancyPregnant    PregnancyStatus = "pregnant"
	PregnancyNotPregnant PregnancyStatus = "not_pregnant"
)

// Context carries patient attributes alongside the symptom text. The
// fields are accepted for forward compatibility; current classification
// decisions are based on symptom text alone.
type Context struct {
	Age             int             `json:"age"`
	PregnancyStatus PregnancyStatus `json:"pregnancyStatus,omitempty"`
	DurationHours   *int            `json:"durationHours,omitempty"`
}

// Request is a triage request. Symptoms is required; age must be in
// [0, 120] and durationHours, when present, in [0, 10000].
type Request struct {
	Symptoms        string          `json:"symptoms"`
	Age             int             `json:"age"`
	PregnancyStatus PregnancyStatus `json:"pregnancyStatus,omitempty"`
	DurationHours   *int            `json:"durationHours,omitempty"`
}

// Result is the outcome of a triage evaluation.
type Result struct {
	Venue     Venue  `json:"venue"`
	Rationale string `json:"rationale"`
	RedFlag   bool   `json:"redFlag"`
}
