package triage

import (
	"regexp"
	"strings"
)

// Venue recommendation patterns, first match wins.
var (
	urgentCarePatterns  = regexp.MustCompile(`sore\s*throat|ear\s*pain|pink\s*eye|minor\s*injury|sprain`)
	primaryCarePatterns = regexp.MustCompile(`medication\s*refill|chronic|routine|follow\s*up`)
	virtualPatterns     = regexp.MustCompile(`rash|mild\s*cough|cold|questions`)
)

// RecommendVenue maps symptom text to a default non-emergency venue.
// Callers must run DetectRedFlags first; this function assumes no red
// flag is present. Age is accepted but does not currently affect the
// recommendation.
func RecommendVenue(symptoms string, _ Context) Venue {
	s := strings.ToLower(symptoms)

	switch {
	case urgentCarePatterns.MatchString(s):
		return VenueUrgentCare
	case primaryCarePatterns.MatchString(s):
		return VenuePrimaryCare
	case virtualPatterns.MatchString(s):
		return VenueVirtual
	default:
		return VenueUrgentCare
	}
}
