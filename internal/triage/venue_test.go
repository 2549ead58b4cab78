package triage

import "testing"

func TestRecommendVenue(t *testing.T) {
	cases := []struct {
		symptoms string
		want     Venue
	}{
		{"ear pain", VenueUrgentCare},
		{"sore throat since yesterday", VenueUrgentCare},
		{"pink eye", VenueUrgentCare},
		{"sprain from soccer", VenueUrgentCare},
		{"minor injury", VenueUrgentCare},
		{"chronic follow up", VenuePrimaryCare},
		{"medication refill", VenuePrimaryCare},
		{"routine physical", VenuePrimaryCare},
		{"mild cough", VenueVirtual},
		{"rash on arm", VenueVirtual},
		{"caught a cold", VenueVirtual},
		{"just have questions", VenueVirtual},
		{"stubbed my toe", VenueUrgentCare}, // default fallback
		{"", VenueUrgentCare},
	}

	for _, c := range cases {
		if got := RecommendVenue(c.symptoms, Context{Age: 12}); got != c.want {
			t.Errorf("RecommendVenue(%q) = %s, want %s", c.symptoms, got, c.want)
		}
	}
}

func TestRecommendVenue_PrecedenceFirstMatchWins(t *testing.T) {
	// "sore throat" (urgent care) appears before "questions" (virtual)
	// in pattern precedence, regardless of word order in the text.
	if got := RecommendVenue("questions about my sore throat", Context{}); got != VenueUrgentCare {
		t.Errorf("expected urgent_care precedence, got %s", got)
	}
	// Chronic (primary care) outranks rash (virtual).
	if got := RecommendVenue("chronic rash", Context{}); got != VenuePrimaryCare {
		t.Errorf("expected primary_care precedence, got %s", got)
	}
}
