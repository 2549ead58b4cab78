package hours

import (
	"testing"
	"time"
)

// fixedRand returns a deterministic source with a small linear congruential
// state, independent of the production seeding scheme.
func fixedRand(seed uint32) Rand {
	state := seed
	return func() float64 {
		state = state*1664525 + 1013904223
		return float64(state) / 4294967296.0
	}
}

var weekdayHours = Weekly{
	"Mon": {{Open: "08:00", Close: "17:00"}},
	"Tue": {{Open: "08:00", Close: "17:00"}},
	"Wed": {{Open: "08:00", Close: "17:00"}},
	"Thu": {{Open: "08:00", Close: "17:00"}},
	"Fri": {{Open: "08:00", Close: "12:00"}},
}

func TestNextSlots_Deterministic(t *testing.T) {
	start := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)

	first := NextSlots("UTC", weekdayHours, start, 7, 3, 6, fixedRand(42))
	second := NextSlots("UTC", weekdayHours, start, 7, 3, 6, fixedRand(42))

	if len(first) == 0 {
		t.Fatal("expected slots, got none")
	}
	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestNextSlots_WithinWindowAndSorted(t *testing.T) {
	start := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	days := 7
	end := start.Add(time.Duration(days) * 24 * time.Hour)

	slots := NextSlots("America/Los_Angeles", weekdayHours, start, days, 3, 6, fixedRand(7))
	if len(slots) < 3 || len(slots) > 6 {
		t.Fatalf("slot count %d outside [3, 6]", len(slots))
	}

	var prev time.Time
	for i, s := range slots {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatalf("slot %q does not parse as RFC3339: %v", s, err)
		}
		if ts.Before(start) || !ts.Before(end) {
			t.Errorf("slot %s outside [%s, %s)", s, start, end)
		}
		if i > 0 && ts.Before(prev) {
			t.Errorf("slots not sorted ascending: %s after %s", s, slots[i-1])
		}
		prev = ts
	}
}

func TestNextSlots_RespectsCloseMargin(t *testing.T) {
	weekly := Weekly{"Mon": {{Open: "08:00", Close: "09:00"}}}
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	for seed := uint32(1); seed <= 20; seed++ {
		for _, s := range NextSlots("UTC", weekly, start, 7, 3, 6, fixedRand(seed)) {
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				t.Fatalf("bad slot %q: %v", s, err)
			}
			// 09:00 close: no slot may start at 08:45 or later.
			if ts.Hour() == 8 && ts.Minute() >= 45 {
				t.Errorf("seed %d produced slot %s within 15 minutes of close", seed, s)
			}
		}
	}
}

func TestNextSlots_ShortIntervalSkipped(t *testing.T) {
	weekly := Weekly{"Mon": {{Open: "08:00", Close: "08:10"}}}
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	if slots := NextSlots("UTC", weekly, start, 7, 3, 6, fixedRand(1)); len(slots) != 0 {
		t.Errorf("expected no slots from a 10-minute interval, got %v", slots)
	}
}

func TestNextSlots_EmptyScheduleOrZone(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	if slots := NextSlots("UTC", Weekly{}, start, 7, 3, 6, fixedRand(1)); len(slots) != 0 {
		t.Errorf("expected no slots from empty schedule, got %v", slots)
	}
	if slots := NextSlots("", weekdayHours, start, 7, 3, 6, fixedRand(1)); slots != nil {
		t.Errorf("expected nil for empty time zone, got %v", slots)
	}
}
