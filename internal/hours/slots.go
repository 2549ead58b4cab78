package hours

import (
	"sort"
	"time"
)

// Rand is an injected uniform random source producing values in [0, 1).
// Callers supply a seeded deterministic source so that repeated calls for
// the same facility/service yield the same slot set.
type Rand func() float64

// slotCloseMarginMinutes keeps generated slots out of the tail of an
// interval: a slot never starts within the final 15 minutes before close.
const slotCloseMarginMinutes = 15

// NextSlots generates future appointment start times within the next
// `days` days of the weekly schedule, evaluated in the given time zone.
//
// The target slot count is drawn uniformly from [countMin, countMax] using
// the supplied random source. Each day's open intervals contribute 1-3
// candidates at random offsets until the target is reached or the day
// window is exhausted. Results are RFC3339 UTC timestamps sorted ascending
// and never precede start.
func NextSlots(timeZone string, weekly Weekly, start time.Time, days, countMin, countMax int, rand Rand) []string {
	if timeZone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil
	}

	target := countMin + int(rand()*float64(countMax-countMin+1))
	slots := make([]string, 0, target)

	day := start
	for i := 0; i < days && len(slots) < target; i++ {
		local := day.In(loc)
		intervals := weekly[WeekdayKey(local.Weekday())]

		for _, iv := range intervals {
			openMins, ok := parseMinutes(iv.Open)
			if !ok {
				continue
			}
			closeMins, ok := parseMinutes(iv.Close)
			if !ok {
				continue
			}
			total := closeMins - openMins
			if total <= slotCloseMarginMinutes {
				continue
			}

			n := 1 + int(rand()*3)
			for k := 0; k < n && len(slots) < target; k++ {
				offset := int(rand() * float64(total-slotCloseMarginMinutes))
				slotMins := openMins + offset

				slot := time.Date(
					local.Year(), local.Month(), local.Day(),
					slotMins/60, slotMins%60, 0, 0, loc,
				)
				if slot.Before(start) {
					continue
				}
				slots = append(slots, slot.UTC().Format(time.RFC3339))
			}
		}

		day = day.Add(24 * time.Hour)
	}

	sort.Strings(slots)
	return slots
}
