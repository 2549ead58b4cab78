// Package hours provides time-zone-aware evaluation of weekly opening
// schedules and deterministic generation of future appointment slots.
package hours

import (
	"strconv"
	"strings"
	"time"
)

// Interval is a single opening window in 24h "HH:MM" local time.
// The open bound is inclusive, the close bound exclusive.
type Interval struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Weekly maps weekday abbreviations ("Sun".."Sat") to that day's ordered
// opening intervals. A missing day means closed all day.
type Weekly map[string][]Interval

// weekdayKeys indexes by time.Weekday (Sunday = 0).
var weekdayKeys = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayKey returns the schedule key for a weekday.
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

// IsOpen reports whether the schedule is open at the given instant,
// evaluated in the facility's local time zone. An empty or unknown time
// zone, a missing day entry, or an empty interval list all mean closed.
func IsOpen(timeZone string, weekly Weekly, at time.Time) bool {
	if timeZone == "" {
		return false
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return false
	}

	local := at.In(loc)
	mins := local.Hour()*60 + local.Minute()

	for _, iv := range weekly[WeekdayKey(local.Weekday())] {
		open, ok := parseMinutes(iv.Open)
		if !ok {
			continue
		}
		close, ok := parseMinutes(iv.Close)
		if !ok {
			continue
		}
		if mins >= open && mins < close {
			return true
		}
	}
	return false
}

// parseMinutes converts "HH:MM" to minutes since local midnight.
func parseMinutes(t string) (int, bool) {
	h, m, ok := strings.Cut(t, ":")
	if !ok {
		return 0, false
	}
	hh, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mm, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hh*60 + mm, true
}
