package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/availability/kyruus"
	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/hours"
	"github.com/findcare/findcare/internal/triage"
)

// LocationLister fetches the raw partner location listing.
type LocationLister interface {
	Locations(ctx context.Context) ([]kyruus.Location, error)
}

// RefreshJob fetches the partner location listing, normalizes it into
// the facility dataset shape and atomically replaces the on-disk
// dataset that the directory's partner file source reads.
type RefreshJob struct {
	config RefreshConfig
	lister LocationLister
	logger zerolog.Logger

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRefreshes  int64
	FailedRefreshes int64

	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	LastFacilityCount   int
	LastSkippedCount    int
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config RefreshConfig
	Lister LocationLister
	Logger zerolog.Logger
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	return &RefreshJob{
		config:  cfg.Config.withDefaults(),
		lister:  cfg.Lister,
		logger:  cfg.Logger,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Facilities int
	Skipped    int
	OutputPath string
}

// Run executes one dataset refresh. The existing dataset is left
// untouched when the fetch fails or yields too few usable records.
func (j *RefreshJob) Run(ctx context.Context) (*RefreshResult, error) {
	startTime := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	j.logger.Info().
		Str("output", j.config.OutputPath).
		Msg("starting facility dataset refresh")

	raw, err := j.lister.Locations(runCtx)
	if err != nil {
		j.recordFailure()
		return nil, fmt.Errorf("fetching partner locations: %w", err)
	}

	facilities, skipped := normalizeLocations(raw)
	if len(facilities) < j.config.MinFacilities {
		j.recordFailure()
		return nil, fmt.Errorf("partner listing yielded %d usable facilities, need at least %d",
			len(facilities), j.config.MinFacilities)
	}

	if err := writeDataset(j.config.OutputPath, facilities); err != nil {
		j.recordFailure()
		return nil, fmt.Errorf("writing dataset: %w", err)
	}

	result := &RefreshResult{
		StartTime:  startTime,
		EndTime:    time.Now(),
		Facilities: len(facilities),
		Skipped:    skipped,
		OutputPath: j.config.OutputPath,
	}
	result.Duration = result.EndTime.Sub(result.StartTime)

	j.recordSuccess(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("facilities", result.Facilities).
		Int("skipped", result.Skipped).
		Msg("facility dataset refresh completed")

	return result, nil
}

// Check fetches the partner listing without touching the dataset,
// verifying provider connectivity.
func (j *RefreshJob) Check(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	raw, err := j.lister.Locations(runCtx)
	if err != nil {
		return fmt.Errorf("fetching partner locations: %w", err)
	}
	facilities, _ := normalizeLocations(raw)
	if len(facilities) < j.config.MinFacilities {
		return fmt.Errorf("partner listing yielded %d usable facilities, need at least %d",
			len(facilities), j.config.MinFacilities)
	}
	return nil
}

// normalizeLocations converts raw partner records into facility
// records. Records without a booking wheelhouse id or coordinates are
// skipped; everything else is best effort.
func normalizeLocations(raw []kyruus.Location) ([]directory.Facility, int) {
	facilities := make([]directory.Facility, 0, len(raw))
	skipped := 0

	for _, item := range raw {
		id := strings.TrimSpace(item.BookingWheel)
		if id == "" || item.Coordinates == nil {
			skipped++
			continue
		}

		name := item.Name
		if name == "" {
			name = id
		}

		addr := parseAddressPlain(item.AddressPlain)

		facilities = append(facilities, directory.Facility{
			ID:           id,
			Name:         name,
			Venue:        venueFor(item),
			Lat:          item.Coordinates.Lat,
			Lon:          item.Coordinates.Lon,
			Address:      addr,
			TimeZone:     timeZoneForState(addr.State),
			WeeklyHours:  weeklyHoursFrom(item.Hours),
			LocationCode: id,
		})
	}

	return facilities, skipped
}

func venueFor(item kyruus.Location) triage.Venue {
	if item.IsUrgentCare || item.IsExpressCare {
		return triage.VenueUrgentCare
	}
	name := strings.ToLower(item.Name)
	switch {
	case strings.Contains(name, "emergency"):
		return triage.VenueER
	case strings.Contains(name, "primary"),
		strings.Contains(name, "family"),
		strings.Contains(name, "internal"):
		return triage.VenuePrimaryCare
	}
	return triage.VenueUrgentCare
}

var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(?i:(am|pm))$`)

// to24h converts a partner time like "8:00 am" to "08:00". Returns
// false for anything it cannot parse.
func to24h(s string) (string, bool) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	hh, err := strconv.Atoi(m[1])
	if err != nil || hh < 1 || hh > 12 {
		return "", false
	}
	switch strings.ToLower(m[3]) {
	case "am":
		if hh == 12 {
			hh = 0
		}
	case "pm":
		if hh != 12 {
			hh += 12
		}
	}
	return fmt.Sprintf("%02d:%s", hh, m[2]), true
}

var dayKeys = map[string]string{
	"Sunday":    "Sun",
	"Monday":    "Mon",
	"Tuesday":   "Tue",
	"Wednesday": "Wed",
	"Thursday":  "Thu",
	"Friday":    "Fri",
	"Saturday":  "Sat",
}

func weeklyHoursFrom(raw map[string]kyruus.DayHours) hours.Weekly {
	if len(raw) == 0 {
		return nil
	}
	weekly := hours.Weekly{}
	for day, window := range raw {
		key, ok := dayKeys[day]
		if !ok {
			continue
		}
		open, okOpen := to24h(window.Start)
		closeAt, okClose := to24h(window.End)
		if !okOpen || !okClose {
			continue
		}
		weekly[key] = []hours.Interval{{Open: open, Close: closeAt}}
	}
	if len(weekly) == 0 {
		return nil
	}
	return weekly
}

var (
	stateZipPattern = regexp.MustCompile(`([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`)
	zipPattern      = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
)

// parseAddressPlain best-effort parses "line, City, ST ZIP".
func parseAddressPlain(plain string) directory.Address {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return directory.Address{}
	}

	parts := strings.Split(plain, ",")
	addr := directory.Address{Line1: strings.TrimSpace(parts[0])}
	if len(parts) < 3 {
		return addr
	}

	addr.City = strings.TrimSpace(parts[1])
	tail := strings.TrimSpace(strings.Join(parts[2:], ","))
	if m := stateZipPattern.FindStringSubmatch(tail); m != nil {
		addr.State = m[1]
		addr.Zip = m[2]
		return addr
	}

	for _, token := range strings.Fields(tail) {
		switch {
		case addr.State == "" && len(token) == 2 && token == strings.ToUpper(token):
			addr.State = token
		case addr.Zip == "" && isZip(token):
			addr.Zip = token
		}
	}
	return addr
}

func isZip(s string) bool {
	return zipPattern.MatchString(s)
}

func timeZoneForState(state string) string {
	switch strings.ToUpper(state) {
	case "WA", "OR", "CA":
		return "America/Los_Angeles"
	case "AK":
		return "America/Anchorage"
	case "MT":
		return "America/Denver"
	}
	return ""
}

// writeDataset writes the facility list to path via a temp file and
// rename so readers never observe a partial dataset.
func writeDataset(path string, facilities []directory.Facility) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(facilities); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing dataset: %w", err)
	}
	return nil
}

func (j *RefreshJob) recordSuccess(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.LastFacilityCount = result.Facilities
	j.metrics.LastSkippedCount = result.Skipped
}

func (j *RefreshJob) recordFailure() {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.FailedRefreshes++
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		LastFacilityCount:   j.metrics.LastFacilityCount,
		LastSkippedCount:    j.metrics.LastSkippedCount,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"failed_refreshes":      m.FailedRefreshes,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"last_facility_count":   m.LastFacilityCount,
		"last_skipped_count":    m.LastSkippedCount,
	}
}
