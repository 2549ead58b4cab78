package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/findcare/findcare/internal/hours"
)

// PostgresSource reads facility records from a PostgreSQL table. Used as
// the primary source when a database is configured; the directory still
// loads once at startup and serves from memory afterwards.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source over the given connection pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Name returns the source name.
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Facilities returns all facility rows. Weekly hours are stored as JSONB
// in the shape the embedded dataset uses.
func (s *PostgresSource) Facilities(ctx context.Context) ([]Facility, error) {
	query := `
		SELECT
			id, name, venue, lat, lon,
			address_line1, address_city, address_state, address_zip,
			pediatric_friendly, time_zone, weekly_hours,
			insurance_plan_ids, location_code
		FROM facilities
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying facilities: %w", err)
	}
	defer rows.Close()

	var facilities []Facility
	for rows.Next() {
		var f Facility
		var weeklyRaw []byte
		var locationCode *string

		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Venue,
			&f.Lat,
			&f.Lon,
			&f.Address.Line1,
			&f.Address.City,
			&f.Address.State,
			&f.Address.Zip,
			&f.PediatricFriendly,
			&f.TimeZone,
			&weeklyRaw,
			&f.InsurancePlanIDs,
			&locationCode,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning facility row: %w", err)
		}

		if len(weeklyRaw) > 0 {
			var weekly hours.Weekly
			if err := json.Unmarshal(weeklyRaw, &weekly); err != nil {
				return nil, fmt.Errorf("decoding weekly hours for %s: %w", f.ID, err)
			}
			f.WeeklyHours = weekly
		}
		if locationCode != nil {
			f.LocationCode = *locationCode
		}

		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating facility rows: %w", err)
	}

	return facilities, nil
}
