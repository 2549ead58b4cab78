package directory

import (
	"context"
)

// Source supplies facility records for the directory.
type Source interface {
	// Facilities returns all records the source knows about. A source
	// with nothing to contribute returns an empty slice, not an error.
	Facilities(ctx context.Context) ([]Facility, error)

	// Name identifies the source for logging.
	Name() string
}
