package directory

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/facilities.anchorage.json data/facilities.seattle.json
var mockData embed.FS

// mockFiles are loaded in order; records append across files.
var mockFiles = []string{
	"data/facilities.anchorage.json",
	"data/facilities.seattle.json",
}

// EmbeddedSource serves the mock facility dataset compiled into the
// binary. It is the directory's primary source when no database is
// configured.
type EmbeddedSource struct{}

// NewEmbeddedSource creates a source over the embedded mock dataset.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Name returns the source name.
func (s *EmbeddedSource) Name() string {
	return "embedded"
}

// Facilities returns all embedded facility records.
func (s *EmbeddedSource) Facilities(_ context.Context) ([]Facility, error) {
	var all []Facility
	for _, file := range mockFiles {
		raw, err := mockData.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading embedded dataset %s: %w", file, err)
		}
		var facilities []Facility
		if err := json.Unmarshal(raw, &facilities); err != nil {
			return nil, fmt.Errorf("decoding embedded dataset %s: %w", file, err)
		}
		all = append(all, facilities...)
	}
	return all, nil
}
