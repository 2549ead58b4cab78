// Package worker provides background job processing for FindCare.
package worker

import (
	"time"
)

// RefreshConfig holds configuration for the partner dataset refresh job.
type RefreshConfig struct {
	// OutputPath is where the normalized facility dataset is written.
	// Default: data/kyruus.locations.json
	OutputPath string

	// Timeout is the timeout for a full refresh run.
	// Default: 60 seconds
	Timeout time.Duration

	// MinFacilities is the smallest dataset the job will accept. A
	// partner listing below this size is treated as a failed fetch so
	// a truncated response never replaces a good dataset.
	// Default: 1
	MinFacilities int
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		OutputPath:    "data/kyruus.locations.json",
		Timeout:       60 * time.Second,
		MinFacilities: 1,
	}
}

func (c RefreshConfig) withDefaults() RefreshConfig {
	out := c
	if out.OutputPath == "" {
		out.OutputPath = "data/kyruus.locations.json"
	}
	if out.Timeout == 0 {
		out.Timeout = 60 * time.Second
	}
	if out.MinFacilities == 0 {
		out.MinFacilities = 1
	}
	return out
}
