package triage

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// MaxAge is the upper bound of the accepted age range.
	MaxAge = 120

	// MaxDurationHours is the upper bound for symptom duration.
	MaxDurationHours = 10000
)

// FieldIssue describes a validation failure on a single request field.
type FieldIssue struct {
	Field   string
	Message string
}

// ValidationError reports invalid triage input with field-level detail.
type ValidationError struct {
	Fields []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid triage request"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid triage request: " + strings.Join(parts, "; ")
}

// ServiceConfig holds configuration for the triage service.
type ServiceConfig struct {
	// Logger for service operations.
	Logger zerolog.Logger
}

// Service evaluates triage requests. It is stateless; every call is an
// independent computation over the request alone.
type Service struct {
	logger zerolog.Logger
}

// NewService creates a new triage service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{logger: cfg.Logger}
}

// Triage validates the request and produces a venue recommendation.
// A detected red flag always routes to the Emergency Department
// regardless of what the venue recommender would have said.
func (s *Service) Triage(req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	tctx := Context{
		Age:             req.Age,
		PregnancyStatus: req.PregnancyStatus,
		DurationHours:   req.DurationHours,
	}

	redFlag := DetectRedFlags(req.Symptoms, tctx)

	var venue Venue
	var rationale string
	if redFlag {
		venue = VenueER
		rationale = "Red flag detected. For safety, recommend Emergency Department."
	} else {
		venue = RecommendVenue(req.Symptoms, tctx)
		rationale = fmt.Sprintf("Based on symptoms and age, %s is appropriate.",
			strings.ReplaceAll(string(venue), "_", " "))
	}

	s.logger.Debug().
		Str("venue", string(venue)).
		Bool("red_flag", redFlag).
		Msg("triage evaluated")

	return &Result{
		Venue:     venue,
		Rationale: rationale,
		RedFlag:   redFlag,
	}, nil
}

// validate checks the request ranges. Symptoms must be non-empty after
// trimming, age in [0, MaxAge], durationHours in [0, MaxDurationHours].
func validate(req Request) error {
	var fields []FieldIssue

	if strings.TrimSpace(req.Symptoms) == "" {
		fields = append(fields, FieldIssue{Field: "symptoms", Message: "symptoms is required"})
	}
	if req.Age < 0 || req.Age > MaxAge {
		fields = append(fields, FieldIssue{
			Field:   "age",
			Message: fmt.Sprintf("age must be between 0 and %d", MaxAge),
		})
	}
	switch req.PregnancyStatus {
	case "", PregnancyUnknown, PregnancyPregnant, PregnancyNotPregnant:
	default:
		fields = append(fields, FieldIssue{
			Field:   "pregnancyStatus",
			Message: "pregnancyStatus must be unknown, pregnant, or not_pregnant",
		})
	}
	if req.DurationHours != nil && (*req.DurationHours < 0 || *req.DurationHours > MaxDurationHours) {
		fields = append(fields, FieldIssue{
			Field:   "durationHours",
			Message: fmt.Sprintf("durationHours must be between 0 and %d", MaxDurationHours),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
