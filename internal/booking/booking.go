// Package booking constructs deep links into the external scheduling
// portal. No booking state is held here; the link hands the patient
// off to the portal, which owns the actual reservation.
package booking

import (
	"errors"
	"net/url"
)

// DefaultPortalBaseURL is the scheduling portal's booking entrypoint.
const DefaultPortalBaseURL = "https://mychart.example/book"

// ErrMissingField is returned when a required deep link component is
// absent.
var ErrMissingField = errors.New("facilityId, slotId and patientContextToken are required")

// Request identifies the appointment to hand off. PatientContextToken
// is opaque: it is embedded in the link as-is and must never be
// logged, stored or inspected.
type Request struct {
	FacilityID          string `json:"facilityId"`
	SlotID              string `json:"slotId"`
	PatientContextToken string `json:"patientContextToken"`
}

// Response carries the constructed portal link.
type Response struct {
	DeepLink string `json:"deepLink"`
}

// Service builds booking deep links.
type Service struct {
	baseURL string
}

// ServiceConfig holds configuration for the booking service.
type ServiceConfig struct {
	// PortalBaseURL overrides the scheduling portal entrypoint
	// (defaults to DefaultPortalBaseURL).
	PortalBaseURL string
}

// NewService creates a new booking service.
func NewService(cfg ServiceConfig) *Service {
	baseURL := cfg.PortalBaseURL
	if baseURL == "" {
		baseURL = DefaultPortalBaseURL
	}
	return &Service{baseURL: baseURL}
}

// DeepLink builds the portal URL for the given facility, slot and
// patient context. All three components are query-escaped.
func (s *Service) DeepLink(req Request) (*Response, error) {
	if req.FacilityID == "" || req.SlotID == "" || req.PatientContextToken == "" {
		return nil, ErrMissingField
	}

	q := url.Values{}
	q.Set("f", req.FacilityID)
	q.Set("s", req.SlotID)
	q.Set("t", req.PatientContextToken)

	return &Response{DeepLink: s.baseURL + "?" + q.Encode()}, nil
}
