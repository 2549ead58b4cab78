package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/findcare/findcare/internal/api/models"
	"github.com/findcare/findcare/internal/api/response"
	"github.com/findcare/findcare/internal/availability"
)

// AvailabilityHandler handles appointment availability endpoints.
type AvailabilityHandler struct {
	svc *availability.Service
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(svc *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// GetAvailability handles POST /v1/availability - appointment slots for a facility.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	var input availability.Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.FacilityID == "" {
		response.BadRequest(w, r, "invalid availability request", []models.FieldError{
			{Field: "facilityId", Message: "is required"},
		})
		return
	}

	resp, err := h.svc.GetAvailability(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDays):
			response.BadRequest(w, r, "invalid availability request", []models.FieldError{
				{Field: "days", Message: err.Error()},
			})
		case errors.Is(err, availability.ErrFacilityNotFound):
			response.NotFound(w, r, "facility not found")
		default:
			response.InternalError(w, r, "availability lookup failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, resp)
}
