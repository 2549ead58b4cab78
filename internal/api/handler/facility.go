package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/findcare/findcare/internal/api/models"
	"github.com/findcare/findcare/internal/api/response"
	"github.com/findcare/findcare/internal/location"
	"github.com/findcare/findcare/internal/search"
)

// FacilityHandler handles facility search endpoints.
type FacilityHandler struct {
	svc *search.Service
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(svc *search.Service) *FacilityHandler {
	return &FacilityHandler{svc: svc}
}

// SearchFacilities handles POST /v1/facilities:search - ranked facility search.
func (h *FacilityHandler) SearchFacilities(w http.ResponseWriter, r *http.Request) {
	var input search.Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	results, err := h.svc.Search(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrInvalidVenue):
			response.BadRequest(w, r, "invalid search request", []models.FieldError{
				{Field: "venue", Message: err.Error()},
			})
		case errors.Is(err, location.ErrLocationRequired):
			response.LocationRequired(w, r, "Provide lat/lon or a known zip.")
		default:
			response.InternalError(w, r, "facility search failed")
		}
		return
	}

	if results == nil {
		results = []search.Result{}
	}
	response.JSON(w, r, http.StatusOK, results)
}
