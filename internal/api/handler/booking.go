package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/findcare/findcare/internal/api/response"
	"github.com/findcare/findcare/internal/booking"
)

// BookingHandler handles booking hand-off endpoints.
type BookingHandler struct {
	svc *booking.Service
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Book handles POST /v1/book - construct a scheduling portal deep link.
// The patient context token passes through to the link untouched and is
// deliberately kept out of logs and error details.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var input booking.Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	resp, err := h.svc.DeepLink(input)
	if err != nil {
		if errors.Is(err, booking.ErrMissingField) {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		response.InternalError(w, r, "booking link construction failed")
		return
	}

	response.JSON(w, r, http.StatusOK, resp)
}
