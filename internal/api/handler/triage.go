package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/findcare/findcare/internal/api/models"
	"github.com/findcare/findcare/internal/api/response"
	"github.com/findcare/findcare/internal/triage"
)

// TriageHandler handles symptom triage endpoints.
type TriageHandler struct {
	svc *triage.Service
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(svc *triage.Service) *TriageHandler {
	return &TriageHandler{svc: svc}
}

// Triage handles POST /v1/triage - recommend a care venue.
func (h *TriageHandler) Triage(w http.ResponseWriter, r *http.Request) {
	var input triage.Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.svc.Triage(input)
	if err != nil {
		var verr *triage.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, r, "invalid triage request", fieldErrors(verr.Fields))
			return
		}
		response.InternalError(w, r, "triage failed")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

func fieldErrors(fields []triage.FieldIssue) []models.FieldError {
	out := make([]models.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, models.FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}
