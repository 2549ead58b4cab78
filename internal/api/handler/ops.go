// Package handler provides HTTP handlers for the FindCare API.
package handler

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/findcare/findcare/internal/api/models"
	"github.com/findcare/findcare/internal/api/response"
	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	directory *directory.Service
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, dir *directory.Service, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		directory: dir,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// The service is ready once the facility directory has loaded.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil || len(h.directory.All()) == 0 {
		response.ServiceUnavailable(w, r, "facility directory not loaded")
		return
	}
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"facilities": len(h.directory.All()),
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	directoryStatus := models.HealthStatusOK
	if h.directory == nil || len(h.directory.All()) == 0 {
		directoryStatus = models.HealthStatusFail
	}

	status := models.SystemStatus{
		Status: directoryStatus,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "facility-directory", Status: directoryStatus},
		},
	}

	if h.registry != nil {
		for _, p := range h.registry.GetAllHealth() {
			ps := models.ProviderStatus{
				Provider: p.Name,
				Status:   providerStatus(p),
			}
			if p.LastSuccessAt != nil {
				ts := models.Timestamp(*p.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if p.LastFailureAt != nil {
				ts := models.Timestamp(*p.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			if p.LastError != "" {
				msg := p.LastError
				ps.Message = &msg
			}
			status.Providers = append(status.Providers, ps)

			// A degraded provider degrades the system, but never fails
			// it: search and availability have local fallbacks.
			if !p.IsHealthy() && status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(p *resilience.ProviderHealth) models.HealthStatus {
	switch p.CircuitState {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
