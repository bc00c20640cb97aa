package handlers

import (
	"net/http"

	"tiktok-carousel/internal/core"
)

// StatusHandler reports process health and registered features
type StatusHandler struct {
	logger   *core.Logger
	registry *core.Registry
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(logger *core.Logger, registry *core.Registry) *StatusHandler {
	return &StatusHandler{
		logger:   logger,
		registry: registry,
	}
}

// HealthCheckHandler provides a health check endpoint
func (h *StatusHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	core.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "tiktok-carousel",
		"version": "1.0.0",
	})
}

// FeaturesHandler lists registered features, with details from those that report them
func (h *StatusHandler) FeaturesHandler(w http.ResponseWriter, r *http.Request) {
	status := h.registry.GetFeatureStatus()

	for _, feature := range h.registry.ListEnabled() {
		reporter, ok := feature.(core.Reporter)
		if !ok {
			continue
		}

		details, err := reporter.Report(r.Context())
		if err != nil {
			h.logger.WithContext(r.Context()).Error("Failed to report feature status", "name", feature.Name(), "error", err)
			details = map[string]any{"error": core.ErrorCode(err)}
		}

		entry := status[feature.Name()]
		entry.Details = details
		status[feature.Name()] = entry
	}

	core.WriteJSON(w, http.StatusOK, map[string]any{
		"features": status,
	})
}
