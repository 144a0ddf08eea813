package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"citysuggest/internal/qgram"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	holder *qgram.Holder
	db     Pinger
}

// NewProbeHandler creates a new probe handler. database may be nil.
func NewProbeHandler(holder *qgram.Holder, database Pinger) *ProbeHandler {
	return &ProbeHandler{holder: holder, db: database}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK once a city index is published and the database, if any,
// is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if !h.holder.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "city index not loaded",
		})
	}

	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "database unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
