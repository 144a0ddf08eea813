package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"citysuggest/internal/models"
	"citysuggest/internal/qgram"
	"citysuggest/internal/search"
)

// CitiesHandler handles city search via JSON API.
type CitiesHandler struct {
	svc *search.Service
}

// NewCitiesHandler creates a new API cities handler.
func NewCitiesHandler(svc *search.Service) *CitiesHandler {
	return &CitiesHandler{svc: svc}
}

// Search returns ranked matches for ?term= in the standard envelope.
func (h *CitiesHandler) Search(c fiber.Ctx) error {
	res, err := h.svc.Suggest(c.Query("term"))
	if err != nil {
		if errors.Is(err, qgram.ErrNotLoaded) {
			return jsonError(c, fiber.StatusServiceUnavailable, "city index not loaded")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to search cities")
	}

	return jsonSuccess(c, models.SuggestResponse{
		Term:    res.Term,
		Matches: res.Suggestions,
		Peds:    res.Peds,
	})
}

// envelope is the response shape shared by all /api/v1 endpoints.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(envelope{Status: "ok", Data: data})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Status: "error", Error: message})
}
