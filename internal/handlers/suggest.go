package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"citysuggest/internal/qgram"
	"citysuggest/internal/search"
)

// SuggestHandler answers the autocomplete widget's get_cities requests.
type SuggestHandler struct {
	svc *search.Service
}

// NewSuggestHandler creates a new suggestion handler.
func NewSuggestHandler(svc *search.Service) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

// GetCities returns a JSON array of {label, value, rating} for ?term=.
func (h *SuggestHandler) GetCities(c fiber.Ctx) error {
	res, err := h.svc.Suggest(c.Query("term"))
	if err != nil {
		if errors.Is(err, qgram.ErrNotLoaded) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(res.Suggestions)
		}
		return err
	}
	return c.JSON(res.Suggestions)
}
