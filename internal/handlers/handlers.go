package handlers

import (
	"github.com/gofiber/fiber/v3"

	"citysuggest/internal/config"
)

// MergeBranding adds branding data to a fiber.Map for template rendering.
func MergeBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	data["SiteTitle"] = cfg.SiteTitle
	data["SiteTagline"] = cfg.SiteTagline
	return data
}

// NotFound renders the error page for unknown paths.
func NotFound(cfg *config.Config) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("error", MergeBranding(fiber.Map{
			"Title":   "Not Found",
			"Message": "The page '" + c.Path() + "' does not exist.",
		}, cfg))
	}
}
