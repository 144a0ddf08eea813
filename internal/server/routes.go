package server

import (
	"strings"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"citysuggest/internal/binder"
	"citysuggest/internal/handlers"
	"citysuggest/internal/handlers/api"
	"citysuggest/internal/qgram"
	"citysuggest/internal/search"
	"citysuggest/web"
)

// Deps holds what the route handlers need.
type Deps struct {
	Holder   *qgram.Holder
	Search   *search.Service
	Widget   binder.Config
	DB       handlers.Pinger // nil without a database
	Gatherer prometheus.Gatherer
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(s.Cfg, deps.Widget)
	suggestHandler := handlers.NewSuggestHandler(deps.Search)
	selectHandler := handlers.NewSelectHandler(s.Cfg, deps.Widget, deps.Holder)
	probeHandler := handlers.NewProbeHandler(deps.Holder, deps.DB)
	citiesAPI := api.NewCitiesHandler(deps.Search)

	// Static files
	s.App.Get("/static/*", static.New("", static.Config{
		FS: web.Static(),
	}))

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	// Search page and widget endpoints
	s.App.Get("/", searchHandler.Index)
	s.App.Get("/"+strings.TrimPrefix(deps.Widget.Source, "/"), suggestHandler.GetCities)
	s.App.Get("/select", selectHandler.Select)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Get("/cities", citiesAPI.Search)

	// Everything else
	s.App.Use(handlers.NotFound(s.Cfg))
}
