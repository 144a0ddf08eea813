package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"citysuggest/internal/binder"
	"citysuggest/internal/config"
	"citysuggest/internal/metrics"
	"citysuggest/internal/models"
	"citysuggest/internal/qgram"
	"citysuggest/internal/validation"
)

// redirectNavigator records the target URL; the handler answers with a
// redirect to it.
type redirectNavigator struct {
	target string
}

func (n *redirectNavigator) Open(_ context.Context, url string) error {
	if valid, msg := validation.ValidateURL(url); !valid {
		return errors.New(msg)
	}
	n.target = url
	return nil
}

// requestField carries the input text the browser sent with the selection.
type requestField struct {
	text string
}

func (f requestField) ID() string    { return binder.InputID }
func (f requestField) Value() string { return f.text }
func (f requestField) Focus()        {}

// SelectHandler handles the widget's select event.
type SelectHandler struct {
	cfg    *config.Config
	widget binder.Config
	holder *qgram.Holder
}

// NewSelectHandler creates a new selection handler. holder decides which
// selected names are counted individually.
func NewSelectHandler(cfg *config.Config, widget binder.Config, holder *qgram.Holder) *SelectHandler {
	return &SelectHandler{cfg: cfg, widget: widget, holder: holder}
}

// Select strips digits from ?label=, logs the selection and redirects to the
// map search. Without a label nothing is opened and 204 is returned.
func (h *SelectHandler) Select(c fiber.Ctx) error {
	label, hasLabel := c.Queries()["label"]
	if !validation.ValidateLabel(label) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid label")
	}

	var item *models.Suggestion
	if hasLabel {
		item = &models.Suggestion{Label: label, Value: label}
	}

	logger := slog.Default().With("request_id", requestid.FromContext(c))
	nav := &redirectNavigator{}
	b := binder.New(h.widget, nil, nav, logger, binder.WithMapsPrefix(h.cfg.MapsURL))

	sel := b.Select(c.Context(), item, requestField{text: c.Query("input")})
	metrics.RecordSelection(h.countedName(sel.Name), sel.Outcome())

	if nav.target == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect().Status(fiber.StatusFound).To(nav.target)
}

// countedName returns name if a record in the published index carries it,
// otherwise metrics.OtherCity. Labels are client input, so unknown names
// share one counter.
func (h *SelectHandler) countedName(name string) string {
	if name == "" {
		return ""
	}
	idx, err := h.holder.Load()
	if err != nil || !idx.HasName(name) {
		return metrics.OtherCity
	}
	return name
}
