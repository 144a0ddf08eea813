package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"citysuggest/internal/binder"
	"citysuggest/internal/config"
)

var errUnsupportedField = errors.New("field is not a page input")

// InputView is the template model of the search input. It is the page's
// binder.Field: autocomplete settings land in data attributes and Focus
// sets the autofocus attribute.
type InputView struct {
	InputID          string
	Text             string
	Source           string
	MaxResults       int
	MinTriggerLength int
	SelectURL        string
	Autofocus        bool
}

func (v *InputView) ID() string    { return v.InputID }
func (v *InputView) Value() string { return v.Text }
func (v *InputView) Focus()        { v.Autofocus = true }

// pageDocument exposes the inputs of one rendered page.
type pageDocument struct {
	inputs []*InputView
}

func (d pageDocument) Element(id string) (binder.Field, bool) {
	for _, in := range d.inputs {
		if in.InputID == id {
			return in, true
		}
	}
	return nil, false
}

// pageWidget renders the autocomplete configuration into the input's
// attributes; search.js drives the browser widget from them.
type pageWidget struct {
	selectURL string
}

func (w pageWidget) Autocomplete(field binder.Field, cfg binder.Config) error {
	in, ok := field.(*InputView)
	if !ok {
		return errUnsupportedField
	}
	in.Source = cfg.Source
	in.MaxResults = cfg.MaxResults
	in.MinTriggerLength = cfg.MinTriggerLength
	in.SelectURL = w.selectURL
	return nil
}

// SearchHandler renders the search page.
type SearchHandler struct {
	cfg    *config.Config
	widget binder.Config
}

// NewSearchHandler creates a new search page handler.
func NewSearchHandler(cfg *config.Config, widget binder.Config) *SearchHandler {
	return &SearchHandler{cfg: cfg, widget: widget}
}

// Index renders the search page with the input bound to the autocomplete widget.
func (h *SearchHandler) Index(c fiber.Ctx) error {
	input := &InputView{InputID: binder.InputID, Text: c.Query("term")}

	b := binder.New(h.widget, pageWidget{selectURL: "select"}, nil, slog.Default())
	if err := b.Init(pageDocument{inputs: []*InputView{input}}); err != nil {
		return err
	}

	return c.Render("search", MergeBranding(fiber.Map{
		"Title": "Search",
		"Input": input,
	}, h.cfg))
}
