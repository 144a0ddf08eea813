// Package binder wires a city input field to the autocomplete widget and
// turns a chosen suggestion into a map search.
package binder

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"citysuggest/internal/models"
)

// Defaults for the search page.
const (
	InputID                 = "query_auto"
	DefaultSource           = "get_cities"
	DefaultMaxResults       = 20
	DefaultMinTriggerLength = 1
	DefaultMapsPrefix       = "http://google.com/maps?q="
)

var (
	ErrElementNotFound    = errors.New("input element not found")
	ErrAlreadyInitialized = errors.New("binder already initialized")
)

// SelectFunc handles the widget's select event.
type SelectFunc func(ctx context.Context, item *models.Suggestion, field Field) models.Selection

// Config is the autocomplete configuration registered against the input.
type Config struct {
	Source           string     `yaml:"source" validate:"required"`
	MaxResults       int        `yaml:"max_results" validate:"gte=1,lte=100"`
	MinTriggerLength int        `yaml:"min_trigger_length" validate:"gte=0,lte=10"`
	OnSelect         SelectFunc `yaml:"-" validate:"-"`
}

// DefaultConfig returns the configuration used by the search page.
func DefaultConfig() Config {
	return Config{
		Source:           DefaultSource,
		MaxResults:       DefaultMaxResults,
		MinTriggerLength: DefaultMinTriggerLength,
	}
}

// Field is the text input the binder attaches to.
type Field interface {
	ID() string
	Value() string
	Focus()
}

// Document locates elements once the page structure is ready.
type Document interface {
	Element(id string) (Field, bool)
}

// Widget attaches autocomplete behavior to a field. Implementations invoke
// cfg.OnSelect when the user chooses an item.
type Widget interface {
	Autocomplete(field Field, cfg Config) error
}

// Navigator opens a URL in a new browsing context.
type Navigator interface {
	Open(ctx context.Context, url string) error
}

// Binder binds one input field. Init must be called once by the host.
type Binder struct {
	cfg        Config
	widget     Widget
	nav        Navigator
	logger     *slog.Logger
	mapsPrefix string
	field      Field
}

// Option customizes a Binder.
type Option func(*Binder)

// WithMapsPrefix overrides the map search URL prefix.
func WithMapsPrefix(prefix string) Option {
	return func(b *Binder) {
		b.mapsPrefix = prefix
	}
}

// New creates a binder. A nil OnSelect in cfg is replaced by b.Select.
func New(cfg Config, widget Widget, nav Navigator, logger *slog.Logger, opts ...Option) *Binder {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Binder{
		cfg:        cfg,
		widget:     widget,
		nav:        nav,
		logger:     logger,
		mapsPrefix: DefaultMapsPrefix,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.cfg.OnSelect == nil {
		b.cfg.OnSelect = b.Select
	}
	return b
}

// Config returns the effective widget configuration.
func (b *Binder) Config() Config {
	return b.cfg
}

// Field returns the bound field, nil before Init.
func (b *Binder) Field() Field {
	return b.field
}

// Init locates the input, registers the autocomplete widget and focuses
// the input.
func (b *Binder) Init(doc Document) error {
	if b.field != nil {
		return ErrAlreadyInitialized
	}

	field, ok := doc.Element(InputID)
	if !ok {
		return ErrElementNotFound
	}

	if b.widget != nil {
		if err := b.widget.Autocomplete(field, b.cfg); err != nil {
			return err
		}
	}

	b.field = field
	field.Focus()
	return nil
}

// Select derives the city name from the chosen item, opens the map search
// for it and logs the outcome. A nil item opens nothing.
func (b *Binder) Select(ctx context.Context, item *models.Suggestion, field Field) models.Selection {
	var label string
	if item != nil {
		label = item.Label
	}

	var input string
	if field != nil {
		input = field.Value()
	}

	name := StripDigits(label)
	sel := models.Selection{
		Name:    name,
		Message: Message(name, input),
	}

	if item != nil {
		sel.URL = MapsURL(b.mapsPrefix, name)
		if b.nav != nil {
			if err := b.nav.Open(ctx, sel.URL); err != nil {
				b.logger.WarnContext(ctx, "navigation failed", "url", sel.URL, "error", err)
			}
		}
	}

	b.logger.InfoContext(ctx, sel.Message, "name", name, "outcome", sel.Outcome())
	return sel
}

// StripDigits removes every decimal digit from label.
func StripDigits(label string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, label)
}

// MapsURL appends name to the map search prefix. The name is query-escaped
// (url.QueryEscape), so "New York" becomes "New+York" rather than being
// concatenated verbatim.
func MapsURL(prefix, name string) string {
	return prefix + url.QueryEscape(name)
}

// Message is the diagnostic line for a selection.
func Message(name, input string) string {
	if name != "" {
		return "Selected: " + name
	}
	return "Nothing selected, input was " + input
}
