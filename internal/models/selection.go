package models

import (
	"time"

	"github.com/google/uuid"
)

// Selection outcome constants
const (
	OutcomeSelected = "selected"
	OutcomeEmpty    = "empty"
)

// Selection is the result of choosing an autocomplete item.
type Selection struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Outcome reports whether the selection carried a usable name.
func (s Selection) Outcome() string {
	if s.Name == "" {
		return OutcomeEmpty
	}
	return OutcomeSelected
}

// SelectionCount is a per-city selection counter row.
type SelectionCount struct {
	ID         uuid.UUID
	Name       string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
