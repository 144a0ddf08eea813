package models

import "time"

// City is a stored city record. Record holds the full source line; Name is
// its first tab-separated column.
type City struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Record    string    `json:"record"`
	CreatedAt time.Time `json:"created_at"`
}
