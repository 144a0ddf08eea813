package db

import (
	"context"

	"github.com/google/uuid"

	"citysuggest/internal/models"
)

// IncrementSelection upserts a per-city selection count by outcome.
func (d *DB) IncrementSelection(ctx context.Context, name, outcome string) error {
	if outcome != models.OutcomeSelected && outcome != models.OutcomeEmpty {
		return ErrInvalidOutcome
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO city_selections (id, name, outcome, count, last_seen_at)
		VALUES ($1, $2, $3, 1, NOW())
		ON CONFLICT (name, outcome) DO UPDATE
		SET count = city_selections.count + 1, last_seen_at = NOW()
	`, uuid.New(), name, outcome)
	return err
}

// GetAllSelections returns all selection count rows for metrics export.
func (d *DB) GetAllSelections(ctx context.Context) ([]models.SelectionCount, error) {
	rows, err := d.Pool.Query(ctx, `SELECT id, name, outcome, count, last_seen_at FROM city_selections`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.SelectionCount
	for rows.Next() {
		var s models.SelectionCount
		if err := rows.Scan(&s.ID, &s.Name, &s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		counts = append(counts, s)
	}
	return counts, rows.Err()
}
