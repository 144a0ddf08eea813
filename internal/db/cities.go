package db

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"

	"citysuggest/internal/models"
	"citysuggest/internal/qgram"
)

// ListCities returns all stored cities in insertion order.
func (d *DB) ListCities(ctx context.Context) ([]models.City, error) {
	rows, err := d.Pool.Query(ctx, `SELECT id, name, record, created_at FROM cities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Record, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// CountCities returns the number of stored cities.
func (d *DB) CountCities(ctx context.Context) (int64, error) {
	var n int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}
	return n, nil
}

// LoadIndex builds a q-gram index from the stored cities.
// Returns ErrNoCities if the table is empty.
func (d *DB) LoadIndex(ctx context.Context, q int) (*qgram.Index, error) {
	rows, err := d.Pool.Query(ctx, `SELECT record FROM cities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	idx := qgram.New(q)
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		idx.Add(record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if idx.Len() == 0 {
		return nil, ErrNoCities
	}
	return idx, nil
}

// ImportCities bulk-loads TSV city records (one per line, name in the first
// column). When replace is set the table is emptied first. Runs in a single
// transaction.
func (d *DB) ImportCities(ctx context.Context, r io.Reader, replace bool) (int64, error) {
	var rows [][]any
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, _, _ := strings.Cut(line, "\t")
		rows = append(rows, []any{name, line})
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read cities: %w", err)
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if replace {
		if _, err := tx.Exec(ctx, `TRUNCATE cities RESTART IDENTITY`); err != nil {
			return 0, fmt.Errorf("failed to clear cities: %w", err)
		}
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"cities"}, []string{"name", "record"}, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy cities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit cities: %w", err)
	}
	return n, nil
}
