package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bugsight/internal/domain"
	"bugsight/internal/repository"
)

const createSightingsTable = `
CREATE TABLE IF NOT EXISTS sightings (
	id TEXT PRIMARY KEY,
	bug_id TEXT NOT NULL REFERENCES bugs(id),
	user_id TEXT NOT NULL REFERENCES users(id),
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	seen_at DATETIME NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type SightingRepository struct {
	db *sql.DB
}

func NewSightingRepository(db *sql.DB) repository.SightingRepository {
	return &SightingRepository{db: db}
}

func (r *SightingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSightingsTable); err != nil {
		return fmt.Errorf("create sightings table: %w", err)
	}
	return nil
}

func (r *SightingRepository) Create(ctx context.Context, sighting *domain.Sighting) error {
	sighting.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sightings (id, bug_id, user_id, latitude, longitude, seen_at, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sighting.ID,
		sighting.BugID,
		sighting.UserID,
		sighting.Latitude,
		sighting.Longitude,
		sighting.SeenAt,
		sighting.Notes,
		sighting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sighting: %w", err)
	}
	return nil
}

func (r *SightingRepository) Get(ctx context.Context, id string) (*domain.Sighting, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, bug_id, user_id, latitude, longitude, seen_at, notes, created_at
FROM sightings
WHERE id = ?`,
		id,
	)
	return scanSighting(row)
}

func (r *SightingRepository) List(ctx context.Context) ([]domain.Sighting, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, bug_id, user_id, latitude, longitude, seen_at, notes, created_at
FROM sightings
ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list sightings: %w", err)
	}
	defer rows.Close()

	var sightings []domain.Sighting
	for rows.Next() {
		sighting, err := scanSighting(rows)
		if err != nil {
			return nil, err
		}
		sightings = append(sightings, *sighting)
	}
	return sightings, rows.Err()
}

func (r *SightingRepository) Update(ctx context.Context, sighting *domain.Sighting) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE sightings
SET latitude = ?, longitude = ?, seen_at = ?, notes = ?
WHERE id = ?`,
		sighting.Latitude,
		sighting.Longitude,
		sighting.SeenAt,
		sighting.Notes,
		sighting.ID,
	)
	if err != nil {
		return fmt.Errorf("update sighting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sighting rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sighting not found")
	}
	return nil
}

func (r *SightingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sightings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete sighting: %w", err)
	}
	return nil
}

func scanSighting(row interface {
	Scan(dest ...any) error
}) (*domain.Sighting, error) {
	var sighting domain.Sighting
	if err := row.Scan(
		&sighting.ID,
		&sighting.BugID,
		&sighting.UserID,
		&sighting.Latitude,
		&sighting.Longitude,
		&sighting.SeenAt,
		&sighting.Notes,
		&sighting.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sighting not found")
		}
		return nil, fmt.Errorf("scan sighting: %w", err)
	}
	return &sighting, nil
}
