package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bugsight/internal/domain"
	"bugsight/internal/repository"
)

const createBugsTable = `
CREATE TABLE IF NOT EXISTS bugs (
	id TEXT PRIMARY KEY,
	species TEXT NOT NULL,
	danger_level INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT ''
);
`

type BugRepository struct {
	db *sql.DB
}

func NewBugRepository(db *sql.DB) repository.BugRepository {
	return &BugRepository{db: db}
}

func (r *BugRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBugsTable); err != nil {
		return fmt.Errorf("create bugs table: %w", err)
	}
	return nil
}

func (r *BugRepository) Create(ctx context.Context, bug *domain.Bug) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bugs (id, species, danger_level, description)
VALUES (?, ?, ?, ?)`,
		bug.ID,
		bug.Species,
		bug.DangerLevel,
		bug.Description,
	)
	if err != nil {
		return fmt.Errorf("insert bug: %w", err)
	}
	return nil
}

func (r *BugRepository) Get(ctx context.Context, id string) (*domain.Bug, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, species, danger_level, description
FROM bugs
WHERE id = ?`,
		id,
	)

	var bug domain.Bug
	if err := row.Scan(&bug.ID, &bug.Species, &bug.DangerLevel, &bug.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bug not found")
		}
		return nil, fmt.Errorf("scan bug: %w", err)
	}
	return &bug, nil
}

func (r *BugRepository) List(ctx context.Context) ([]domain.Bug, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, species, danger_level, description
FROM bugs
ORDER BY species`)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	defer rows.Close()

	var bugs []domain.Bug
	for rows.Next() {
		var bug domain.Bug
		if err := rows.Scan(&bug.ID, &bug.Species, &bug.DangerLevel, &bug.Description); err != nil {
			return nil, fmt.Errorf("scan bug: %w", err)
		}
		bugs = append(bugs, bug)
	}
	return bugs, rows.Err()
}

func (r *BugRepository) Update(ctx context.Context, bug *domain.Bug) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE bugs
SET species = ?, danger_level = ?, description = ?
WHERE id = ?`,
		bug.Species,
		bug.DangerLevel,
		bug.Description,
		bug.ID,
	)
	if err != nil {
		return fmt.Errorf("update bug: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bug rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bug not found")
	}
	return nil
}

func (r *BugRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bugs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete bug: %w", err)
	}
	return nil
}
