package repository

import (
	"context"

	"bugsight/internal/domain"
)

// BugRepository defines persistence operations for Bug entities.
type BugRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, bug *domain.Bug) error
	Get(ctx context.Context, id string) (*domain.Bug, error)
	List(ctx context.Context) ([]domain.Bug, error)
	Update(ctx context.Context, bug *domain.Bug) error
	Delete(ctx context.Context, id string) error
}
