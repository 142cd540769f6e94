package repository

import (
	"context"

	"bugsight/internal/domain"
)

// SightingRepository defines persistence operations for Sighting entities.
type SightingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, sighting *domain.Sighting) error
	Get(ctx context.Context, id string) (*domain.Sighting, error)
	List(ctx context.Context) ([]domain.Sighting, error)
	Update(ctx context.Context, sighting *domain.Sighting) error
	Delete(ctx context.Context, id string) error
}
