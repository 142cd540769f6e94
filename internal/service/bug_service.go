package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bugsight/internal/domain"
	"bugsight/internal/repository"
)

// BugService coordinates bug species records backed by the bug repository.
type BugService interface {
	Create(ctx context.Context, species string, dangerLevel int, description string) (*domain.Bug, error)
	Get(ctx context.Context, id string) (*domain.Bug, error)
	List(ctx context.Context) ([]domain.Bug, error)
	Update(ctx context.Context, bug *domain.Bug) error
	Delete(ctx context.Context, id string) error
}

type bugService struct {
	logger *logrus.Logger
	bugs   repository.BugRepository
}

func NewBugService(logger *logrus.Logger, bugs repository.BugRepository) BugService {
	return &bugService{
		logger: logger,
		bugs:   bugs,
	}
}

func (s *bugService) Create(ctx context.Context, species string, dangerLevel int, description string) (*domain.Bug, error) {
	species = strings.TrimSpace(species)
	if species == "" {
		return nil, errors.New("species is required")
	}

	bug := &domain.Bug{
		ID:          uuid.NewString(),
		Species:     species,
		DangerLevel: dangerLevel,
		Description: description,
	}

	if err := s.bugs.Create(ctx, bug); err != nil {
		return nil, err
	}

	s.logger.Infof("bug %s (%s) created", bug.ID, bug.Species)
	return bug, nil
}

func (s *bugService) Get(ctx context.Context, id string) (*domain.Bug, error) {
	return s.bugs.Get(ctx, id)
}

func (s *bugService) List(ctx context.Context) ([]domain.Bug, error) {
	return s.bugs.List(ctx)
}

func (s *bugService) Update(ctx context.Context, bug *domain.Bug) error {
	return s.bugs.Update(ctx, bug)
}

func (s *bugService) Delete(ctx context.Context, id string) error {
	return s.bugs.Delete(ctx, id)
}
