package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bugsight/internal/domain"
	"bugsight/internal/repository"
)

var (
	// ErrBugNotFound is returned when a sighting references a bug that does not exist.
	ErrBugNotFound = errors.New("bug not found")
	// ErrSightingNotFound is returned when the requested sighting does not exist.
	ErrSightingNotFound = errors.New("sighting not found")
)

// SightingUpdate carries the mutable fields of a sighting.
type SightingUpdate struct {
	Latitude  float64
	Longitude float64
	SeenAt    time.Time
	Notes     string
}

// SightingService coordinates sighting records. Creation requires the
// referenced bug to exist.
type SightingService interface {
	Create(ctx context.Context, sighting *domain.Sighting) (*domain.Sighting, error)
	Get(ctx context.Context, id string) (*domain.Sighting, error)
	List(ctx context.Context) ([]domain.Sighting, error)
	Update(ctx context.Context, id string, update SightingUpdate) error
	Delete(ctx context.Context, id string) error
}

type sightingService struct {
	logger    *logrus.Logger
	sightings repository.SightingRepository
	bugs      repository.BugRepository
}

func NewSightingService(logger *logrus.Logger, sightings repository.SightingRepository, bugs repository.BugRepository) SightingService {
	return &sightingService{
		logger:    logger,
		sightings: sightings,
		bugs:      bugs,
	}
}

func (s *sightingService) Create(ctx context.Context, sighting *domain.Sighting) (*domain.Sighting, error) {
	s.logger.Infof("creation request for sighting of bug %s", sighting.BugID)

	if _, err := s.bugs.Get(ctx, sighting.BugID); err != nil {
		if isNotFound(err) {
			s.logger.Warn("cannot create sighting: no such bug, create the bug first")
			return nil, ErrBugNotFound
		}
		return nil, err
	}

	sighting.ID = uuid.NewString()
	if err := s.sightings.Create(ctx, sighting); err != nil {
		return nil, err
	}

	s.logger.Infof("sighting %s created", sighting.ID)
	return sighting, nil
}

func (s *sightingService) Get(ctx context.Context, id string) (*domain.Sighting, error) {
	sighting, err := s.sightings.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSightingNotFound
		}
		return nil, err
	}
	return sighting, nil
}

func (s *sightingService) List(ctx context.Context) ([]domain.Sighting, error) {
	return s.sightings.List(ctx)
}

func (s *sightingService) Update(ctx context.Context, id string, update SightingUpdate) error {
	sighting, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	sighting.Latitude = update.Latitude
	sighting.Longitude = update.Longitude
	sighting.SeenAt = update.SeenAt
	sighting.Notes = update.Notes

	if err := s.sightings.Update(ctx, sighting); err != nil {
		if isNotFound(err) {
			return ErrSightingNotFound
		}
		return err
	}

	s.logger.Infof("sighting %s updated", id)
	return nil
}

func (s *sightingService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.sightings.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infof("sighting %s deleted", id)
	return nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
