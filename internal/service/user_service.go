package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bugsight/internal/auth"
	"bugsight/internal/domain"
	"bugsight/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// It covers both an unknown identifier and a wrong password so callers
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering with a taken username or email.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries login credentials. Username and Email are
// interchangeable identifiers; either may be blank.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// UserService handles registration, login and user lookups. Register and
// Login return a signed bearer token on success.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, in LoginInput) (string, error)
	FindUser(ctx context.Context, in LoginInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	logger *logrus.Logger
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenIssuer
}

func NewUserService(logger *logrus.Logger, users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenIssuer) UserService {
	return &userService{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return "", errors.New("username is required")
	}
	if email == "" {
		return "", errors.New("email is required")
	}
	if in.Password == "" {
		return "", errors.New("password is required")
	}

	for _, identifier := range []string{username, email} {
		existing, err := s.lookup(ctx, identifier)
		if err != nil {
			return "", err
		}
		if existing != nil {
			s.logger.Warnf("registration rejected: %q is already taken", identifier)
			return "", ErrUserAlreadyExists
		}
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: digest,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// unique constraints are the backstop for concurrent registrations
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return "", ErrUserAlreadyExists
		}
		return "", err
	}

	s.logger.Infof("user %s registered", user.ID)
	return s.tokens.Issue(user)
}

func (s *userService) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.FindUser(ctx, in)
	if err != nil {
		return "", err
	}

	if user == nil || !s.hasher.Verify(in.Password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user)
}

func (s *userService) FindUser(ctx context.Context, in LoginInput) (*domain.User, error) {
	identifier := strings.TrimSpace(in.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(in.Email)
	}

	if identifier == "" {
		s.logger.Warn("no username and no email provided, user cannot be found")
		return nil, nil
	}

	return s.lookup(ctx, identifier)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// lookup maps the repository's "not found" error to a nil user.
func (s *userService) lookup(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
