package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

const searchLimit = 20

type UserServiceConfig struct {
	Repository ports.UserRepository
	Logger     *logger.Logger
}

type UserService struct {
	repo   ports.UserRepository
	logger *logger.Logger
}

func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{repo: cfg.Repository, logger: cfg.Logger}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.ToLower(username)
	if !usernamePattern.MatchString(username) {
		return false, ErrUsernameInvalid
	}
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *UserService) UpdateUsername(ctx context.Context, userID, username string) error {
	username = strings.ToLower(username)
	if !usernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameTaken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	user.Username = username
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Infow("username_updated", "user_id", userID, "username", username)
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Infow("profile_updated", "user_id", userID)
	return nil
}

func (s *UserService) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, query, searchLimit)
}
