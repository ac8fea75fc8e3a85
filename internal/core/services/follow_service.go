package services

import (
	"context"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

type FollowServiceConfig struct {
	Repository ports.FollowRepository
	Logger     *logger.Logger
}

type FollowService struct {
	repo   ports.FollowRepository
	logger *logger.Logger
}

func NewFollowService(cfg FollowServiceConfig) *FollowService {
	return &FollowService{repo: cfg.Repository, logger: cfg.Logger}
}

// FollowUser is idempotent: following someone twice is a no-op.
func (s *FollowService) FollowUser(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrFollowSelf
	}

	exists, err := s.repo.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	follow := &domain.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.repo.Create(ctx, follow); err != nil {
		return err
	}
	s.logger.Infow("follow_created", "follower_id", followerID, "following_id", followingID)
	return nil
}

func (s *FollowService) UnfollowUser(ctx context.Context, followerID, followingID string) error {
	exists, err := s.repo.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFollowNotFound
	}

	if err := s.repo.Delete(ctx, followerID, followingID); err != nil {
		return err
	}
	s.logger.Infow("follow_removed", "follower_id", followerID, "following_id", followingID)
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.repo.Exists(ctx, followerID, followingID)
}

func (s *FollowService) GetFollowers(ctx context.Context, userID string) ([]string, error) {
	return s.repo.GetFollowerIDs(ctx, userID)
}

func (s *FollowService) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	return s.repo.GetFollowingIDs(ctx, userID)
}

func (s *FollowService) GetFollowStats(ctx context.Context, userID string) (int64, int64, error) {
	followers, err := s.repo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err := s.repo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
