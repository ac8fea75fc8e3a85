package db

import (
	"context"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type followRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFollowRepository(db *gorm.DB, log *logger.Logger) ports.FollowRepository {
	return &followRepository{db: db, log: log}
}

func (r *followRepository) Create(ctx context.Context, follow *domain.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		r.log.Errorw("follow_repo_create_failed", "follower_id", follow.FollowerID, "following_id", follow.FollowingID, "error", err)
		return err
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.Follow{}).Error
	if err != nil {
		r.log.Errorw("follow_repo_delete_failed", "follower_id", followerID, "following_id", followingID, "error", err)
		return err
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		r.log.Errorw("follow_repo_exists_failed", "follower_id", followerID, "following_id", followingID, "error", err)
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		r.log.Errorw("follow_repo_followers_failed", "user_id", userID, "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		r.log.Errorw("follow_repo_following_failed", "user_id", userID, "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
