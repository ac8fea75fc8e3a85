package db

import (
	"context"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type userRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepository(db *gorm.DB, log *logger.Logger) ports.UserRepository {
	return &userRepository{db: db, log: log}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.log.Errorw("user_repo_create_failed", "username", user.Username, "error", err)
		return err
	}
	r.log.Infow("user_repo_create_ok", "id", user.ID, "username", user.Username)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		r.log.Errorw("user_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		r.log.Errorw("user_repo_get_by_username_failed", "username", username, "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		r.log.Errorw("user_repo_username_exists_failed", "username", username, "error", err)
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		r.log.Errorw("user_repo_update_failed", "id", user.ID, "error", err)
		return err
	}
	r.log.Infow("user_repo_update_ok", "id", user.ID)
	return nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	var users []domain.User
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("username ILIKE ? OR display_name ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		r.log.Errorw("user_repo_search_failed", "query", query, "error", err)
		return nil, err
	}
	return users, nil
}
