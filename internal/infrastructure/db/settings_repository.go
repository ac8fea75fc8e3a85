package db

import (
	"context"
	"errors"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepository(db *gorm.DB, log *logger.Logger) ports.SettingsRepository {
	return &settingsRepository{db: db, log: log}
}

// GetByUserID returns (nil, nil) when the user has never saved settings.
func (r *settingsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorw("settings_repo_get_failed", "user_id", userID, "error", err)
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.UserSettings) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
	if err != nil {
		r.log.Errorw("settings_repo_save_failed", "user_id", settings.UserID, "error", err)
		return err
	}
	r.log.Infow("settings_repo_save_ok", "user_id", settings.UserID)
	return nil
}
