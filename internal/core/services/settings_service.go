package services

import (
	"context"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

type SettingsServiceConfig struct {
	Repository ports.SettingsRepository
	Logger     *logger.Logger
}

type SettingsService struct {
	repo   ports.SettingsRepository
	logger *logger.Logger
}

func NewSettingsService(cfg SettingsServiceConfig) *SettingsService {
	return &SettingsService{repo: cfg.Repository, logger: cfg.Logger}
}

// GetSettings never errors on a missing row; users who have not saved
// anything get the defaults.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	settings, err := s.repo.GetByUserID(ctx, userID)
	if err != nil || settings == nil {
		return domain.DefaultUserSettings(userID), nil
	}
	return settings, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, settings *domain.UserSettings) error {
	if err := s.repo.Save(ctx, settings); err != nil {
		return err
	}
	s.logger.Infow("settings_updated", "user_id", settings.UserID)
	return nil
}
