package service

import (
	"context"
	"errors"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres/repository"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, chatID int64) (*entities.ChatSettings, error) {
	settings, err := s.repository.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			if err := s.repository.Create(ctx, chatID); err != nil {
				return nil, err
			}
			return s.repository.GetByChatID(ctx, chatID)
		}
		return nil, err
	}

	return settings, nil
}

// CameraEnabled reports whether frames are captured in the chat.
func (s *SettingsService) CameraEnabled(ctx context.Context, chatID int64) (bool, error) {
	settings, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return false, err
	}
	return settings.CameraEnabled, nil
}

func (s *SettingsService) SetCameraEnabled(ctx context.Context, chatID int64, enabled bool) error {
	if _, err := s.GetOrCreate(ctx, chatID); err != nil {
		return err
	}
	return s.repository.UpdateCameraEnabled(ctx, chatID, enabled)
}
