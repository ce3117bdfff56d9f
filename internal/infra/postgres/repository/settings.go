package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to chat settings in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a chat. Existing settings are kept.
func (r *SettingsRepository) Create(ctx context.Context, chatID int64) error {
	d := entities.NewChatSettings(chatID)

	query := `
		INSERT INTO chat_settings (chat_id, camera_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, d.ChatID, d.CameraEnabled, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByChatID retrieves settings for a chat.
func (r *SettingsRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.ChatSettings, error) {
	query := `
		SELECT chat_id, camera_enabled, created_at, updated_at
		FROM chat_settings
		WHERE chat_id = $1
	`

	var settings entities.ChatSettings
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&settings.ChatID,
		&settings.CameraEnabled,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

func (r *SettingsRepository) UpdateCameraEnabled(ctx context.Context, chatID int64, enabled bool) error {
	query := `
		UPDATE chat_settings
		SET camera_enabled = $2, updated_at = NOW()
		WHERE chat_id = $1
	`

	tag, err := r.db.Exec(ctx, query, chatID, enabled)
	if err != nil {
		return fmt.Errorf("update camera_enabled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
