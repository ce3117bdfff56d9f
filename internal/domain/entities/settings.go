package entities

import "time"

// ChatSettings stores per-chat preferences.
type ChatSettings struct {
	ChatID        int64
	CameraEnabled bool // whether frames are captured while answering
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewChatSettings creates a ChatSettings instance with default values.
func NewChatSettings(chatID int64) *ChatSettings {
	now := time.Now()
	return &ChatSettings{
		ChatID:        chatID,
		CameraEnabled: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
