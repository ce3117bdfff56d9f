package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountRepository stores which remote identity a chat is logged in as.
type AccountRepository struct {
	db postgres.DBTX
}

func NewAccountRepository(db postgres.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Upsert links the chat to the account, replacing an earlier login.
func (r *AccountRepository) Upsert(ctx context.Context, a *entities.Account) error {
	query := `
		INSERT INTO accounts (chat_id, role, remote_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id) DO UPDATE SET
			role = EXCLUDED.role,
			remote_id = EXCLUDED.remote_id,
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, a.ChatID, string(a.Role), a.RemoteID, a.Name, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}

	return nil
}

func (r *AccountRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.Account, error) {
	query := `
		SELECT chat_id, role, remote_id, name, created_at, updated_at
		FROM accounts
		WHERE chat_id = $1
	`

	var (
		a    entities.Account
		role string
	)
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&a.ChatID,
		&role,
		&a.RemoteID,
		&a.Name,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	a.Role = entities.Role(role)

	return &a, nil
}

func (r *AccountRepository) Delete(ctx context.Context, chatID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}
