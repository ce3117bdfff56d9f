package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres/repository"
)

// AuthService links chats to identities of the remote quiz service.
type AuthService struct {
	api        AuthAPI
	repository AccountRepository
	tr         Transactor
	logger     *zap.Logger
}

func NewAuthService(api AuthAPI, repository AccountRepository, tr Transactor, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, repository: repository, tr: tr, logger: logger}
}

// Login authenticates a student and links the chat to the student.
func (s *AuthService) Login(ctx context.Context, chatID int64, username, password string) (*entities.Account, error) {
	identity, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.link(ctx, chatID, entities.RoleStudent, identity.ID, identity.Name)
}

// AdminLogin authenticates a lecturer and links the chat to the lecturer.
func (s *AuthService) AdminLogin(ctx context.Context, chatID int64, email, password string) (*entities.Account, error) {
	identity, err := s.api.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.link(ctx, chatID, entities.RoleAdmin, identity.ID, identity.Name)
}

func (s *AuthService) link(ctx context.Context, chatID int64, role entities.Role, remoteID, name string) (*entities.Account, error) {
	account := entities.NewAccount(chatID, role, remoteID, name)

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		accountRepo := repository.NewAccountRepository(tx)
		settingsRepo := repository.NewSettingsRepository(tx)

		if err := accountRepo.Upsert(ctx, account); err != nil {
			return err
		}
		return settingsRepo.Create(ctx, chatID)
	})
	if err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	s.logger.Info("chat logged in",
		zap.Int64("chat_id", chatID),
		zap.String("role", string(role)),
		zap.String("remote_id", remoteID),
	)
	return account, nil
}

// Logout removes the chat's account link. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, chatID int64) error {
	err := s.repository.Delete(ctx, chatID)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return err
	}
	return nil
}

// Account returns the account linked to the chat or ErrNotLoggedIn.
func (s *AuthService) Account(ctx context.Context, chatID int64) (*entities.Account, error) {
	account, err := s.repository.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return account, nil
}
