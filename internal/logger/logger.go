package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/config"
)

const serviceName = "emoquiz-bot"

// New builds the application logger. Every entry carries the service name
// and environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	var (
		lg  *zap.Logger
		err error
	)
	if cfg.Env == "production" {
		lg, err = zap.NewProduction()
	} else {
		lg, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return lg.With(
		zap.String("service", serviceName),
		zap.String("env", cfg.Env),
	), nil
}
