package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/config"
	"github.com/aliskhannn/emoquiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/emoquiz-bot/internal/logger"
	"github.com/aliskhannn/emoquiz-bot/internal/metrics"
	"github.com/aliskhannn/emoquiz-bot/internal/sampler"
	"github.com/aliskhannn/emoquiz-bot/internal/service"
	"github.com/aliskhannn/emoquiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	device, err := camera.NewDevice(cfg.Capture.Backend, cfg.Capture.SnapshotURL, cfg.Capture.Directory)
	if err != nil {
		lg.Fatal("failed to create camera device", zap.Error(err))
	}
	shared := camera.NewShared(device)

	recorder := metrics.NewRecorder()
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.SubmitTimeout)
	collector := sampler.NewCollector(cfg.Capture.Interval, lg, sampler.WithObserver(recorder))

	accountRepo := repository.NewAccountRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	transactor := postgres.NewTransactor(pool)

	sessions := storage.NewSessionStorage()
	view := telegram.NewView(bot, sessions, lg)

	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(client, accountRepo, transactor, lg)
	authoringService := service.NewAuthoringService(client, lg)
	recommendationService := service.NewRecommendationService(client)
	runner := service.NewQuizRunner(
		client,
		collector,
		sessions,
		settingsService,
		shared,
		view,
		lg,
		service.WithFrames(cfg.Capture.Count),
		service.WithSessionObserver(recorder),
	)
	sweeper := service.NewSessionSweeper(sessions, runner, cfg.Session.IdleTTL, cfg.Session.SweepSpec, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		runner,
		authService,
		authoringService,
		recommendationService,
		storage.NewDraftStorage(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(gctx) })
	g.Go(func() error { return sweeper.Start(gctx) })
	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, lg)
		g.Go(func() error { return srv.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}
	lg.Info("shutdown complete")
}
