package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/bot"
	"github.com/m3rciful/poetbot/internal/config"
	"github.com/m3rciful/poetbot/internal/database"
	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
	"github.com/m3rciful/poetbot/internal/store"
	"github.com/m3rciful/poetbot/internal/telegram"
)

const sweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatalf("poetbot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Dir:     cfg.Logging.Dir,
		File:    cfg.Logging.BotFile,
		Profile: cfg.Logging.Profile,
	}); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sm := state.NewManager(
		time.Duration(cfg.Event.StateTimeoutSeconds)*time.Second,
		time.Duration(cfg.Event.SnapshotTTLSeconds)*time.Second,
	)
	sm.StartSweeper(ctx, sweepInterval)

	app := bot.New(cfg, store.New(db), sm)

	startedAt := time.Now()
	return telegram.Run(ctx, telegram.RunOptions{
		Config:      cfg,
		Middlewares: app.Middlewares(),
		Routes:      app.Routes(),
		Commands:    app.Commands(),
		OnStart: func(ctx context.Context, _ *tele.Bot) error {
			logger.Info(ctx, "app", "ready",
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
	})
}
