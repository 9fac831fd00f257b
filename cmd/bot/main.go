package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	"github.com/yshzap/aigenbot/internal/admin"
	"github.com/yshzap/aigenbot/internal/config"
	"github.com/yshzap/aigenbot/internal/handler"
	"github.com/yshzap/aigenbot/internal/middleware"
	"github.com/yshzap/aigenbot/internal/repository"
	"github.com/yshzap/aigenbot/internal/service"
	"github.com/yshzap/aigenbot/internal/settings"
	"github.com/yshzap/aigenbot/internal/telegram"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load settings; force interactive setup while credentials are missing
	s, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	edited := false
	switch {
	case !s.HasCredentials():
		ed := settings.NewEditor(os.Stdin, os.Stdout)
		s, err = ed.FirstRun(s)
		edited = true
	case cfg.EditOnStart:
		ed := settings.NewEditor(os.Stdin, os.Stdout)
		s, err = ed.Run(s)
		edited = true
	}
	if errors.Is(err, settings.ErrAborted) {
		slog.Info("setup aborted, nothing saved")
		os.Exit(0)
	}
	if err != nil {
		slog.Error("interactive setup failed", "error", err)
		os.Exit(1)
	}
	if !s.HasCredentials() {
		slog.Error("bot token and owner ID are required")
		os.Exit(1)
	}
	if edited {
		if err := settings.Save(cfg.SettingsPath, s); err != nil {
			slog.Error("failed to save settings", "error", err)
			os.Exit(1)
		}
	}
	store := settings.NewStore(cfg.SettingsPath, s)

	// Open generation history
	history, err := repository.NewHistory(cfg.HistoryPath)
	if err != nil {
		slog.Error("failed to open history db", "error", err)
		os.Exit(1)
	}
	defer history.Close()

	generator := service.NewGeneratorService(cfg.GenerationURL, cfg.GenerationTimeout)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
	}

	b, err := bot.New(store.Current().BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h := handler.New(handler.Deps{
		Bot:       b,
		Settings:  store,
		Generator: generator,
		History:   history,
		Sender:    telegram.NewBotSender(b),
	})
	h.Register()

	// Fallback text handler: any non-command text becomes a prompt
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleText(ctx, b, update)
	})

	// Expire parked prompts
	go func() {
		ticker := time.NewTicker(config.PendingSweep)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := h.SweepPending(config.PendingTTL); n > 0 {
					slog.Debug("expired pending prompts", "count", n)
				}
			}
		}
	}()

	if cfg.AdminConsole {
		go admin.New(store).Run(ctx)
	}

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
