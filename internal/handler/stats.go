package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleStats replies with generation totals. Owner only; everyone else is
// silently ignored.
func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	s := h.store.Current()
	if strconv.FormatInt(update.Message.From.ID, 10) != s.OwnerID {
		return
	}
	if h.history == nil {
		return
	}

	stats, err := h.history.Stats(ctx)
	if err != nil {
		slog.Error("load generation stats", "error", err)
		return
	}

	text := fmt.Sprintf(
		"📊 Generations\n\nTotal: %d\nSucceeded: %d\nImages: %d\nVideos: %d",
		stats.Total, stats.Succeeded, stats.Images, stats.Videos,
	)
	if _, err := h.tg.SendText(ctx, update.Message.Chat.ID, text); err != nil {
		slog.Error("send stats", "error", err)
	}
}
