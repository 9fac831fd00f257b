package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	s := h.store.Current()
	if _, err := h.tg.SendText(ctx, update.Message.Chat.ID, s.Welcome); err != nil {
		slog.Error("send welcome", "error", err)
	}
}
