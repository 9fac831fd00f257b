package handler

import (
	"github.com/go-telegram/bot"

	"github.com/yshzap/aigenbot/internal/domain"
)

// Register registers all command and callback handlers on the bot instance.
// The freeform text handler is registered separately in main so command
// routing stays ahead of it.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Selection callbacks: tokens always begin with the modality
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, string(domain.ModalityImage)+tokenDelimiter, bot.MatchTypePrefix, h.handleSelection)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, string(domain.ModalityVideo)+tokenDelimiter, bot.MatchTypePrefix, h.handleSelection)
}
