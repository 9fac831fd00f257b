package handler

import (
	"context"

	"github.com/go-telegram/bot"

	"github.com/yshzap/aigenbot/internal/domain"
	"github.com/yshzap/aigenbot/internal/settings"
	"github.com/yshzap/aigenbot/internal/telegram"
)

// Generator produces media for a prompt. Implemented by
// service.GeneratorService.
type Generator interface {
	Generate(ctx context.Context, prompt string, m domain.Modality) (string, error)
}

// History records finished generations and serves owner stats. Implemented
// by repository.HistoryRepository.
type History interface {
	Record(ctx context.Context, rec domain.GenerationRecord) error
	Stats(ctx context.Context) (domain.GenerationStats, error)
}

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	store     *settings.Store
	generator Generator
	history   History
	tg        telegram.Sender
	pending   *pendingStore
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Settings  *settings.Store
	Generator Generator
	History   History
	Sender    telegram.Sender
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		store:     deps.Settings,
		generator: deps.Generator,
		history:   deps.History,
		tg:        deps.Sender,
		pending:   newPendingStore(),
	}
}
