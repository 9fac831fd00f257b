package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/yshzap/aigenbot/internal/domain"
	tg "github.com/yshzap/aigenbot/internal/telegram"
)

const (
	chooseText       = "Choose what to generate:"
	generatingNotice = "⏳ Generating... please wait"
	failureNotice    = "❌ Failed to generate AI content."
	expiredNotice    = "This request has expired. Send the prompt again."
)

// HandleText turns any freeform text message into a two-button choice
// prompt. Registered as the fallback text handler in main.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	prompt := strings.TrimSpace(update.Message.Text)
	if prompt == "" || strings.HasPrefix(prompt, "/") {
		return
	}

	s := h.store.Current()
	ref := h.tokenPrompt(prompt)
	kb := tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton(s.ImageButton, encodeToken(domain.ModalityImage, ref)),
		tg.InlineButton(s.VideoButton, encodeToken(domain.ModalityVideo, ref)),
	))

	if err := h.tg.SendChoice(ctx, update.Message.Chat.ID, chooseText, kb); err != nil {
		slog.Error("send choice keyboard", "error", err)
	}
}

// handleSelection drives one generation: acknowledge the button press, post
// the transient notice, call the generation API, relay the outcome, and
// delete the notice on every exit path.
func (h *Handler) handleSelection(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	chatID := cb.Message.Message.Chat.ID

	// Ack first so the client drops its loading spinner.
	if err := h.tg.AnswerCallback(ctx, cb.ID); err != nil {
		slog.Warn("answer callback", "error", err)
	}

	modality, tokenPrompt, err := decodeToken(cb.Data)
	if err != nil {
		slog.Warn("decode selection token", "error", err, "data", cb.Data)
		return
	}
	prompt, ok := h.resolvePrompt(tokenPrompt)
	if !ok {
		if _, err := h.tg.SendText(ctx, chatID, expiredNotice); err != nil {
			slog.Error("send expired notice", "error", err)
		}
		return
	}

	noticeID, err := h.tg.SendText(ctx, chatID, generatingNotice)
	if err != nil {
		slog.Error("send generating notice", "error", err)
	} else {
		// Unconditional cleanup: the notice goes away whether generation
		// succeeds, fails or panics.
		defer func() {
			if err := h.tg.DeleteMessage(ctx, chatID, noticeID); err != nil {
				slog.Warn("delete generating notice", "error", err)
			}
		}()
	}

	start := time.Now()
	mediaURL, genErr := h.generator.Generate(ctx, prompt, modality)

	h.record(ctx, domain.GenerationRecord{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Modality:  modality,
		Prompt:    prompt,
		OK:        genErr == nil,
		MediaURL:  mediaURL,
		ErrorKind: domain.Kind(genErr),
		Duration:  time.Since(start),
	})

	if genErr != nil {
		slog.Error("generation failed",
			"kind", string(domain.Kind(genErr)),
			"modality", string(modality),
			"chat_id", chatID,
			"error", genErr,
		)
		if _, err := h.tg.SendText(ctx, chatID, failureNotice); err != nil {
			slog.Error("send failure notice", "error", err)
		}
		return
	}

	caption := fmt.Sprintf("Prompt: %s", prompt)
	var sendErr error
	if modality == domain.ModalityImage {
		sendErr = h.tg.SendPhoto(ctx, chatID, mediaURL, caption)
	} else {
		sendErr = h.tg.SendVideo(ctx, chatID, mediaURL, caption)
	}
	if sendErr != nil {
		slog.Error("send generated media", "modality", string(modality), "error", sendErr)
	}
}

func (h *Handler) record(ctx context.Context, rec domain.GenerationRecord) {
	if h.history == nil {
		return
	}
	if err := h.history.Record(ctx, rec); err != nil {
		slog.Error("record generation", "error", err)
	}
}
