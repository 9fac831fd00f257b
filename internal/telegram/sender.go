package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender is the outbound surface the handlers need from the transport.
// Handler tests substitute a recording fake.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	SendChoice(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) error
	SendPhoto(ctx context.Context, chatID int64, mediaURL, caption string) error
	SendVideo(ctx context.Context, chatID int64, mediaURL, caption string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// BotSender implements Sender on top of a live bot instance.
type BotSender struct {
	b *bot.Bot
}

func NewBotSender(b *bot.Bot) *BotSender {
	return &BotSender{b: b}
}

// SendText sends a plain text message and returns its message ID so the
// caller can delete it later.
func (s *BotSender) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	msg, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return msg.ID, nil
}

func (s *BotSender) SendChoice(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		return fmt.Errorf("send choice: %w", err)
	}
	return nil
}

// SendPhoto posts a photo by remote URL; Telegram fetches it server side.
func (s *BotSender) SendPhoto(ctx context.Context, chatID int64, mediaURL, caption string) error {
	_, err := s.b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: mediaURL},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (s *BotSender) SendVideo(ctx context.Context, chatID int64, mediaURL, caption string) error {
	_, err := s.b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:  chatID,
		Video:   &models.InputFileString{Data: mediaURL},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

func (s *BotSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := s.b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops showing
// its loading spinner.
func (s *BotSender) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := s.b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
	if err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}
