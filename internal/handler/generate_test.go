package handler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yshzap/aigenbot/internal/domain"
	"github.com/yshzap/aigenbot/internal/settings"
)

type sentMedia struct {
	chatID  int64
	url     string
	caption string
}

type sentChoice struct {
	chatID int64
	text   string
	kb     *models.InlineKeyboardMarkup
}

// fakeSender records every outbound operation instead of hitting Telegram.
type fakeSender struct {
	texts    []string
	choices  []sentChoice
	photos   []sentMedia
	videos   []sentMedia
	deleted  []int
	answered []string
	nextID   int
}

func (f *fakeSender) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	f.texts = append(f.texts, text)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeSender) SendChoice(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) error {
	f.choices = append(f.choices, sentChoice{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, chatID int64, url, caption string) error {
	f.photos = append(f.photos, sentMedia{chatID: chatID, url: url, caption: caption})
	return nil
}

func (f *fakeSender) SendVideo(ctx context.Context, chatID int64, url, caption string) error {
	f.videos = append(f.videos, sentMedia{chatID: chatID, url: url, caption: caption})
	return nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSender) AnswerCallback(ctx context.Context, callbackID string) error {
	f.answered = append(f.answered, callbackID)
	return nil
}

type genCall struct {
	prompt   string
	modality domain.Modality
}

type fakeGenerator struct {
	url   string
	err   error
	calls []genCall
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, m domain.Modality) (string, error) {
	f.calls = append(f.calls, genCall{prompt: prompt, modality: m})
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeHistory struct {
	records []domain.GenerationRecord
	stats   domain.GenerationStats
}

func (f *fakeHistory) Record(ctx context.Context, rec domain.GenerationRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) Stats(ctx context.Context) (domain.GenerationStats, error) {
	return f.stats, nil
}

func newTestHandler(t *testing.T, gen Generator, hist History) *Handler {
	t.Helper()
	s := settings.Defaults()
	s.BotToken = "123:abc"
	s.OwnerID = "42"
	store := settings.NewStore(filepath.Join(t.TempDir(), "config.json"), s)
	return New(Deps{
		Settings:  store,
		Generator: gen,
		History:   hist,
		Sender:    &fakeSender{},
	})
}

func sender(h *Handler) *fakeSender {
	return h.tg.(*fakeSender)
}

func textUpdate(text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: text,
			Chat: models.Chat{ID: 7},
			From: &models.User{ID: 42},
		},
	}
}

func selectionUpdate(data string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb1",
			From: models.User{ID: 42},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 10, Chat: models.Chat{ID: 7}},
			},
		},
	}
}

func TestHandleText_SendsChoiceKeyboard(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{}, &fakeHistory{})
	ctx := context.Background()

	h.HandleText(ctx, nil, textUpdate("  a cat  "))

	f := sender(h)
	require.Len(t, f.choices, 1)
	assert.Equal(t, int64(7), f.choices[0].chatID)
	assert.Equal(t, chooseText, f.choices[0].text)

	rows := f.choices[0].kb.InlineKeyboard
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2)
	assert.Equal(t, settings.DefaultImageButton, rows[0][0].Text)
	assert.Equal(t, settings.DefaultVideoButton, rows[0][1].Text)
	assert.Equal(t, "image|a cat", rows[0][0].CallbackData)
	assert.Equal(t, "video|a cat", rows[0][1].CallbackData)
}

func TestHandleText_IgnoresEmptyAndCommands(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{}, &fakeHistory{})
	ctx := context.Background()

	h.HandleText(ctx, nil, textUpdate("   "))
	h.HandleText(ctx, nil, textUpdate("/start"))

	assert.Empty(t, sender(h).choices)
}

func TestSelection_ImageSuccess(t *testing.T) {
	gen := &fakeGenerator{url: "https://x/y.png"}
	hist := &fakeHistory{}
	h := newTestHandler(t, gen, hist)
	ctx := context.Background()

	h.handleSelection(ctx, nil, selectionUpdate("image|a cat"))

	f := sender(h)
	assert.Equal(t, []string{"cb1"}, f.answered)
	assert.Equal(t, []string{generatingNotice}, f.texts)
	require.Len(t, f.photos, 1)
	assert.Equal(t, "https://x/y.png", f.photos[0].url)
	assert.Equal(t, "Prompt: a cat", f.photos[0].caption)
	assert.Empty(t, f.videos)
	assert.Len(t, f.deleted, 1)

	require.Len(t, gen.calls, 1)
	assert.Equal(t, genCall{prompt: "a cat", modality: domain.ModalityImage}, gen.calls[0])

	require.Len(t, hist.records, 1)
	assert.True(t, hist.records[0].OK)
	assert.Equal(t, domain.KindNone, hist.records[0].ErrorKind)
}

func TestSelection_VideoSuccess(t *testing.T) {
	gen := &fakeGenerator{url: "https://x/y.mp4"}
	h := newTestHandler(t, gen, &fakeHistory{})

	h.handleSelection(context.Background(), nil, selectionUpdate("video|a dog"))

	f := sender(h)
	require.Len(t, f.videos, 1)
	assert.Equal(t, "https://x/y.mp4", f.videos[0].url)
	assert.Equal(t, "Prompt: a dog", f.videos[0].caption)
	assert.Empty(t, f.photos)
	assert.Len(t, f.deleted, 1)
}

func TestSelection_APIRejected(t *testing.T) {
	gen := &fakeGenerator{err: domain.ErrAPIRejected}
	hist := &fakeHistory{}
	h := newTestHandler(t, gen, hist)

	h.handleSelection(context.Background(), nil, selectionUpdate("image|a cat"))

	f := sender(h)
	// Transient notice, then exactly one generic failure reply.
	assert.Equal(t, []string{generatingNotice, failureNotice}, f.texts)
	assert.Empty(t, f.photos)
	assert.Empty(t, f.videos)
	assert.Len(t, f.deleted, 1)

	require.Len(t, hist.records, 1)
	assert.False(t, hist.records[0].OK)
	assert.Equal(t, domain.KindAPIRejected, hist.records[0].ErrorKind)
}

func TestSelection_NetworkFailureStillCleansUp(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
	hist := &fakeHistory{}
	h := newTestHandler(t, gen, hist)

	h.handleSelection(context.Background(), nil, selectionUpdate("video|a dog"))

	f := sender(h)
	assert.Equal(t, []string{generatingNotice, failureNotice}, f.texts)
	// The raw error text never reaches chat.
	for _, text := range f.texts {
		assert.NotContains(t, text, "connection refused")
	}
	assert.Len(t, f.deleted, 1)

	require.Len(t, hist.records, 1)
	assert.Equal(t, domain.KindNetworkFailure, hist.records[0].ErrorKind)
}

func TestSelection_PromptWithDelimiter(t *testing.T) {
	gen := &fakeGenerator{url: "https://x/y.png"}
	h := newTestHandler(t, gen, &fakeHistory{})

	h.handleSelection(context.Background(), nil, selectionUpdate("image|red|blue"))

	require.Len(t, gen.calls, 1)
	assert.Equal(t, "red|blue", gen.calls[0].prompt)
}

func TestSelection_PendingReferenceRoundTrip(t *testing.T) {
	gen := &fakeGenerator{url: "https://x/y.png"}
	h := newTestHandler(t, gen, &fakeHistory{})
	ctx := context.Background()

	long := "an extremely detailed prompt that cannot possibly fit inside telegram callback data limits"
	h.HandleText(ctx, nil, textUpdate(long))

	f := sender(h)
	require.Len(t, f.choices, 1)
	data := f.choices[0].kb.InlineKeyboard[0][0].CallbackData

	h.handleSelection(ctx, nil, selectionUpdate(data))

	require.Len(t, gen.calls, 1)
	assert.Equal(t, long, gen.calls[0].prompt)
	require.Len(t, f.photos, 1)
	assert.Equal(t, "Prompt: "+long, f.photos[0].caption)
}

func TestSelection_ExpiredReference(t *testing.T) {
	gen := &fakeGenerator{url: "https://x/y.png"}
	h := newTestHandler(t, gen, &fakeHistory{})

	h.handleSelection(context.Background(), nil, selectionUpdate("image|~deadbeef"))

	f := sender(h)
	assert.Equal(t, []string{expiredNotice}, f.texts)
	assert.Empty(t, f.deleted)
	assert.Empty(t, gen.calls)
}

func TestStats_OwnerOnly(t *testing.T) {
	hist := &fakeHistory{stats: domain.GenerationStats{Total: 3, Succeeded: 2, Images: 2, Videos: 1}}
	h := newTestHandler(t, &fakeGenerator{}, hist)
	ctx := context.Background()

	// Non-owner is silently ignored.
	other := textUpdate("/stats")
	other.Message.From.ID = 99
	h.handleStats(ctx, nil, other)
	assert.Empty(t, sender(h).texts)

	h.handleStats(ctx, nil, textUpdate("/stats"))
	f := sender(h)
	require.Len(t, f.texts, 1)
	assert.Contains(t, f.texts[0], "Total: 3")
	assert.Contains(t, f.texts[0], "Succeeded: 2")
}
