package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yshzap/aigenbot/internal/config"
	"github.com/yshzap/aigenbot/internal/domain"
)

// Selection tokens encode (modality, prompt) as "modality|prompt" in the
// button callback data. Decoding splits at the FIRST delimiter only, so a
// prompt containing '|' survives the round trip.
//
// Telegram caps callback data at 64 bytes. Prompts that do not fit inline
// are parked in the pending store and referenced as "modality|~<id>"; a
// prompt that itself starts with '~' always takes the reference form so the
// marker stays unambiguous.
const (
	tokenDelimiter = "|"
	pendingMarker  = "~"
)

var errBadToken = errors.New("malformed selection token")

func encodeToken(m domain.Modality, prompt string) string {
	return string(m) + tokenDelimiter + prompt
}

func decodeToken(data string) (domain.Modality, string, error) {
	parts := strings.SplitN(data, tokenDelimiter, 2)
	if len(parts) != 2 {
		return "", "", errBadToken
	}
	m, err := domain.ParseModality(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", errBadToken, err)
	}
	return m, parts[1], nil
}

// tokenPrompt returns the prompt form to embed in callback data: the prompt
// itself when both buttons' tokens fit the Telegram limit, otherwise a
// pending-store reference shared by both buttons.
func (h *Handler) tokenPrompt(prompt string) string {
	longest := len(encodeToken(domain.ModalityVideo, prompt))
	if longest <= config.MaxCallbackDataLen && !strings.HasPrefix(prompt, pendingMarker) {
		return prompt
	}
	return pendingMarker + h.pending.Put(prompt)
}

// resolvePrompt maps a decoded token prompt back to the user's text,
// following a pending-store reference when present.
func (h *Handler) resolvePrompt(tokenPrompt string) (string, bool) {
	if !strings.HasPrefix(tokenPrompt, pendingMarker) {
		return tokenPrompt, true
	}
	return h.pending.Get(strings.TrimPrefix(tokenPrompt, pendingMarker))
}
