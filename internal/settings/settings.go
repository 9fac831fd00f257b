// Package settings owns the persisted settings document: the bot token,
// owner ID and display texts, stored as a flat JSON object. The on-disk key
// names are a fixed contract shared with earlier deployments of this bot.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document keys.
const (
	keyBotToken    = "BOT_TOKEN"
	keyOwnerID     = "OWNER_ID"
	keyWelcome     = "START_MSG"
	keyImageButton = "IMG_BUTTON"
	keyVideoButton = "VID_BUTTON"
)

// Defaults for keys absent from the document.
const (
	DefaultWelcome     = "🤖 Welcome! Send me a prompt."
	DefaultImageButton = "Image 🖼️"
	DefaultVideoButton = "Video 🎬"
)

// Settings is the in-memory form of the settings document. Values are
// treated as immutable snapshots once published through a Store.
type Settings struct {
	BotToken    string
	OwnerID     string
	Welcome     string
	ImageButton string
	VideoButton string
}

// Defaults returns the settings used when no document exists yet.
func Defaults() Settings {
	return Settings{
		Welcome:     DefaultWelcome,
		ImageButton: DefaultImageButton,
		VideoButton: DefaultVideoButton,
	}
}

// HasCredentials reports whether the transport session may start.
func (s Settings) HasCredentials() bool {
	return s.BotToken != "" && s.OwnerID != ""
}

// Load reads the document at path. A missing file yields Defaults. Keys
// absent from the document get their default; keys present in the document
// are taken verbatim, even when empty.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var doc map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	get := func(key, def string) string {
		if v, ok := doc[key]; ok {
			return v
		}
		return def
	}

	return Settings{
		BotToken:    get(keyBotToken, ""),
		OwnerID:     get(keyOwnerID, ""),
		Welcome:     get(keyWelcome, DefaultWelcome),
		ImageButton: get(keyImageButton, DefaultImageButton),
		VideoButton: get(keyVideoButton, DefaultVideoButton),
	}, nil
}

// Save writes the full document, replacing it atomically via a temp file in
// the same directory.
func Save(path string, s Settings) error {
	doc := map[string]string{
		keyBotToken:    s.BotToken,
		keyOwnerID:     s.OwnerID,
		keyWelcome:     s.Welcome,
		keyImageButton: s.ImageButton,
		keyVideoButton: s.VideoButton,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
