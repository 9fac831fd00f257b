package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "", s.BotToken)
	assert.Equal(t, "", s.OwnerID)
	assert.Equal(t, DefaultWelcome, s.Welcome)
	assert.Equal(t, DefaultImageButton, s.ImageButton)
	assert.Equal(t, DefaultVideoButton, s.VideoButton)
	assert.False(t, s.HasCredentials())
}

func TestLoad_MissingKeysGetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"BOT_TOKEN":"123:abc","OWNER_ID":"42"}`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", s.BotToken)
	assert.Equal(t, "42", s.OwnerID)
	assert.Equal(t, DefaultWelcome, s.Welcome)
	assert.Equal(t, DefaultImageButton, s.ImageButton)
	assert.Equal(t, DefaultVideoButton, s.VideoButton)
	assert.True(t, s.HasCredentials())
}

func TestLoad_PresentKeysUntouched(t *testing.T) {
	// A key present with an empty value must stay empty, not get a default.
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"START_MSG":"","IMG_BUTTON":"Pic"}`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "", s.Welcome)
	assert.Equal(t, "Pic", s.ImageButton)
	assert.Equal(t, DefaultVideoButton, s.VideoButton)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in := Settings{
		BotToken:    "123:abc",
		OwnerID:     "42",
		Welcome:     "hello",
		ImageButton: "Pic",
		VideoButton: "Clip",
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// The on-disk document carries the fixed key names.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]string
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "123:abc", doc["BOT_TOKEN"])
	assert.Equal(t, "42", doc["OWNER_ID"])
	assert.Equal(t, "hello", doc["START_MSG"])
	assert.Equal(t, "Pic", doc["IMG_BUTTON"])
	assert.Equal(t, "Clip", doc["VID_BUTTON"])
}

func TestStore_ReplacePublishesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	first := Defaults()
	first.BotToken = "123:abc"
	first.OwnerID = "42"
	st := NewStore(path, first)

	assert.Equal(t, first, st.Current())

	updated := first
	updated.Welcome = "new welcome"
	require.NoError(t, st.Replace(updated))

	assert.Equal(t, "new welcome", st.Current().Welcome)

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "new welcome", onDisk.Welcome)
}
