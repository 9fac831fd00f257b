package domain

import (
	"fmt"
	"time"
)

// Modality is the requested output kind. The values double as the `type`
// query parameter of the generation API, so they must stay lowercase.
type Modality string

const (
	ModalityImage Modality = "image"
	ModalityVideo Modality = "video"
)

// ParseModality validates a modality string coming from a callback token.
func ParseModality(s string) (Modality, error) {
	switch Modality(s) {
	case ModalityImage, ModalityVideo:
		return Modality(s), nil
	}
	return "", fmt.Errorf("unknown modality %q", s)
}

// GenerationRecord is one finished generation attempt as stored in history.
type GenerationRecord struct {
	ID        string
	ChatID    int64
	Modality  Modality
	Prompt    string
	OK        bool
	MediaURL  string
	ErrorKind ErrorKind
	Duration  time.Duration
}

// GenerationStats are the aggregate counters shown to the owner.
type GenerationStats struct {
	Total     int64
	Succeeded int64
	Images    int64
	Videos    int64
}
