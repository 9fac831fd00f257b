package config

import "time"

const (
	// Telegram caps callback_data at 64 bytes; longer selection tokens go
	// through the pending-prompt store instead.
	MaxCallbackDataLen = 64

	// Pending prompt retention
	PendingTTL   = 1 * time.Hour
	PendingSweep = 5 * time.Minute
)
