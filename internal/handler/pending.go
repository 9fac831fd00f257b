package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingStore parks prompts too long for inline callback data. Entries are
// not removed on read: the user may still press the second button for the
// same prompt. Expiry is handled by the sweeper goroutine in main.
type pendingStore struct {
	mu      sync.Mutex
	entries map[string]pendingEntry
}

type pendingEntry struct {
	prompt  string
	created time.Time
}

func newPendingStore() *pendingStore {
	return &pendingStore{entries: make(map[string]pendingEntry)}
}

func (p *pendingStore) Put(prompt string) string {
	id := uuid.NewString()
	p.mu.Lock()
	p.entries[id] = pendingEntry{prompt: prompt, created: time.Now()}
	p.mu.Unlock()
	return id
}

func (p *pendingStore) Get(id string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[id]
	return e.prompt, ok
}

func (p *pendingStore) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	p.mu.Lock()
	defer p.mu.Unlock()
	removed := 0
	for id, e := range p.entries {
		if e.created.Before(cutoff) {
			delete(p.entries, id)
			removed++
		}
	}
	return removed
}

// SweepPending drops pending prompts older than maxAge and returns how many
// were removed. Called periodically from main.
func (h *Handler) SweepPending(maxAge time.Duration) int {
	return h.pending.Sweep(maxAge)
}
