package settings

import "sync/atomic"

// Store publishes immutable settings snapshots to concurrent readers.
// Handlers take one snapshot per event; the admin console replaces the whole
// value, so an edit never interleaves with in-flight handling.
type Store struct {
	path string
	cur  atomic.Pointer[Settings]
}

// NewStore creates a store over the document at path with s as the current
// snapshot.
func NewStore(path string, s Settings) *Store {
	st := &Store{path: path}
	st.cur.Store(&s)
	return st
}

// Path returns the location of the backing document.
func (st *Store) Path() string {
	return st.path
}

// Current returns the latest published snapshot.
func (st *Store) Current() Settings {
	return *st.cur.Load()
}

// Replace persists s and, on success, publishes it as the new snapshot.
func (st *Store) Replace(s Settings) error {
	if err := Save(st.path, s); err != nil {
		return err
	}
	st.cur.Store(&s)
	return nil
}
