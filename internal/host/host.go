// Package host holds what the surrounding application hands to a viewer: a
// hint store that outlives the viewer and a few presentation extras.
package host

import "sync"

// HintStore is a key-value store for small preferences that should survive
// closing and reopening the same comparison.
type HintStore interface {
	Get(key string) (string, bool)
	Put(key, value string)
}

// MemoryStore is a HintStore kept in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Context is the host context of one viewer.
type Context struct {
	// Owner names the window or program the viewer lives in. Presenters use it
	// as the parent of the windows they open.
	Owner string
	// Hints persists per-comparison preferences. A nil store disables them.
	Hints HintStore
	// Notifications are host-level banners shown above every comparison.
	Notifications []string
}

// NewContext creates a Context backed by an in-memory hint store.
func NewContext(owner string) *Context {
	return &Context{Owner: owner, Hints: NewMemoryStore()}
}
