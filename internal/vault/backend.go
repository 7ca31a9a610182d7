package vault

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by a Backend when no value exists for a key
var ErrNotFound = errors.New("vault: item not found")

// Backend stores opaque byte values addressed by (service, account).
// Set must overwrite an existing value; Delete of a missing key returns
// ErrNotFound or nil.
type Backend interface {
	Name() string
	Get(service, account string) ([]byte, error)
	Set(service, account string, data []byte) error
	Delete(service, account string) error
}

// MemoryBackend keeps values in process memory. Used in tests and as the
// last resort when no persistent facility is usable.
type MemoryBackend struct {
	items map[string][]byte
	mu    sync.Mutex
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string][]byte)}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Get(service, account string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[itemKey(service, account)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) Set(service, account string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[itemKey(service, account)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Delete(service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, itemKey(service, account))
	return nil
}

func itemKey(service, account string) string {
	return service + "\x00" + account
}
