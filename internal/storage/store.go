package storage

import "sync"

// Store is a typed key-value store for persisted settings.
type Store interface {
	Int(key string) (int, bool)
	SetInt(key string, value int) error
	String(key string) (string, bool)
	SetString(key string, value string) error
}

// MemoryStore keeps settings in memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

func (store *MemoryStore) Int(key string) (int, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return intValue(store.values[key])
}

func (store *MemoryStore) SetInt(key string, value int) error {
	store.set(key, value)
	return nil
}

func (store *MemoryStore) String(key string) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key].(string)
	return value, ok
}

func (store *MemoryStore) SetString(key string, value string) error {
	store.set(key, value)
	return nil
}

func (store *MemoryStore) set(key string, value any) {
	store.mu.Lock()
	store.values[key] = value
	store.mu.Unlock()
}

func intValue(raw any) (int, bool) {
	switch value := raw.(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case uint64:
		return int(value), true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}
