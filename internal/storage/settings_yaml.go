package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// YAMLStore persists settings to a YAML file and writes through on every set.
type YAMLStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// SettingsPath returns the settings file location inside configDir.
func SettingsPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// OpenYAMLStore reads settings from path. A missing file yields an empty
// store. An unreadable or malformed file also yields a usable empty store
// together with the error, so callers can log it and fall back to defaults.
func OpenYAMLStore(path string) (*YAMLStore, error) {
	store := &YAMLStore{
		path:   path,
		values: make(map[string]any),
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return store, fmt.Errorf("read settings file: %w", err)
	}

	var fileData map[string]any
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return store, fmt.Errorf("parse settings yaml: %w", err)
	}
	for key, value := range fileData {
		store.values[key] = value
	}
	return store, nil
}

// Path returns the backing file path.
func (store *YAMLStore) Path() string {
	return store.path
}

func (store *YAMLStore) Int(key string) (int, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return intValue(store.values[key])
}

func (store *YAMLStore) SetInt(key string, value int) error {
	return store.set(key, value)
}

func (store *YAMLStore) String(key string) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key].(string)
	return value, ok
}

func (store *YAMLStore) SetString(key string, value string) error {
	return store.set(key, value)
}

func (store *YAMLStore) set(key string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return store.saveLocked()
}

func (store *YAMLStore) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.values)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
