// Package platform holds the OS-facing pieces: where settings live and
// the guard that keeps a single copy of the app in the menu bar.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ConfigDir returns override when set, otherwise the OS configuration
// directory. When the OS cannot report one, a directory under the user's
// home is used instead.
func ConfigDir(override string) (string, error) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return filepath.Clean(trimmed), nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil || homeDir == "" {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(runtime.GOOS, homeDir), nil
}

func fallbackConfigDir(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming")
	default:
		return filepath.Join(homeDir, ".config")
	}
}
