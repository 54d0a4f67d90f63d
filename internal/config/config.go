package config

import (
	"os"
	"strings"
	"sync"
)

// AppName is used for the settings directory and the instance lock.
const AppName = "Pomobar"

// AppID is the Fyne application identifier.
const AppID = "com.pomobar.app"

// Config holds process configuration read from the environment.
type Config struct {
	// ConfigDir overrides the OS configuration directory when set.
	ConfigDir string

	LogLevel string
	Env      string // "development" or "production"
	Lang     string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the process configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		cfg = Load()
	})
	return cfg
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		ConfigDir: strings.TrimSpace(os.Getenv("POMOBAR_CONFIG_DIR")),
		LogLevel:  getEnv("POMOBAR_LOG_LEVEL", "info"),
		Env:       getEnv("POMOBAR_ENV", "production"),
		Lang:      strings.TrimSpace(os.Getenv("POMOBAR_LANG")),
	}
}

// IsDevelopment reports whether development output is enabled.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
