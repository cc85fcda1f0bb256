// Package config loads runtime settings for the chattr client.
//
// Settings are resolved in layers: built-in defaults, then an optional JSON
// file (-c/-config), then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the chattr client.
//
// Fields:
//   - APIBaseURL: base URL of the remote chat API, trailing slash included.
//     Deployments vary (staging, self-hosted), so this is never hardcoded.
//   - DatabasePath: path of the local sqlite database file.
//   - RequestTimeout: per-request deadline for remote calls. A hung request
//     must not hold a loading indicator forever.
//   - MaxCachedMessages: per-thread retention limit; 0 keeps every message.
type Config struct {
	APIBaseURL        string
	DatabasePath      string
	RequestTimeout    time.Duration
	MaxCachedMessages int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/"
	c.DatabasePath = "chattr.db"
	c.RequestTimeout = 15 * time.Second
	c.MaxCachedMessages = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
