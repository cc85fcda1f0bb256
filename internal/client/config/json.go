package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ndemidova/chattr/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The request
// timeout is specified in seconds so config files stay plain numbers.
type JsonConfig struct {
	APIBaseURL            string `json:"api_base_url"`
	DatabasePath          string `json:"database_path"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	MaxCachedMessages     int    `json:"max_cached_messages"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags();
// when no path is given, nothing is loaded. Read or unmarshal errors panic,
// matching the rest of the config bootstrap: a broken config file should stop
// the app before it opens the database.
//
// Only fields present in the JSON override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
	if jc.MaxCachedMessages > 0 {
		cfg.MaxCachedMessages = jc.MaxCachedMessages
	}
}
