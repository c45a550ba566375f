package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/warrantyguard/internal/flagx"
	"github.com/dmitrijs2005/warrantyguard/internal/timex"
)

// JsonConfig is the on-disk shape of the client config file.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	UserID         string         `json:"user_id"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the file named by
// -c/-config. It panics when the file cannot be read or parsed.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.UserID != "" {
		cfg.UserID = jc.UserID
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
