package config

import "time"

// Config holds runtime settings for the WarrantyGuard client.
//
// ServerURL and UserID are only initial values: once a backup or restore has
// succeeded, the settings persisted in the local database take precedence.
type Config struct {
	ServerURL      string
	UserID         string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.UserID = ""
	c.DatabasePath = "warrantyguard.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the JSON file (if -c/-config is given),
// then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
