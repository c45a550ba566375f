package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/warrantyguard/internal/flagx"
	"github.com/dmitrijs2005/warrantyguard/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations
// accept both "10s" strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddress     string         `json:"http_address"`
	Storage         string         `json:"storage"`
	DataDir         string         `json:"data_dir"`
	DatabaseDSN     string         `json:"database_dsn"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	LogLevel        string         `json:"log_level"`
	Env             string         `json:"env"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config, if any, and copies its
// non-empty values into config. It panics if the file cannot be read or
// contains invalid JSON.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.HTTPAddress, c.HTTPAddress)
	set(&config.Storage, c.Storage)
	set(&config.DataDir, c.DataDir)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.LogLevel, c.LogLevel)
	set(&config.Env, c.Env)
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
