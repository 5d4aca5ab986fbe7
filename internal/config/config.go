// Package config assembles runtime settings for the campus marketplace CLI.
// Sources are applied in order of increasing precedence:
// defaults → environment (.env supported) → JSON file (-c/-config) → flags.
package config

import "time"

type Config struct {
	// BaseURL is the backend's base URL; every endpoint is relative to it.
	BaseURL string

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration

	// ImageTimeout bounds each per-item image lookup inside a listing
	// fetch, so one slow image endpoint cannot delay the whole list.
	ImageTimeout time.Duration

	// SessionDSN locates the local SQLite database holding the session.
	SessionDSN string

	// GeminiAPIKey enables the description polisher; empty disables it.
	GeminiAPIKey string

	// GoodsPageSize is the number of records requested per listing fetch.
	GoodsPageSize int
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.ImageTimeout = 5 * time.Second
	c.SessionDSN = "campusmarket.db"
	c.GoodsPageSize = 20
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
