package config

import (
	"encoding/json"
	"os"

	"github.com/jlin2026/campusmarket/internal/flagx"
	"github.com/jlin2026/campusmarket/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given as strings like "10s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ImageTimeout   timex.Duration `json:"image_timeout"`
	SessionDSN     string         `json:"session_dsn"`
	GeminiAPIKey   string         `json:"gemini_api_key"`
	GoodsPageSize  int            `json:"goods_page_size"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Absent file path means no JSON layer. Read or parse errors panic, matching
// the fail-fast behavior of the rest of the config chain.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ImageTimeout.Duration != 0 {
		cfg.ImageTimeout = jc.ImageTimeout.Duration
	}
	if jc.SessionDSN != "" {
		cfg.SessionDSN = jc.SessionDSN
	}
	if jc.GeminiAPIKey != "" {
		cfg.GeminiAPIKey = jc.GeminiAPIKey
	}
	if jc.GoodsPageSize != 0 {
		cfg.GoodsPageSize = jc.GoodsPageSize
	}
}
