package config

import "strings"

// Overrides are command-line values that win over every other source.
type Overrides struct {
	ServerURL string
	UIMode    string
	ExportDir string
	LogLevel  string
	LogFormat string
	NoColor   bool
}

func (o Overrides) apply(cfg *Config) {
	if o.ServerURL != "" {
		cfg.Server.URL = o.ServerURL
	}
	if o.UIMode != "" {
		cfg.UI.Mode = o.UIMode
	}
	if o.ExportDir != "" {
		cfg.Exam.ExportDir = o.ExportDir
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
	if o.NoColor {
		cfg.UI.NoColor = true
	}
}

// Normalize trims and lower-cases enumerated values.
func Normalize(cfg *Config) {
	cfg.Server.URL = strings.TrimSpace(cfg.Server.URL)
	cfg.Server.BasePath = strings.TrimSpace(cfg.Server.BasePath)
	if cfg.Server.BasePath != "" && !strings.HasPrefix(cfg.Server.BasePath, "/") {
		cfg.Server.BasePath = "/" + cfg.Server.BasePath
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Exam.ExportDir = strings.TrimSpace(cfg.Exam.ExportDir)
}
