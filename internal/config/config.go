package config

import (
	"strings"
	"time"
)

// Config is the resolved client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Exam   ExamConfig   `yaml:"exam"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig locates the exam API.
type ServerConfig struct {
	URL            string        `yaml:"url" validate:"required,url"`
	BasePath       string        `yaml:"base_path" validate:"required,startswith=/"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
}

// ExamConfig tunes the lifecycle controller.
type ExamConfig struct {
	PollInterval     time.Duration `yaml:"poll_interval" validate:"gt=0"`
	TickInterval     time.Duration `yaml:"tick_interval" validate:"gt=0"`
	DefaultQuestions int           `yaml:"default_questions" validate:"min=1,max=1000"`
	ExportDir        string        `yaml:"export_dir" validate:"required"`
}

// UIConfig selects the terminal front end.
type UIConfig struct {
	Mode    string `yaml:"mode" validate:"oneof=auto live plain"`
	NoColor bool   `yaml:"no_color"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `yaml:"format" validate:"oneof=pretty json"`
	File   string `yaml:"file"`
}

// Defaults.
const (
	DefaultServerURL      = "http://localhost:8080"
	DefaultBasePath       = "/api/v1"
	DefaultRequestTimeout = 30 * time.Second
	DefaultPollInterval   = time.Second
	DefaultTickInterval   = time.Second
	DefaultQuestions      = 50
	DefaultUIMode         = "auto"
	DefaultExportDir      = "."
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "pretty"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			URL:            DefaultServerURL,
			BasePath:       DefaultBasePath,
			RequestTimeout: DefaultRequestTimeout,
		},
		Exam: ExamConfig{
			PollInterval:     DefaultPollInterval,
			TickInterval:     DefaultTickInterval,
			DefaultQuestions: DefaultQuestions,
			ExportDir:        DefaultExportDir,
		},
		UI:  UIConfig{Mode: DefaultUIMode},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// APIURL joins the server URL and API base path.
func (c Config) APIURL() string {
	return strings.TrimRight(c.Server.URL, "/") + "/" + strings.TrimLeft(c.Server.BasePath, "/")
}
