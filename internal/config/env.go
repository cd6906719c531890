package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvServerURL        = "EXAM_SERVER_URL"
	EnvBasePath         = "EXAM_API_BASE_PATH"
	EnvRequestTimeout   = "EXAM_REQUEST_TIMEOUT"
	EnvPollInterval     = "EXAM_POLL_INTERVAL"
	EnvTickInterval     = "EXAM_TICK_INTERVAL"
	EnvDefaultQuestions = "EXAM_DEFAULT_QUESTIONS"
	EnvUIMode           = "EXAM_UI_MODE"
	EnvExportDir        = "EXAM_EXPORT_DIR"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvLogFile          = "LOG_FILE"
	EnvNoColor          = "NO_COLOR"
)

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	setString(lookup, EnvServerURL, &cfg.Server.URL)
	setString(lookup, EnvBasePath, &cfg.Server.BasePath)
	setString(lookup, EnvUIMode, &cfg.UI.Mode)
	setString(lookup, EnvExportDir, &cfg.Exam.ExportDir)
	setString(lookup, EnvLogLevel, &cfg.Log.Level)
	setString(lookup, EnvLogFormat, &cfg.Log.Format)
	setString(lookup, EnvLogFile, &cfg.Log.File)
	// Any non-empty NO_COLOR disables colour.
	if _, ok := lookup(EnvNoColor); ok {
		cfg.UI.NoColor = true
	}
	for key, dst := range map[string]*time.Duration{
		EnvRequestTimeout: &cfg.Server.RequestTimeout,
		EnvPollInterval:   &cfg.Exam.PollInterval,
		EnvTickInterval:   &cfg.Exam.TickInterval,
	} {
		if err := setDuration(lookup, key, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvDefaultQuestions); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvDefaultQuestions, v)
		}
		cfg.Exam.DefaultQuestions = n
	}
	return nil
}

func setString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

// setDuration accepts Go durations ("1500ms") or whole seconds ("2").
func setDuration(lookup func(string) (string, bool), key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %q is not a duration", key, v)
	}
	*dst = d
	return nil
}
