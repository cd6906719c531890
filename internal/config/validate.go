package config

import (
	"net/url"

	"examctl/internal/validate"
)

// Validate checks field constraints and the server URL scheme.
func Validate(cfg *Config) error {
	var collector validate.Collector
	collector.Merge(validate.Struct(cfg))
	if u, err := url.Parse(cfg.Server.URL); err == nil && u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		collector.Add("server.url", "scheme must be http or https")
	}
	return collector.Result()
}
