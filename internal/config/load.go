package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Path is an explicit config file; when empty the file is searched upward
	// from StartDir and is optional.
	Path     string
	StartDir string
	// EnvFiles are dotenv files read when present. Defaults to ".env".
	EnvFiles []string
	// Lookup reads environment variables. Defaults to os.LookupEnv.
	Lookup    func(string) (string, bool)
	Overrides Overrides
}

// Load resolves configuration from defaults, the YAML file, dotenv files,
// the environment and overrides, in increasing precedence, then validates it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		found, err := FindConfigPath(opts.StartDir)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, ErrConfigNotFound):
		default:
			return Config{}, err
		}
	}
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	dotenv, err := readDotenv(opts.EnvFiles)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, layered(lookup, dotenv)); err != nil {
		return Config{}, err
	}
	opts.Overrides.apply(&cfg)

	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func readDotenv(files []string) (map[string]string, error) {
	if files == nil {
		files = []string{".env"}
	}
	values := make(map[string]string)
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		parsed, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range parsed {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}
	return values, nil
}

// layered prefers the real environment over dotenv values.
func layered(lookup func(string) (string, bool), dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}
}
