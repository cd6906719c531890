package config

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Config file location, relative to the directory examctl is run from or
// any of its parents.
const (
	ConfigDirName  = ".examctl"
	ConfigFileName = "config.yml"
)

// ErrConfigNotFound is returned when no config file exists up to the filesystem root.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigPath returns the config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// FindConfigPath returns the nearest config file at or above startDir. An
// empty startDir means the working directory.
func FindConfigPath(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	for dir := range ancestors(abs) {
		candidate := ConfigPath(dir)
		info, err := os.Stat(candidate)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		case info.IsDir():
			return "", fmt.Errorf("config path %s is a directory", candidate)
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: no %s at or above %s", ErrConfigNotFound, filepath.Join(ConfigDirName, ConfigFileName), abs)
}

// ancestors yields dir and each parent up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}
