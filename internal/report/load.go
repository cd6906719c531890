package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"examctl/internal/result"
)

// LoadResults reads a JSON result export.
func LoadResults(path string) (result.Document, error) {
	return result.ReadFile(path)
}

// ResolveExport finds an export by file path or by exam id inside exportDir.
// A bare directory resolves to its newest export.
func ResolveExport(exportDir, ref string) (result.Document, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return result.Document{}, "", fmt.Errorf("result ref is required")
	}
	if info, err := os.Stat(ref); err == nil {
		if !info.IsDir() {
			doc, err := LoadResults(ref)
			return doc, ref, err
		}
		exportDir = ref
		path, err := findLatestExport(exportDir)
		if err != nil {
			return result.Document{}, "", err
		}
		doc, err := LoadResults(path)
		return doc, path, err
	}
	path := filepath.Join(exportDir, result.FileName(ref))
	if _, err := os.Stat(path); err != nil {
		return result.Document{}, "", fmt.Errorf("no export for exam %s in %s", ref, exportDir)
	}
	doc, err := LoadResults(path)
	return doc, path, err
}

// Export is a JSON result export found on disk.
type Export struct {
	Path     string
	Document result.Document
}

// ListExports loads every export in dir, newest first. Files that do not
// parse are skipped.
func ListExports(dir string) ([]Export, error) {
	matches, err := exportPaths(dir)
	if err != nil {
		return nil, err
	}
	exports := make([]Export, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		doc, err := LoadResults(matches[i])
		if err != nil {
			continue
		}
		exports = append(exports, Export{Path: matches[i], Document: doc})
	}
	return exports, nil
}

func findLatestExport(dir string) (string, error) {
	matches, err := exportPaths(dir)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no exports found in %s", dir)
	}
	return matches[len(matches)-1], nil
}

// exportPaths returns the export files in dir, oldest first.
func exportPaths(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "exam-result-*.json"))
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]) < modTime(matches[j])
	})
	return matches, nil
}

func modTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}
