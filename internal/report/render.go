package report

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f components.templ

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"examctl/internal/result"
)

// RenderReportHTML renders the report page into a string.
func RenderReportHTML(ctx context.Context, doc result.Document, filter result.Filter) (string, error) {
	var builder strings.Builder
	if err := ResultPage(doc, filter).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// HTMLFileName returns the HTML export name for an exam id.
func HTMLFileName(examID string) string {
	return fmt.Sprintf("exam-result-%s.html", examID)
}

// WriteHTML renders the report to path, or to dir/HTMLFileName when path is a directory.
func WriteHTML(ctx context.Context, path string, doc result.Document, filter result.Filter) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, HTMLFileName(doc.ExamID))
	}
	html, err := RenderReportHTML(ctx, doc, filter)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
