package cli

import (
	"context"
	"strings"
	"testing"

	"examctl/internal/reportserver"
)

// TestServeCommandRejectsArgs verifies serve takes no positional arguments.
func TestServeCommandRejectsArgs(t *testing.T) {
	_, _, code := runCLI(t, "", "serve", "results.json")
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
}

// TestServeCommandRequiresExportDir verifies a missing directory fails fast.
func TestServeCommandRequiresExportDir(t *testing.T) {
	_, errOut, code := runCLI(t, "", "serve", "--export-dir", "/does/not/exist")
	if code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(errOut, "Export directory not found") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

// TestServeCommandPassesConfig ensures serve forwards parsed config to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	dir := t.TempDir()
	var gotConfig reportserver.Config
	origServe := serveReport
	serveReport = func(_ context.Context, cfg reportserver.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	out, errOut, code := runCLI(t, "", "serve", "--addr", "127.0.0.1:5050", "--export-dir", dir)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if gotConfig.ExportDir != dir {
		t.Fatalf("unexpected export dir: %s", gotConfig.ExportDir)
	}
	if !strings.Contains(out, "http://127.0.0.1:5050") {
		t.Fatalf("expected serving banner, got %q", out)
	}
}
