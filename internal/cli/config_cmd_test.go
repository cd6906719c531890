package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".examctl", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestConfigCommandSuccess verifies the resolved config is printed.
func TestConfigCommandSuccess(t *testing.T) {
	path := writeConfigFile(t, `server:
  url: https://exams.example.com
exam:
  poll_interval: 2s
ui:
  mode: plain
`)
	out, errOut, code := runCLI(t, "", "config", "--config", path)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	for _, want := range []string{"Config OK", "# api: https://exams.example.com/api/v1", "poll_interval: 2s", "mode: plain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

// TestConfigCommandFlagsWin verifies command-line overrides.
func TestConfigCommandFlagsWin(t *testing.T) {
	path := writeConfigFile(t, "server:\n  url: https://exams.example.com\n")
	out, _, code := runCLI(t, "", "config", "--config", path, "--server", "http://localhost:9000")
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d", code)
	}
	if !strings.Contains(out, "# api: http://localhost:9000/api/v1") {
		t.Fatalf("expected overridden server:\n%s", out)
	}
}

// TestConfigCommandFailure verifies validation errors are reported.
func TestConfigCommandFailure(t *testing.T) {
	path := writeConfigFile(t, `server:
  url: ftp://exams.example.com
ui:
  mode: fancy
`)
	_, errOut, code := runCLI(t, "", "config", "--config", path)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	for _, want := range []string{"Validation failed", "server.url", "ui.mode"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("expected %q in stderr:\n%s", want, errOut)
		}
	}
}

// TestConfigCommandRejectsArgs verifies positional args are refused.
func TestConfigCommandRejectsArgs(t *testing.T) {
	_, errOut, code := runCLI(t, "", "config", "extra")
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(errOut, "unexpected arguments") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}
