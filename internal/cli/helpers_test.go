package cli

import (
	"bytes"
	"strings"
	"testing"

	"examctl/internal/apiclient"
	"examctl/internal/config"
)

// runCLI invokes the CLI with the given stdin and returns stdout, stderr, and exit code.
func runCLI(t *testing.T, input string, args ...string) (string, string, int) {
	t.Helper()
	orig := stdin
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = orig })
	var out, err bytes.Buffer
	exitCode := Run(args, &out, &err)
	return out.String(), err.String(), exitCode
}

// forcePlain makes every stream look non-interactive.
func forcePlain(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(any) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

// newTestClient returns an API client for a fake server base URL.
func newTestClient(baseURL string) *apiclient.Client {
	return apiclient.New(baseURL + config.DefaultBasePath)
}
