package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds every blocking call made by a test.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled when the test ends or after timeout,
// whichever comes first. A zero timeout means DefaultTimeout. The deadline
// is pulled in under the test binary's own -timeout when that is tighter.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if left := time.Until(deadline) - time.Second; left > 0 {
			timeout = min(timeout, left)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// RunWithTimeout fails the test when fn blocks past timeout, which is how a
// stuck read loop or a controller that never quits shows up.
func RunWithTimeout(t testing.TB, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := Context(t, timeout)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		fn()
	}()
	select {
	case <-finished:
	case <-ctx.Done():
		t.Fatalf("blocked for more than %s", timeout)
	}
}
