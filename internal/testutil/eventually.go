package testutil

import (
	"testing"
	"time"
)

// PollEvery is how often Eventually re-checks its condition.
const PollEvery = 5 * time.Millisecond

// Eventually waits up to DefaultTimeout for cond to hold, failing with what
// otherwise.
func Eventually(t testing.TB, cond func() bool, what string) {
	t.Helper()
	EventuallyWithin(t, DefaultTimeout, cond, what)
}

// EventuallyWithin is Eventually with an explicit deadline.
func EventuallyWithin(t testing.TB, limit time.Duration, cond func() bool, what string) {
	t.Helper()
	start := time.Now()
	for !cond() {
		if time.Since(start) > limit {
			t.Fatalf("after %s: %s", limit, what)
		}
		time.Sleep(PollEvery)
	}
}
