// Package schedule provides owned, stoppable periodic task handles.
package schedule

import (
	"sync"
	"time"
)

// Handle is a running periodic task. Ticks are delivered on C until Stop.
type Handle interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler creates periodic task handles.
type Scheduler interface {
	Every(name string, interval time.Duration) Handle
}

// Real schedules ticks with time.Ticker.
type Real struct{}

// Every starts a ticker firing every interval.
func (Real) Every(_ string, interval time.Duration) Handle {
	return &tickerHandle{ticker: time.NewTicker(interval)}
}

type tickerHandle struct {
	ticker *time.Ticker
	once   sync.Once
}

func (h *tickerHandle) C() <-chan time.Time {
	return h.ticker.C
}

func (h *tickerHandle) Stop() {
	h.once.Do(h.ticker.Stop)
}

// Stop stops h when non-nil and returns nil, so owners can write
// `c.poll = schedule.Stop(c.poll)`.
func Stop(h Handle) Handle {
	if h != nil {
		h.Stop()
	}
	return nil
}

// Chan returns the tick channel of h, or nil when h is nil. Receiving from a
// nil channel blocks forever, which disables the select case.
func Chan(h Handle) <-chan time.Time {
	if h == nil {
		return nil
	}
	return h.C()
}
