package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler whose ticks are fired explicitly. It is used by tests
// and by drivers that want deterministic stepping.
type Manual struct {
	mu      sync.Mutex
	handles map[string][]*ManualHandle
}

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{handles: make(map[string][]*ManualHandle)}
}

// Every registers a new handle under name.
func (m *Manual) Every(name string, interval time.Duration) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &ManualHandle{
		name:     name,
		interval: interval,
		c:        make(chan time.Time),
		stopped:  make(chan struct{}),
	}
	m.handles[name] = append(m.handles[name], h)
	return h
}

// Latest returns the most recently created handle for name.
func (m *Manual) Latest(name string) *ManualHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.handles[name]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

// Created returns how many handles were created under name.
func (m *Manual) Created(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles[name])
}

// Active returns how many handles under name have not been stopped.
func (m *Manual) Active(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.handles[name] {
		if !h.Stopped() {
			n++
		}
	}
	return n
}

// ManualHandle is a handle created by Manual.
type ManualHandle struct {
	name     string
	interval time.Duration
	c        chan time.Time
	stopped  chan struct{}
	once     sync.Once
}

// C returns the tick channel.
func (h *ManualHandle) C() <-chan time.Time {
	return h.c
}

// Stop marks the handle stopped; pending and future Fire calls return false.
func (h *ManualHandle) Stop() {
	h.once.Do(func() { close(h.stopped) })
}

// Stopped reports whether Stop was called.
func (h *ManualHandle) Stopped() bool {
	select {
	case <-h.stopped:
		return true
	default:
		return false
	}
}

// Interval returns the interval the handle was created with.
func (h *ManualHandle) Interval() time.Duration {
	return h.interval
}

// Fire delivers a tick, blocking until it is received or the handle stops.
func (h *ManualHandle) Fire(now time.Time) bool {
	if h == nil || h.Stopped() {
		return false
	}
	select {
	case h.c <- now:
		return true
	case <-h.stopped:
		return false
	}
}
