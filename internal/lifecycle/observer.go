package lifecycle

// Observer receives a snapshot after every controller state change.
// OnSnapshot is called from the controller goroutine and must not block.
type Observer interface {
	OnSnapshot(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

// OnSnapshot calls f.
func (f ObserverFunc) OnSnapshot(s Snapshot) {
	f(s)
}

// Latest is an Observer that keeps only the newest snapshot for one consumer.
type Latest struct {
	ch chan Snapshot
}

// NewLatest creates an empty Latest.
func NewLatest() *Latest {
	return &Latest{ch: make(chan Snapshot, 1)}
}

// OnSnapshot replaces any unread snapshot with s.
func (l *Latest) OnSnapshot(s Snapshot) {
	for {
		select {
		case l.ch <- s:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// C returns the snapshot channel.
func (l *Latest) C() <-chan Snapshot {
	return l.ch
}

type nopObserver struct{}

func (nopObserver) OnSnapshot(Snapshot) {}
