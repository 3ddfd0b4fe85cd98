package slash

import "sync"

// execLane is a single-worker execution lane: submitted tasks run
// one-at-a-time in submission order, on a goroutine of their own, so the
// gateway delivery goroutine never blocks on command bodies. The queue is
// unbounded; a stalled command holds up later ones, which is the accepted
// price for a predictable evaluation order.
type execLane struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func newExecLane() *execLane {
	l := &execLane{wake: make(chan struct{}, 1)}
	go l.run()
	return l
}

func (l *execLane) submit(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *execLane) run() {
	for range l.wake {
		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue = l.queue[1:]
			l.mu.Unlock()
			fn()
		}
	}
}
