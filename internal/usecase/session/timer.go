package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is the session's elapsed-time counter. It ticks once per interval
// while running and must be released on every exit path from the active
// states; Stop is idempotent so no transition can leak the goroutine.
type Timer struct {
	interval time.Duration
	ticks    int64

	stopOnce sync.Once
	done     chan struct{}
}

func StartTimer(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	t := &Timer{
		interval: interval,
		done:     make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Timer) run() {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-tk.C:
			atomic.AddInt64(&t.ticks, 1)
		case <-t.done:
			return
		}
	}
}

func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

func (t *Timer) Elapsed() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.ticks)) * t.interval
}
