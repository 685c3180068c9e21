package wellness

import (
	"context"
	"sync"
	"time"
)

// Metronome owns a single repeating timer. Starting it again cancels the
// previous run and waits for it to exit before the new one is armed, so two
// tick loops never overlap.
type Metronome struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewMetronome(interval time.Duration) *Metronome {
	if interval <= 0 {
		interval = time.Second
	}
	return &Metronome{interval: interval}
}

// Start calls fn once per interval until fn returns false, ctx is done or
// Stop is called. fn runs on the metronome's goroutine and must not call
// Start or Stop itself.
func (m *Metronome) Start(ctx context.Context, fn func(time.Time) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	go m.run(runCtx, done, fn)
}

func (m *Metronome) run(ctx context.Context, done chan struct{}, fn func(time.Time) bool) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if !fn(t) {
				return
			}
		}
	}
}

// Stop cancels the pending timer and returns once its loop has exited.
func (m *Metronome) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Metronome) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
}

// Wait blocks until the current run, if any, has exited.
func (m *Metronome) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (m *Metronome) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}
