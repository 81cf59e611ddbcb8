package mindchat

import (
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Playback — staged reveal of a reply batch
// ──────────────────────────────────────────────

// playbackScheduler serializes batch reveals. At most one batch plays
// at a time; beginning a new batch (or stopping) cancels any timers
// still pending from the previous one.
type playbackScheduler struct {
	mu     sync.Mutex
	cancel chan struct{}
}

func newPlaybackScheduler() *playbackScheduler {
	return &playbackScheduler{}
}

// begin cancels the in-flight batch, if any, and arms a fresh cancel
// channel for the next one.
func (p *playbackScheduler) begin() chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		close(p.cancel)
	}
	p.cancel = make(chan struct{})
	return p.cancel
}

// stop cancels the in-flight batch without arming a new one.
func (p *playbackScheduler) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		close(p.cancel)
		p.cancel = nil
	}
}

// play reveals count entries interval apart: the first immediately,
// each subsequent one after interval. reveal(i) returning false aborts
// the batch (the session moved on). done(completed) always fires
// exactly once.
func (p *playbackScheduler) play(cancel chan struct{}, count int, interval time.Duration, reveal func(i int) bool, done func(completed bool)) {
	go func() {
		for i := 0; i < count; i++ {
			if i > 0 {
				timer := time.NewTimer(interval)
				select {
				case <-timer.C:
				case <-cancel:
					timer.Stop()
					done(false)
					return
				}
			}
			select {
			case <-cancel:
				done(false)
				return
			default:
			}
			if !reveal(i) {
				done(false)
				return
			}
		}
		done(true)
	}()
}
