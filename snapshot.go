package mindchat

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// SessionState is the durable unit: everything a reload needs to
// reproduce the session. The remaining counter and the log are always
// written together, in one snapshot, so a later load can never observe
// a partial write.
type SessionState struct {
	// Seq is the logical write sequence. Writes are last-writer-wins
	// by Seq, not by wall-clock arrival.
	Seq uint64 `json:"seq"`

	IdentityToken string          `json:"identity_token"`
	Onboarding    *OnboardingData `json:"onboarding,omitempty"`
	Voices        []VoiceProfile  `json:"voices,omitempty"`
	Log           []MessageEntry  `json:"log"`
	Remaining     int             `json:"remaining"`
}

// loadSessionState reads and decodes a snapshot. A missing key returns
// (nil, nil).
func loadSessionState(store PersistenceStore, key string) (*SessionState, error) {
	raw, err := store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var state SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, nil
}

// snapshotWriter serializes snapshot writes to the store. Writes are
// fire-and-forget from the session's perspective, but ordered: a
// delayed write of an older snapshot never overwrites a newer one.
type snapshotWriter struct {
	store PersistenceStore
	key   string
	log   zerolog.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	lastSeq uint64
}

func newSnapshotWriter(store PersistenceStore, key string, log zerolog.Logger) *snapshotWriter {
	return &snapshotWriter{store: store, key: key, log: log}
}

// write persists the snapshot asynchronously. Store failures are
// logged and swallowed: the in-memory session continues, durability is
// lost for that write only.
func (w *snapshotWriter) write(state SessionState) {
	data, err := json.Marshal(state)
	if err != nil {
		w.log.Error().Err(err).Msg("encode snapshot")
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.mu.Lock()
		defer w.mu.Unlock()
		if state.Seq <= w.lastSeq {
			return // stale write, a newer snapshot already landed
		}
		if err := w.store.Set(w.key, data); err != nil {
			w.log.Warn().Err(err).Uint64("seq", state.Seq).Msg("persistence write failed")
			return
		}
		w.lastSeq = state.Seq
	}()
}

// observe records an externally loaded sequence so restored sessions
// keep monotonic ordering.
func (w *snapshotWriter) observe(seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq > w.lastSeq {
		w.lastSeq = seq
	}
}

// flush blocks until every write started so far has finished.
func (w *snapshotWriter) flush() {
	w.wg.Wait()
}
