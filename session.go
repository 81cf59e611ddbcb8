package mindchat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// State is the ConversationSession lifecycle state.
type State string

const (
	// StateOnboarding: collecting questionnaire data; no profile yet.
	StateOnboarding State = "onboarding"
	// StateAwaitingProfile: profile generation in flight.
	StateAwaitingProfile State = "awaiting_profile"
	// StateProfileError: profile generation failed; only Reset leaves.
	StateProfileError State = "profile_error"
	// StateActive: chatting, quota remaining.
	StateActive State = "active"
	// StateExhausted: quota spent; only Reset leaves.
	StateExhausted State = "exhausted"
)

// ConversationSession owns the bounded, persisted, ordered chat state
// and coordinates staged batch delivery of voice replies.
//
// All mutations are expected to originate from one user-interaction
// goroutine; the internal lock exists because reveal timers and the
// provider call complete on their own goroutines.
type ConversationSession struct {
	cfg      SessionConfig
	provider ResponseProvider
	store    PersistenceStore
	log      zerolog.Logger

	// epoch guards in-flight work across resets: any result computed
	// under an older epoch is discarded, never merged.
	epoch atomic.Uint64
	// seq orders persistence snapshots (last-writer-wins by seq).
	seq atomic.Uint64

	writer   *snapshotWriter
	playback *playbackScheduler

	mu         sync.Mutex
	state      State
	identity   string
	onboarding OnboardingData
	voices     []VoiceProfile
	entries    []MessageEntry
	remaining  int
	pending    bool
	profileErr error
	batchSeq   uint64
	lastStamp  time.Time
}

// NewConversationSession creates a session, restoring any snapshot the
// store holds. A load failure is a PersistenceError: logged, and the
// session starts fresh.
func NewConversationSession(cfg SessionConfig, provider ResponseProvider, store PersistenceStore) *ConversationSession {
	cfg = cfg.withDefaults()
	log := cfg.Logger.With().Str("component", "session").Logger()

	s := &ConversationSession{
		cfg:      cfg,
		provider: provider,
		store:    store,
		log:      log,
		writer:   newSnapshotWriter(store, cfg.StoreKey, log),
		playback: newPlaybackScheduler(),
		state:    StateOnboarding,
	}

	loaded, err := loadSessionState(store, cfg.StoreKey)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot load failed, starting fresh")
		loaded = nil
	}
	if loaded != nil {
		s.restore(loaded)
	}
	if s.identity == "" {
		s.identity = uuid.NewString()
		// Persist immediately so the device token survives a restart
		// that happens before onboarding finishes.
		s.persistLocked()
	}
	log.Info().Str("state", string(s.state)).Int("remaining", s.remaining).Msg("session ready")
	return s
}

func (s *ConversationSession) restore(st *SessionState) {
	s.identity = st.IdentityToken
	if st.Onboarding != nil {
		s.onboarding = *st.Onboarding
	}
	s.voices = st.Voices
	s.entries = st.Log
	s.remaining = st.Remaining
	s.seq.Store(st.Seq)
	s.writer.observe(st.Seq)

	switch {
	case len(s.voices) > 0 && s.remaining > 0:
		s.state = StateActive
	case len(s.voices) > 0:
		s.state = StateExhausted
	default:
		s.state = StateOnboarding
	}
	for _, e := range s.entries {
		if e.SentAt.After(s.lastStamp) {
			s.lastStamp = e.SentAt
		}
	}
}

// ──────────────────────────────────────────────
// Observers
// ──────────────────────────────────────────────

// State returns the current lifecycle state.
func (s *ConversationSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IdentityToken returns the stable per-device token.
func (s *ConversationSession) IdentityToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Remaining returns the message quota left.
func (s *ConversationSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Pending reports whether a reply batch is outstanding: true from an
// accepted Submit until the batch's last entry is revealed.
func (s *ConversationSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Messages returns a copy of the ordered log.
func (s *ConversationSession) Messages() []MessageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MessageEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Voices returns a copy of the active voice profiles.
func (s *ConversationSession) Voices() []VoiceProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VoiceProfile, len(s.voices))
	copy(out, s.voices)
	return out
}

// ProfileError returns the failure that parked the session in
// StateProfileError, or nil.
func (s *ConversationSession) ProfileError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileErr
}

// Flush blocks until every persistence write started so far has
// landed. Call before process exit.
func (s *ConversationSession) Flush() {
	s.writer.flush()
}

// ──────────────────────────────────────────────
// StartSession
// ──────────────────────────────────────────────

// StartSession finalizes onboarding and generates the voice profiles.
// It blocks until the provider answers or the hard timeout expires.
// On success the session is Active with the welcome entry seeded; on
// failure it parks in StateProfileError, which only Reset leaves.
func (s *ConversationSession) StartSession(ctx context.Context, data OnboardingData) error {
	s.mu.Lock()
	if s.state != StateOnboarding {
		s.mu.Unlock()
		return ErrInvalidState
	}
	s.state = StateAwaitingProfile
	s.onboarding = data
	epoch := s.epoch.Load()
	s.mu.Unlock()
	s.log.Info().Str("trait_code", string(data.TraitCode)).Msg("generating voice profiles")

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()
	profiles, err := s.provider.GenerateProfiles(callCtx, data)
	if err == nil {
		if verr := validateProfiles(profiles, s.cfg.VoiceCount); verr != nil {
			err = providerErr("generate_profiles", "invalid output", verr)
		}
	} else {
		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = providerErr("generate_profiles", "request failed", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch.Load() != epoch {
		// Reset raced the provider call: discard the result entirely.
		return ErrSessionReset
	}
	if err != nil {
		s.state = StateProfileError
		s.profileErr = err
		s.log.Error().Err(err).Msg("profile generation failed")
		return err
	}

	s.voices = profiles
	s.entries = []MessageEntry{systemEntry(s.cfg.WelcomeText)}
	s.remaining = s.cfg.StartingQuota
	if s.remaining > 0 {
		s.state = StateActive
	} else {
		s.state = StateExhausted
	}
	s.persistLocked()
	s.log.Info().Int("voices", len(profiles)).Int("quota", s.remaining).Msg("session active")
	return nil
}

// ──────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────

// Turn tracks one accepted submission's reply batch.
type Turn struct {
	done      chan struct{}
	once      sync.Once
	completed bool
}

// Done is closed when the batch finished revealing or was abandoned.
func (t *Turn) Done() <-chan struct{} { return t.done }

// Wait blocks until Done.
func (t *Turn) Wait() { <-t.done }

// Completed reports whether the whole batch was revealed. Only
// meaningful after Done.
func (t *Turn) Completed() bool { return t.completed }

func (t *Turn) finish(completed bool) {
	t.once.Do(func() {
		t.completed = completed
		close(t.done)
	})
}

// Submit accepts one user message. Rejected with no state change when
// the text trims empty or the quota is spent. On acceptance the user
// entry is appended and the quota decremented atomically as observed
// by persistence, then a reply batch is requested asynchronously; the
// user's turn is consumed whether or not the provider succeeds.
func (s *ConversationSession) Submit(text string) (*Turn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	switch s.state {
	case StateActive:
	case StateExhausted:
		s.mu.Unlock()
		return nil, ErrQuotaExhausted
	default:
		s.mu.Unlock()
		return nil, ErrInvalidState
	}

	// A new submit supersedes any batch still revealing.
	cancelCh := s.playback.begin()

	s.entries = append(s.entries, userEntry(trimmed, s.stampLocked()))
	s.remaining--
	if s.remaining == 0 {
		s.state = StateExhausted
	}
	s.pending = true
	s.batchSeq++
	batch := s.batchSeq
	epoch := s.epoch.Load()
	s.persistLocked()

	history := historyWindow(s.entries[:len(s.entries)-1], s.cfg.HistoryWindow)
	voices := make([]VoiceProfile, len(s.voices))
	copy(voices, s.voices)
	data := s.onboarding
	s.mu.Unlock()

	turn := &Turn{done: make(chan struct{})}
	go s.runBatch(turn, cancelCh, epoch, batch, trimmed, voices, data, history)
	return turn, nil
}

func (s *ConversationSession) runBatch(turn *Turn, cancelCh chan struct{}, epoch, batch uint64, text string, voices []VoiceProfile, data OnboardingData, history []MessageEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ProviderTimeout)
	defer cancel()

	replies, err := s.provider.GenerateReplies(ctx, text, voices, data, history)

	s.mu.Lock()
	if s.epoch.Load() != epoch {
		s.mu.Unlock()
		turn.finish(false)
		return
	}
	s.mu.Unlock()

	var templates []MessageEntry
	if err == nil {
		kept := filterReplies(replies, voices, s.cfg.BatchMax, s.log)
		if len(kept) < s.cfg.BatchMin {
			err = providerErr("generate_replies", "batch empty after validation", nil)
		} else {
			templates = make([]MessageEntry, 0, len(kept))
			for _, r := range kept {
				templates = append(templates, MessageEntry{Kind: KindVoice, VoiceRef: r.VoiceRef, Text: r.Text})
			}
		}
	}
	if err != nil {
		// The turn is already consumed; degrade to the documented
		// fallback pair so the log is never left mid-batch.
		s.log.Warn().Err(err).Msg("reply generation failed, using fallback pair")
		templates = fallbackPair(voices)
	}

	reveal := func(i int) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch.Load() != epoch || s.batchSeq != batch {
			return false
		}
		e := templates[i]
		e.SentAt = s.stampLocked()
		s.entries = append(s.entries, e)
		s.persistLocked()
		return true
	}
	done := func(completed bool) {
		s.mu.Lock()
		if completed && s.epoch.Load() == epoch && s.batchSeq == batch {
			s.pending = false
		}
		s.mu.Unlock()
		turn.finish(completed)
	}
	s.playback.play(cancelCh, len(templates), s.cfg.RevealInterval, reveal, done)
}

// fallbackPair builds the deterministic two-entry failure batch: an
// alarm-voice reaction plus a logic-voice error notice.
func fallbackPair(voices []VoiceProfile) []MessageEntry {
	alarmRef, logicRef := refAlarm, refLogic
	if _, ok := resolveVoice(voices, alarmRef); !ok && len(voices) > 0 {
		alarmRef = voices[0].Ref
	}
	if _, ok := resolveVoice(voices, logicRef); !ok && len(voices) > 1 {
		logicRef = voices[1].Ref
	}
	return []MessageEntry{
		{Kind: KindVoice, VoiceRef: alarmRef, Text: "Uh oh, something went wrong... was that our fault?"},
		{Kind: KindVoice, VoiceRef: logicRef, Text: "Technical error. Probably a problem reaching the model. Try again.", ErrorNotice: true},
	}
}

// ──────────────────────────────────────────────
// Reset
// ──────────────────────────────────────────────

// Reset clears every session field except the identity token and
// returns to StateOnboarding. Valid from any state. In-flight provider
// calls and pending reveal timers are cancelled; their eventual
// results are discarded by the epoch guard.
func (s *ConversationSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch.Inc()
	s.playback.stop()

	s.state = StateOnboarding
	s.onboarding = OnboardingData{}
	s.voices = nil
	s.entries = nil
	s.remaining = 0
	s.pending = false
	s.profileErr = nil
	s.persistLocked()
	s.log.Info().Msg("session reset")
}

// ──────────────────────────────────────────────
// Internals
// ──────────────────────────────────────────────

// stampLocked returns a capture timestamp strictly later than every
// previously stamped entry. Wall clocks can stand still or jump back;
// log timestamps must not.
func (s *ConversationSession) stampLocked() time.Time {
	now := time.Now()
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = now
	return now
}

// persistLocked snapshots the session under the caller-held lock.
// The counter and log travel in one snapshot: no partial writes.
func (s *ConversationSession) persistLocked() {
	st := SessionState{
		Seq:           s.seq.Inc(),
		IdentityToken: s.identity,
		Log:           append([]MessageEntry(nil), s.entries...),
		Remaining:     s.remaining,
	}
	if len(s.voices) > 0 {
		st.Voices = append([]VoiceProfile(nil), s.voices...)
		data := s.onboarding
		st.Onboarding = &data
	}
	s.writer.write(st)
}
