package mindchat

import (
	"context"
	"encoding/json"
)

// ResponseProvider is the external model collaborator. Both calls are
// untrusted: output cardinality and reference validity are checked by
// the session before anything reaches the log.
type ResponseProvider interface {
	// GenerateProfiles produces one personalized VoiceProfile per
	// archetype for the given onboarding data.
	GenerateProfiles(ctx context.Context, data OnboardingData) ([]VoiceProfile, error)

	// GenerateReplies produces an ordered reply batch for one user
	// submission, given the current voices, the onboarding profile and
	// a bounded trailing window of prior entries.
	GenerateReplies(ctx context.Context, userText string, voices []VoiceProfile, data OnboardingData, history []MessageEntry) ([]VoiceReply, error)
}

// ──────────────────────────────────────────────
// Profile cache decorator
// ──────────────────────────────────────────────

// CachedProfileProvider wraps a ResponseProvider with an idempotency
// cache for profile generation, keyed by OnboardingData.Hash(). A
// reload with unchanged onboarding data reuses the stored profiles
// instead of re-billing the model. Reply generation passes through.
type CachedProfileProvider struct {
	inner ResponseProvider
	store PersistenceStore
}

// NewCachedProfileProvider wraps inner with a profile cache on store.
func NewCachedProfileProvider(inner ResponseProvider, store PersistenceStore) *CachedProfileProvider {
	return &CachedProfileProvider{inner: inner, store: store}
}

func (p *CachedProfileProvider) cacheKey(data OnboardingData) string {
	return "mindchat_profiles:" + data.Hash()
}

func (p *CachedProfileProvider) GenerateProfiles(ctx context.Context, data OnboardingData) ([]VoiceProfile, error) {
	key := p.cacheKey(data)
	if raw, err := p.store.Get(key); err == nil && raw != nil {
		var cached []VoiceProfile
		if err := json.Unmarshal(raw, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
		// Corrupt cache entry: fall through and regenerate.
	}

	profiles, err := p.inner.GenerateProfiles(ctx, data)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(profiles); err == nil {
		// Cache failures are not the caller's problem.
		_ = p.store.Set(key, raw)
	}
	return profiles, nil
}

func (p *CachedProfileProvider) GenerateReplies(ctx context.Context, userText string, voices []VoiceProfile, data OnboardingData, history []MessageEntry) ([]VoiceReply, error) {
	return p.inner.GenerateReplies(ctx, userText, voices, data, history)
}

var _ ResponseProvider = (*CachedProfileProvider)(nil)
