package mindchat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ──────────────────────────────────────────────
// Voice profiles — the eight inner voices
// ──────────────────────────────────────────────

// VoiceProfile is an opaque persona descriptor produced by the external
// generation step. The core only relies on Ref (stable identifier) and
// Name (display label); Persona is stored and passed back to the
// provider untouched.
type VoiceProfile struct {
	Ref     string          `json:"ref"`
	Name    string          `json:"name"`
	Persona json.RawMessage `json:"persona,omitempty"`
}

// VoiceReply is one {voiceRef, text} pair of a provider batch.
type VoiceReply struct {
	VoiceRef string `json:"voice_ref"`
	Text     string `json:"text"`
}

// Archetype is one of the eight fixed inner-voice archetypes. The
// generation step personalizes a VoiceProfile per archetype; the
// archetype id doubles as the profile's Ref.
type Archetype struct {
	Ref         string
	Title       string
	Description string
}

// Fallback entries use the alarm and logic voices, matching the two
// temperaments a failure notice naturally speaks in.
const (
	refLogic = "logic"
	refAlarm = "alarm"
)

// Archetypes returns the fixed archetype set, in canonical order.
func Archetypes() []Archetype {
	return []Archetype{
		{Ref: refLogic, Title: "Logic", Description: "Rational analysis, cause and effect, problem solving. Analytical detective."},
		{Ref: "rhetoric", Title: "Rhetoric", Description: "How to communicate, social performance, what to say and how. Social strategist."},
		{Ref: "impulse", Title: "Impulse", Description: "Cravings, do-it-now urges, dopamine, pleasure and pain. Hedonist demon."},
		{Ref: "body", Title: "Body", Description: "Hunger, fatigue, pain, the body's basic needs. Body status monitor."},
		{Ref: "intuition", Title: "Intuition", Description: "Gut feelings, vibes, creativity, strange connections. Mystical weirdo."},
		{Ref: "willpower", Title: "Willpower", Description: "Self-discipline, endurance, you-can-do-this energy. Inner coach."},
		{Ref: "empathy", Title: "Empathy", Description: "Reading emotions, one's own and others'. Emotional intelligence."},
		{Ref: refAlarm, Title: "Alarm", Description: "Overthinking, worst-case scenarios, worries. Catastrophic thinker."},
	}
}

// resolveVoice matches a ref against the profile list.
func resolveVoice(profiles []VoiceProfile, ref string) (VoiceProfile, bool) {
	for _, p := range profiles {
		if p.Ref == ref {
			return p, true
		}
	}
	return VoiceProfile{}, false
}

// validateProfiles checks provider output before it reaches the session:
// exact cardinality, non-empty unique refs, non-empty names.
func validateProfiles(profiles []VoiceProfile, want int) error {
	if len(profiles) != want {
		return fmt.Errorf("expected %d voice profiles, got %d", want, len(profiles))
	}
	seen := make(map[string]bool, len(profiles))
	for i, p := range profiles {
		if strings.TrimSpace(p.Ref) == "" {
			return fmt.Errorf("voice profile %d has an empty ref", i)
		}
		if seen[p.Ref] {
			return fmt.Errorf("duplicate voice ref %q", p.Ref)
		}
		seen[p.Ref] = true
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("voice profile %q has an empty name", p.Ref)
		}
	}
	return nil
}

// filterReplies drops batch entries whose ref does not resolve against
// the current profile list (a data-integrity error on the provider's
// side, not fatal to the batch) and truncates oversized batches.
func filterReplies(replies []VoiceReply, profiles []VoiceProfile, max int, log zerolog.Logger) []VoiceReply {
	kept := make([]VoiceReply, 0, len(replies))
	for _, r := range replies {
		if _, ok := resolveVoice(profiles, r.VoiceRef); !ok {
			log.Warn().Str("voice_ref", r.VoiceRef).Msg("dropping reply with unresolvable voice ref")
			continue
		}
		if strings.TrimSpace(r.Text) == "" {
			log.Warn().Str("voice_ref", r.VoiceRef).Msg("dropping reply with empty text")
			continue
		}
		kept = append(kept, r)
		if max > 0 && len(kept) == max {
			break
		}
	}
	return kept
}
