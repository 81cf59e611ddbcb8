package mindchat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockProvider implements ResponseProvider without any network access.
// Profiles come straight from the archetype table; replies are routed
// by simple keyword matching. Useful for demos, offline development,
// and as a drop-in for tests that do not need scripted behavior.
type MockProvider struct{}

var _ ResponseProvider = (*MockProvider)(nil)

// NewMockProvider creates the offline provider.
func NewMockProvider() *MockProvider { return &MockProvider{} }

// GenerateProfiles returns one profile per archetype, named after the
// archetype title with the user's trait code woven in.
func (p *MockProvider) GenerateProfiles(_ context.Context, data OnboardingData) ([]VoiceProfile, error) {
	arcs := Archetypes()
	profiles := make([]VoiceProfile, 0, len(arcs))
	for _, a := range arcs {
		persona, err := json.Marshal(map[string]interface{}{
			"archetype":   a.Title,
			"description": a.Description,
			"trait_code":  string(data.TraitCode),
		})
		if err != nil {
			return nil, providerErr("generate_profiles", "marshal persona", err)
		}
		profiles = append(profiles, VoiceProfile{
			Ref:     a.Ref,
			Name:    fmt.Sprintf("%s (%s)", a.Title, data.TraitCode),
			Persona: persona,
		})
	}
	return profiles, nil
}

// keyword routes: first match wins per voice, most-specific first.
var mockRoutes = []struct {
	ref      string
	keywords []string
	reply    string
}{
	{refAlarm, []string{"worried", "scared", "anxious", "what if", "afraid"}, "Okay but have you considered every way this could go wrong? Because I have. All of them."},
	{"body", []string{"tired", "hungry", "sleep", "eat", "exhausted"}, "Hydrate. Eat something that isn't a snack. We are running on fumes here."},
	{"impulse", []string{"want", "buy", "now", "crave"}, "Do it. Do it right now. Think later, feel first."},
	{"empathy", []string{"friend", "sad", "feel", "they", "love"}, "How do you think they felt about it, though? Sit with that for a second."},
	{"willpower", []string{"can't", "give up", "hard", "quit"}, "You have survived every hard day so far. This one is no different. Keep going."},
	{"intuition", []string{"weird", "dream", "strange", "vibe"}, "Hmm. Something about this feels connected to something else. Trust the thread."},
	{"rhetoric", []string{"say", "tell", "message", "reply"}, "Wording matters. Open soft, land the point in the middle, end on warmth."},
}

// GenerateReplies returns a deterministic batch: every keyword-matched
// voice speaks, and the logic voice always closes the batch.
func (p *MockProvider) GenerateReplies(_ context.Context, userText string, voices []VoiceProfile, _ OnboardingData, _ []MessageEntry) ([]VoiceReply, error) {
	lower := strings.ToLower(userText)
	replies := make([]VoiceReply, 0, 4)
	for _, route := range mockRoutes {
		if _, ok := resolveVoice(voices, route.ref); !ok {
			continue
		}
		for _, kw := range route.keywords {
			if strings.Contains(lower, kw) {
				replies = append(replies, VoiceReply{VoiceRef: route.ref, Text: route.reply})
				break
			}
		}
		if len(replies) == 4 {
			break
		}
	}
	if _, ok := resolveVoice(voices, refLogic); ok {
		replies = append(replies, VoiceReply{
			VoiceRef: refLogic,
			Text:     fmt.Sprintf("Let's break it down. You said %q. What is the actual decision here?", userText),
		})
	}
	if len(replies) == 0 && len(voices) > 0 {
		replies = append(replies, VoiceReply{VoiceRef: voices[0].Ref, Text: "Noted. Tell me more."})
	}
	return replies, nil
}
