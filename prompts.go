package mindchat

import (
	"fmt"
	"strings"

	"github.com/mindchat/mindchat-sdk-go/trait"
)

// ──────────────────────────────────────────────
// Prompt assembly
// ──────────────────────────────────────────────

// buildProfilePrompt renders the single-shot prompt that asks the model
// to personalize the eight archetypes for one user.
func buildProfilePrompt(data OnboardingData) string {
	var b strings.Builder

	b.WriteString("You are an expert at creating inner-voice characters from personality profiles.\n\n")
	b.WriteString("Your task is to generate 8 personalized inner voices for a user with the following profile:\n\n")
	writeUserProfile(&b, data)

	if p := trait.ProfileFor(data.TraitCode); p != nil {
		fmt.Fprintf(&b, "\n**TEMPERAMENT LEAN (%s):**\n", p.Code)
		fmt.Fprintf(&b, "- Traits: %s\n", strings.Join(p.Traits, ", "))
		fmt.Fprintf(&b, "- Thinking style: %s\n", p.ThinkingStyle)
		fmt.Fprintf(&b, "- Humor: %s\n", p.HumorStyle)
	}

	b.WriteString("\n**THE 8 VOICES TO PERSONALIZE:**\n\n")
	for i, a := range Archetypes() {
		fmt.Fprintf(&b, "%d. **%s** (ref: %s)\n   Archetype: %s\n\n", i+1, strings.ToUpper(a.Title), a.Ref, a.Description)
	}

	b.WriteString("**INSTRUCTIONS:**\n\n")
	b.WriteString("For EACH voice, generate:\n\n")
	b.WriteString("1. **Character name**: a creative name drawn from the user's cultural references (films, games, music). Examples: \"The Architect\" (Inception), \"Snack Goblin\" (internet culture), \"Totoro's Whisper\" (Ghibli).\n")
	b.WriteString("2. **Speech style**: characteristic vocabulary (2-3 words or phrases), the kind of references it makes, formality level, slang usage.\n")
	b.WriteString("3. **Catchphrases**: 2 lines this voice typically says.\n")
	b.WriteString("4. **Sample message**: one short message (1-2 lines) this voice would send the user.\n\n")

	b.WriteString("**IMPORTANT:**\n")
	fmt.Fprintf(&b, "- References must be specific to the films/games/music listed\n")
	fmt.Fprintf(&b, "- The tone must reflect the trait code (%s)\n", data.TraitCode)
	fmt.Fprintf(&b, "- Consider the online-presence level: %s\n", OnlineLevelLabel(data.OnlineLevel))
	fmt.Fprintf(&b, "- The alignment %s should shape how each voice judges situations\n\n", data.Alignment)

	b.WriteString("**RESPONSE FORMAT:**\n\n")
	b.WriteString("Respond ONLY with valid JSON in this structure (no markdown, no comments):\n\n")
	b.WriteString(`{
  "voices": [
    {
      "ref": "logic",
      "name": "...",
      "speech_style": {
        "vocabulary": ["...", "...", "..."],
        "references": "...",
        "formality": "...",
        "slang": "..."
      },
      "catchphrases": ["...", "..."],
      "sample_message": "..."
    }
  ]
}`)
	b.WriteString("\n\nThe \"ref\" of each voice must be exactly one of: ")
	b.WriteString(archetypeRefList())
	b.WriteString(".")
	return b.String()
}

// buildChatSystemPrompt renders the system prompt for one reply batch.
func buildChatSystemPrompt(userText string, voices []VoiceProfile, data OnboardingData) string {
	var b strings.Builder

	b.WriteString("You are a system that simulates one person's 8 inner voices, each with its own personality and way of speaking.\n\n")
	writeUserProfile(&b, data)

	b.WriteString("\n**THE 8 VOICES:**\n")
	names := make([]string, 0, len(voices))
	refs := make([]string, 0, len(voices))
	for _, v := range voices {
		names = append(names, v.Name)
		refs = append(refs, v.Ref)
		fmt.Fprintf(&b, "\n**%s** (ref: %s)\n", v.Name, v.Ref)
		if len(v.Persona) > 0 {
			fmt.Fprintf(&b, "Persona: %s\n", string(v.Persona))
		}
	}

	b.WriteString("\n**INSTRUCTIONS:**\n\n")
	fmt.Fprintf(&b, "1. The user wrote: %q\n\n", userText)
	b.WriteString("2. Answer from the perspective of 3-5 voices (NOT always all 8, only the ones most relevant to this specific message)\n\n")
	b.WriteString("3. Each voice must:\n")
	b.WriteString("   - Keep its unique personality and way of speaking\n")
	b.WriteString("   - Use its characteristic vocabulary and references\n")
	b.WriteString("   - Answer naturally and conversationally\n")
	fmt.Fprintf(&b, "   - It may @mention other voices by name (%s)\n", strings.Join(names, ", "))
	b.WriteString("   - It may disagree or argue with other voices\n\n")
	b.WriteString("4. Respond in this JSON format (no markdown, no comments):\n\n")
	b.WriteString(`{
  "responses": [
    {
      "voice_ref": "logic",
      "text": "the voice's message here"
    },
    {
      "voice_ref": "alarm",
      "text": "another message, may include @mentions of other voices"
    }
  ]
}`)
	b.WriteString("\n\n**IMPORTANT:**\n")
	fmt.Fprintf(&b, "- Every voice_ref must be exactly one of: %s\n", strings.Join(refs, ", "))
	b.WriteString("- Never invent voice refs that do not exist\n")
	b.WriteString("- 3-5 voices maximum per response\n")
	b.WriteString("- Keep each message short (1-3 lines)")
	return b.String()
}

// buildChatUserContent wraps the new message with the recent history
// window so the model sees the thread without a full transcript.
func buildChatUserContent(userText string, voices []VoiceProfile, history []MessageEntry) string {
	if len(history) == 0 {
		return userText
	}
	var b strings.Builder
	b.WriteString("RECENT CONVERSATION CONTEXT:\n")
	for _, e := range history {
		switch e.Kind {
		case KindUser:
			fmt.Fprintf(&b, "User: %s\n", e.Text)
		case KindVoice:
			name := e.VoiceRef
			if v, ok := resolveVoice(voices, e.VoiceRef); ok {
				name = v.Name
			}
			fmt.Fprintf(&b, "%s: %s\n", name, e.Text)
		}
	}
	fmt.Fprintf(&b, "\nNEW USER MESSAGE: %q", userText)
	return b.String()
}

func writeUserProfile(b *strings.Builder, data OnboardingData) {
	b.WriteString("**USER PROFILE:**\n")
	fmt.Fprintf(b, "- Trait code: %s\n", data.TraitCode)
	fmt.Fprintf(b, "- Zodiac sign: %s\n", data.Zodiac)
	fmt.Fprintf(b, "- Generation: %s\n", data.Generation)
	fmt.Fprintf(b, "- Favorite music: %s\n", strings.Join(data.Music, ", "))
	fmt.Fprintf(b, "- Favorite films: %s\n", strings.Join(data.Films, ", "))
	fmt.Fprintf(b, "- Favorite games: %s\n", strings.Join(data.Games, ", "))
	fmt.Fprintf(b, "- Alignment: %s\n", data.Alignment)
	fmt.Fprintf(b, "- Online presence: %s (%d/5)\n", OnlineLevelLabel(data.OnlineLevel), data.OnlineLevel)
}

func archetypeRefList() string {
	refs := make([]string, 0, 8)
	for _, a := range Archetypes() {
		refs = append(refs, a.Ref)
	}
	return strings.Join(refs, ", ")
}
