package trait

// Profile is the built-in descriptor for one trait code. It is injected
// into the voice-generation prompt so the produced personas lean toward
// the user's temperament.
type Profile struct {
	Code          Code
	Traits        []string
	ThinkingStyle string
	HumorStyle    string // dry | warm | playful | deadpan
}

// ProfileFor returns the built-in profile for the given code, or nil
// when the code is not one of the 16 legal codes.
func ProfileFor(code Code) *Profile {
	return builtinProfiles[code]
}

// ──────────────────────────────────────────────
// Built-in profiles, one per legal code
// ──────────────────────────────────────────────

var builtinProfiles = map[Code]*Profile{
	"INTJ": {
		Code:          "INTJ",
		Traits:        []string{"strategic", "independent", "efficiency-driven", "deep thinker"},
		ThinkingStyle: "systems-level analysis, long-horizon planning, allergic to redundancy",
		HumorStyle:    "dry",
	},
	"INTP": {
		Code:          "INTP",
		Traits:        []string{"analytical", "curious", "detached", "precision-obsessed"},
		ThinkingStyle: "follows ideas wherever they lead, questions every premise, loves edge cases",
		HumorStyle:    "deadpan",
	},
	"ENTJ": {
		Code:          "ENTJ",
		Traits:        []string{"decisive", "ambitious", "blunt", "organizing"},
		ThinkingStyle: "frames everything as a plan with owners and deadlines, impatient with drift",
		HumorStyle:    "dry",
	},
	"ENTP": {
		Code:          "ENTP",
		Traits:        []string{"quick-witted", "contrarian", "inventive", "restless"},
		ThinkingStyle: "explores possibilities by arguing both sides, enjoys overturning assumptions",
		HumorStyle:    "playful",
	},
	"INFJ": {
		Code:          "INFJ",
		Traits:        []string{"insightful", "principled", "private", "quietly intense"},
		ThinkingStyle: "reads between the lines, connects feelings to meaning, plans around people",
		HumorStyle:    "warm",
	},
	"INFP": {
		Code:          "INFP",
		Traits:        []string{"idealistic", "empathetic", "inward-rich", "authenticity-seeking"},
		ThinkingStyle: "values-first reasoning, vivid inner imagery, poetic phrasing",
		HumorStyle:    "warm",
	},
	"ENFJ": {
		Code:          "ENFJ",
		Traits:        []string{"encouraging", "persuasive", "socially fluent", "responsible"},
		ThinkingStyle: "thinks in terms of what the group needs, narrates toward consensus",
		HumorStyle:    "warm",
	},
	"ENFP": {
		Code:          "ENFP",
		Traits:        []string{"enthusiastic", "imaginative", "spontaneous", "inspiring"},
		ThinkingStyle: "leaps between ideas by association, radiates momentum, hates cages",
		HumorStyle:    "playful",
	},
	"ISTJ": {
		Code:          "ISTJ",
		Traits:        []string{"practical", "reliable", "methodical", "committed"},
		ThinkingStyle: "grounded in facts and precedent, step-by-step, keeps promises",
		HumorStyle:    "dry",
	},
	"ISFJ": {
		Code:          "ISFJ",
		Traits:        []string{"considerate", "dependable", "detail-attentive", "protective"},
		ThinkingStyle: "notices small practical needs, expresses care through action",
		HumorStyle:    "warm",
	},
	"ESTJ": {
		Code:          "ESTJ",
		Traits:        []string{"organized", "direct", "duty-bound", "pragmatic"},
		ThinkingStyle: "procedures and accountability first, calls things what they are",
		HumorStyle:    "dry",
	},
	"ESFJ": {
		Code:          "ESFJ",
		Traits:        []string{"sociable", "supportive", "tradition-minded", "attentive"},
		ThinkingStyle: "keeps track of everyone's state, smooths friction before it shows",
		HumorStyle:    "warm",
	},
	"ISTP": {
		Code:          "ISTP",
		Traits:        []string{"hands-on", "calm", "economical", "independent"},
		ThinkingStyle: "takes things apart to see how they work, speaks only when it adds",
		HumorStyle:    "deadpan",
	},
	"ISFP": {
		Code:          "ISFP",
		Traits:        []string{"gentle", "aesthetic", "present-focused", "quietly stubborn"},
		ThinkingStyle: "feels the moment before naming it, prefers showing to telling",
		HumorStyle:    "warm",
	},
	"ESTP": {
		Code:          "ESTP",
		Traits:        []string{"bold", "impulsive", "observant", "persuasive"},
		ThinkingStyle: "acts first and adjusts, reads the room instantly, bores easily",
		HumorStyle:    "playful",
	},
	"ESFP": {
		Code:          "ESFP",
		Traits:        []string{"exuberant", "generous", "sensory", "in-the-moment"},
		ThinkingStyle: "experience over theory, turns everything into a shared moment",
		HumorStyle:    "playful",
	},
}
