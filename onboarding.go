package mindchat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/mindchat/mindchat-sdk-go/trait"
)

// OnboardingData is the finalized questionnaire output the generation
// step personalizes the voices from.
type OnboardingData struct {
	TraitCode   trait.Code `json:"trait_code"`
	Zodiac      string     `json:"zodiac,omitempty"`
	Generation  string     `json:"generation,omitempty"`
	Music       []string   `json:"music"`
	Films       []string   `json:"films"`
	Games       []string   `json:"games,omitempty"`
	Alignment   string     `json:"alignment,omitempty"`
	OnlineLevel int        `json:"online_level"` // 1..5
}

// Hash returns a stable fingerprint of the onboarding data, used as the
// idempotency key for profile generation.
func (d OnboardingData) Hash() string {
	// Canonical JSON of a value (not pointer) struct marshals fields in
	// declaration order, which is stable across runs.
	raw, _ := json.Marshal(d)
	return fmt.Sprintf("%016x", xxhash.Sum64(raw))
}

// OnlineLevelLabel renders the 1-5 online presence scale.
func OnlineLevelLabel(level int) string {
	labels := []string{
		"Offline warrior",
		"Casual scroller",
		"Active user",
		"Chronically online",
		"Terminally online",
	}
	if level < 1 || level > len(labels) {
		return "Active user"
	}
	return labels[level-1]
}

// ──────────────────────────────────────────────
// OnboardingFlow — multi-step form state machine
// ──────────────────────────────────────────────

// OnboardingStep identifies a step of the onboarding flow.
type OnboardingStep int

const (
	StepWelcome OnboardingStep = iota
	StepIdentity
	StepQuiz
	StepMusic
	StepFilms
	StepGames
	StepAlignment
	StepOnlineLevel
	StepDone
)

func (s OnboardingStep) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepIdentity:
		return "identity"
	case StepQuiz:
		return "quiz"
	case StepMusic:
		return "music"
	case StepFilms:
		return "films"
	case StepGames:
		return "games"
	case StepAlignment:
		return "alignment"
	case StepOnlineLevel:
		return "online_level"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// OnboardingFlow walks a user through the questionnaire and owns the
// trait engine. Callers either answer the quiz one tag at a time or
// supply a pre-known code to skip it.
type OnboardingFlow struct {
	engine *trait.Engine

	step    OnboardingStep
	answers []trait.Answer
	data    OnboardingData
}

// NewOnboardingFlow creates a flow at the welcome step.
func NewOnboardingFlow() *OnboardingFlow {
	return &OnboardingFlow{
		engine: trait.NewEngine(),
		step:   StepWelcome,
		data:   OnboardingData{OnlineLevel: 3},
	}
}

// Step returns the current step.
func (f *OnboardingFlow) Step() OnboardingStep { return f.step }

// Engine exposes the underlying trait engine (question bank access).
func (f *OnboardingFlow) Engine() *trait.Engine { return f.engine }

// Question returns the current quiz question, or false when the quiz
// is complete or not the current step.
func (f *OnboardingFlow) Question() (trait.Question, bool) {
	qs := f.engine.Questions()
	if f.step != StepQuiz || len(f.answers) >= len(qs) {
		return trait.Question{}, false
	}
	return qs[len(f.answers)], true
}

// SubmitAnswer records one quiz answer. The tag must be legal for the
// current question's axis; once the last answer lands the code is
// computed and the flow advances.
func (f *OnboardingFlow) SubmitAnswer(tag trait.Answer) error {
	q, ok := f.Question()
	if !ok {
		return ErrInvalidState
	}
	if !q.Axis.Accepts(tag) {
		return &trait.AnswerError{Index: len(f.answers), Tag: tag, Axis: q.Axis}
	}
	f.answers = append(f.answers, tag)

	if len(f.answers) == f.engine.QuestionCount() {
		code, err := f.engine.Infer(f.answers)
		if err != nil {
			return err
		}
		f.data.TraitCode = code
		f.step = StepMusic
	}
	return nil
}

// SetKnownCode takes the bypass path: the user already knows their
// code, so scoring is skipped. "unknown" keeps the quiz in place.
func (f *OnboardingFlow) SetKnownCode(known string) error {
	if f.step != StepIdentity && f.step != StepQuiz {
		return ErrInvalidState
	}
	code, err := trait.ParseCode(known)
	if err != nil {
		return err
	}
	if code == trait.CodeUnknown {
		f.step = StepQuiz
		return nil
	}
	f.data.TraitCode = code
	f.step = StepMusic
	return nil
}

// TraitCode returns the resolved code. It fails until the quiz is
// complete or a known code was supplied.
func (f *OnboardingFlow) TraitCode() (trait.Code, error) {
	if f.data.TraitCode == "" {
		return "", fmt.Errorf("%w: trait code not resolved yet", ErrInvalidState)
	}
	return f.data.TraitCode, nil
}

// SetIdentity records the optional zodiac sign and generation.
func (f *OnboardingFlow) SetIdentity(zodiac, generation string) {
	f.data.Zodiac = strings.TrimSpace(zodiac)
	f.data.Generation = strings.TrimSpace(generation)
}

// SetMusic records the three favorite genres.
func (f *OnboardingFlow) SetMusic(genres []string) {
	f.data.Music = trimNonEmpty(genres)
}

// SetFilms records the three favorite films.
func (f *OnboardingFlow) SetFilms(films []string) {
	f.data.Films = trimNonEmpty(films)
}

// SetGames records favorite games. Optional: empty is fine.
func (f *OnboardingFlow) SetGames(games []string) {
	f.data.Games = trimNonEmpty(games)
}

// SetAlignment records the moral-compass pick.
func (f *OnboardingFlow) SetAlignment(alignment string) {
	f.data.Alignment = strings.TrimSpace(alignment)
}

// SetOnlineLevel records online presence on the 1-5 scale.
func (f *OnboardingFlow) SetOnlineLevel(level int) {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	f.data.OnlineLevel = level
}

// CanContinue reports whether the current step's requirements are met.
func (f *OnboardingFlow) CanContinue() bool {
	switch f.step {
	case StepQuiz:
		return f.data.TraitCode != ""
	case StepMusic:
		return len(f.data.Music) == 3
	case StepFilms:
		return len(f.data.Films) == 3
	case StepAlignment:
		return f.data.Alignment != ""
	default:
		// Welcome, identity, games and online level are optional.
		return true
	}
}

// Next advances to the following step. Quiz completion (or a known
// code) already jumps to StepMusic, so Next from StepQuiz only moves
// once the code exists.
func (f *OnboardingFlow) Next() error {
	if !f.CanContinue() {
		return fmt.Errorf("%w: step %s incomplete", ErrInvalidState, f.step)
	}
	switch f.step {
	case StepWelcome:
		f.step = StepIdentity
	case StepIdentity:
		f.step = StepQuiz
	case StepQuiz:
		f.step = StepMusic
	case StepMusic:
		f.step = StepFilms
	case StepFilms:
		f.step = StepGames
	case StepGames:
		f.step = StepAlignment
	case StepAlignment:
		f.step = StepOnlineLevel
	case StepOnlineLevel:
		f.step = StepDone
	case StepDone:
		return ErrInvalidState
	}
	return nil
}

// Data finalizes and returns the onboarding data. It fails while any
// required step is incomplete.
func (f *OnboardingFlow) Data() (OnboardingData, error) {
	if f.data.TraitCode == "" {
		return OnboardingData{}, fmt.Errorf("%w: trait code missing", ErrInvalidState)
	}
	if len(f.data.Music) != 3 {
		return OnboardingData{}, fmt.Errorf("%w: need 3 music genres, have %d", ErrInvalidState, len(f.data.Music))
	}
	if len(f.data.Films) != 3 {
		return OnboardingData{}, fmt.Errorf("%w: need 3 films, have %d", ErrInvalidState, len(f.data.Films))
	}
	if f.data.Alignment == "" {
		return OnboardingData{}, fmt.Errorf("%w: alignment missing", ErrInvalidState)
	}
	return f.data, nil
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
