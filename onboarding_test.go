package mindchat

import (
	"errors"
	"testing"

	"github.com/mindchat/mindchat-sdk-go/trait"
)

func completeQuiz(t *testing.T, f *OnboardingFlow) {
	t.Helper()
	for {
		q, ok := f.Question()
		if !ok {
			break
		}
		if err := f.SubmitAnswer(q.Options[0].Tag); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}
}

func TestOnboardingFlow_FullWalk(t *testing.T) {
	f := NewOnboardingFlow()
	if f.Step() != StepWelcome {
		t.Fatalf("initial step = %s", f.Step())
	}

	if err := f.Next(); err != nil { // welcome -> identity
		t.Fatalf("Next: %v", err)
	}
	f.SetIdentity("Scorpio", "Millennial")
	if err := f.Next(); err != nil { // identity -> quiz
		t.Fatalf("Next: %v", err)
	}

	completeQuiz(t, f)
	if f.Step() != StepMusic {
		t.Fatalf("step after quiz = %s, want music", f.Step())
	}
	code, err := f.TraitCode()
	if err != nil {
		t.Fatalf("TraitCode: %v", err)
	}
	if !code.Valid() {
		t.Fatalf("code %q invalid", code)
	}

	f.SetMusic([]string{"jazz", "punk", "ambient"})
	if err := f.Next(); err != nil {
		t.Fatalf("Next after music: %v", err)
	}
	f.SetFilms([]string{"Alien", "Heat", "Her"})
	if err := f.Next(); err != nil {
		t.Fatalf("Next after films: %v", err)
	}
	f.SetGames(nil) // optional
	if err := f.Next(); err != nil {
		t.Fatalf("Next after games: %v", err)
	}
	f.SetAlignment("lawful neutral")
	if err := f.Next(); err != nil {
		t.Fatalf("Next after alignment: %v", err)
	}
	f.SetOnlineLevel(5)
	if err := f.Next(); err != nil {
		t.Fatalf("Next after online level: %v", err)
	}
	if f.Step() != StepDone {
		t.Fatalf("final step = %s, want done", f.Step())
	}

	data, err := f.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data.TraitCode != code || data.Alignment != "lawful neutral" || data.OnlineLevel != 5 {
		t.Fatalf("data = %+v", data)
	}
}

func TestOnboardingFlow_KnownCodeSkipsQuiz(t *testing.T) {
	f := NewOnboardingFlow()
	_ = f.Next() // identity
	_ = f.Next() // quiz

	if err := f.SetKnownCode("intj"); err != nil {
		t.Fatalf("SetKnownCode: %v", err)
	}
	if f.Step() != StepMusic {
		t.Fatalf("step = %s, want music", f.Step())
	}
	code, _ := f.TraitCode()
	if code != "INTJ" {
		t.Fatalf("code = %q, want INTJ", code)
	}
}

func TestOnboardingFlow_UnknownCodeKeepsQuiz(t *testing.T) {
	f := NewOnboardingFlow()
	_ = f.Next()
	_ = f.Next()

	if err := f.SetKnownCode("unknown"); err != nil {
		t.Fatalf("SetKnownCode: %v", err)
	}
	if f.Step() != StepQuiz {
		t.Fatalf("step = %s, want quiz", f.Step())
	}
	if _, ok := f.Question(); !ok {
		t.Fatal("quiz should still be live")
	}
}

func TestOnboardingFlow_IllegalKnownCode(t *testing.T) {
	f := NewOnboardingFlow()
	_ = f.Next()
	_ = f.Next()

	var cerr *trait.CodeError
	if err := f.SetKnownCode("XXXX"); !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *trait.CodeError", err)
	}
}

func TestOnboardingFlow_WrongAxisAnswerRejected(t *testing.T) {
	f := NewOnboardingFlow()
	_ = f.Next()
	_ = f.Next()

	// First question is the mind axis: J is not a legal tag there.
	err := f.SubmitAnswer(trait.Answer("J"))
	if !errors.Is(err, trait.ErrInvalidAnswer) {
		t.Fatalf("err = %v, want ErrInvalidAnswer", err)
	}
	if _, ok := f.Question(); !ok {
		t.Fatal("rejected answer must not advance the quiz")
	}
}

func TestOnboardingFlow_CannotSkipRequiredSteps(t *testing.T) {
	f := NewOnboardingFlow()
	_ = f.Next()
	_ = f.Next()
	completeQuiz(t, f)

	// Music needs exactly three entries.
	f.SetMusic([]string{"jazz"})
	if err := f.Next(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Next err = %v, want ErrInvalidState", err)
	}
	if _, err := f.Data(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Data err = %v, want ErrInvalidState", err)
	}
}

func TestOnboardingFlow_OnlineLevelClamped(t *testing.T) {
	f := NewOnboardingFlow()
	f.SetOnlineLevel(99)
	if f.data.OnlineLevel != 5 {
		t.Fatalf("level = %d, want 5", f.data.OnlineLevel)
	}
	f.SetOnlineLevel(-3)
	if f.data.OnlineLevel != 1 {
		t.Fatalf("level = %d, want 1", f.data.OnlineLevel)
	}
}

func TestOnboardingData_HashStable(t *testing.T) {
	a := testOnboarding()
	b := testOnboarding()
	if a.Hash() != b.Hash() {
		t.Fatal("identical data hashed differently")
	}
	b.Films[1] = "Face/Off"
	if a.Hash() == b.Hash() {
		t.Fatal("different data hashed identically")
	}
}

func TestOnlineLevelLabel(t *testing.T) {
	if got := OnlineLevelLabel(1); got != "Offline warrior" {
		t.Fatalf("label(1) = %q", got)
	}
	if got := OnlineLevelLabel(5); got != "Terminally online" {
		t.Fatalf("label(5) = %q", got)
	}
	// Out of range falls back to the middle of the scale.
	if got := OnlineLevelLabel(0); got != "Active user" {
		t.Fatalf("label(0) = %q", got)
	}
}
