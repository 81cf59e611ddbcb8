package trait

import (
	"errors"
	"testing"
)

// ══════════════════════════════════════════════
// Engine tests
// ══════════════════════════════════════════════

func TestInfer_Deterministic(t *testing.T) {
	engine := NewEngine()
	// Axes in question order: EI, TF, JP, SN, EI, TF, JP, SN, EI, TF.
	answers := []Answer{"E", "T", "J", "N", "E", "T", "J", "N", "E", "T"}

	code, err := engine.Infer(answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "ENTJ" {
		t.Fatalf("expected ENTJ, got %s", code)
	}

	// Same input must always yield the same code.
	for i := 0; i < 50; i++ {
		again, err := engine.Infer(answers)
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if again != code {
			t.Fatalf("run %d: expected %s, got %s", i, code, again)
		}
	}
}

func TestInfer_TieDefaults(t *testing.T) {
	engine := NewEngine()
	// J/P and S/N each have two questions, so a 1-1 split ties.
	// Tied axes must resolve to the fixed defaults (P and N here).
	answers := []Answer{"E", "T", "J", "N", "E", "T", "P", "S", "E", "T"}

	code, err := engine.Infer(answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "ENTP" {
		t.Fatalf("expected tie defaults to yield ENTP, got %s", code)
	}
}

func TestInfer_MajorityPerAxis(t *testing.T) {
	engine := NewEngine()
	// E/I gets I, I, E → I wins 2-1.
	answers := []Answer{"I", "F", "P", "S", "I", "F", "P", "S", "E", "F"}

	code, err := engine.Infer(answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "ISFP" {
		t.Fatalf("expected ISFP, got %s", code)
	}
}

func TestInfer_IncompleteInput(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Infer([]Answer{"E", "T", "J"})
	if !errors.Is(err, ErrIncompleteInput) {
		t.Fatalf("expected ErrIncompleteInput, got %v", err)
	}

	_, err = engine.Infer(nil)
	if !errors.Is(err, ErrIncompleteInput) {
		t.Fatalf("expected ErrIncompleteInput for nil input, got %v", err)
	}
}

func TestInfer_InvalidAnswer(t *testing.T) {
	engine := NewEngine()
	// Question 0 targets E/I; "T" is out of alphabet for that axis.
	answers := []Answer{"T", "T", "J", "N", "E", "T", "J", "N", "E", "T"}

	_, err := engine.Infer(answers)
	if !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}

	var answerErr *AnswerError
	if !errors.As(err, &answerErr) {
		t.Fatalf("expected *AnswerError, got %T", err)
	}
	if answerErr.Index != 0 {
		t.Fatalf("expected failure at index 0, got %d", answerErr.Index)
	}
}

func TestInfer_EveryCharacterLegal(t *testing.T) {
	engine := NewEngine()
	seqs := [][]Answer{
		{"E", "T", "J", "N", "E", "T", "J", "N", "E", "T"},
		{"I", "F", "P", "S", "I", "F", "P", "S", "I", "F"},
		{"E", "F", "J", "S", "I", "T", "P", "N", "E", "F"},
		{"I", "T", "P", "N", "E", "F", "J", "S", "I", "T"},
	}
	for _, answers := range seqs {
		code, err := engine.Infer(answers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !code.Valid() {
			t.Fatalf("engine produced illegal code %q", code)
		}
	}
}

func TestResolve_BypassKnownCode(t *testing.T) {
	engine := NewEngine()

	// Known code skips scoring: no answers needed.
	code, err := engine.Resolve("enfp", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "ENFP" {
		t.Fatalf("expected ENFP, got %s", code)
	}
}

func TestResolve_SentinelTriggersScoring(t *testing.T) {
	engine := NewEngine()
	answers := []Answer{"E", "T", "J", "N", "E", "T", "J", "N", "E", "T"}

	code, err := engine.Resolve("unknown", answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "ENTJ" {
		t.Fatalf("expected ENTJ, got %s", code)
	}

	// Sentinel without answers fails the scored path.
	if _, err := engine.Resolve("unknown", nil); !errors.Is(err, ErrIncompleteInput) {
		t.Fatalf("expected ErrIncompleteInput, got %v", err)
	}
}

func TestResolve_RejectsIllegalCode(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Resolve("XYZW", nil)
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		t.Fatalf("expected *CodeError, got %v", err)
	}
}

func TestAllCodes_ClosedSet(t *testing.T) {
	codes := AllCodes()
	if len(codes) != 16 {
		t.Fatalf("expected 16 codes, got %d", len(codes))
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		if !c.Valid() {
			t.Fatalf("AllCodes produced illegal code %q", c)
		}
		if seen[c] {
			t.Fatalf("duplicate code %q", c)
		}
		seen[c] = true
	}
}

func TestQuestionBank_AxisDistribution(t *testing.T) {
	counts := make(map[Axis]int)
	for _, q := range DefaultQuestions() {
		counts[q.Axis]++
		for _, opt := range q.Options {
			if !q.Axis.Accepts(opt.Tag) {
				t.Fatalf("question %q offers tag %q outside its axis %s", q.Text, opt.Tag, q.Axis)
			}
		}
	}
	if counts[AxisMind] != 3 || counts[AxisNature] != 3 || counts[AxisTactics] != 2 || counts[AxisEnergy] != 2 {
		t.Fatalf("unexpected axis distribution: %v", counts)
	}
}

func TestProfiles_CoverAllCodes(t *testing.T) {
	for _, c := range AllCodes() {
		p := ProfileFor(c)
		if p == nil {
			t.Fatalf("no profile for code %s", c)
		}
		if p.Code != c {
			t.Fatalf("profile for %s declares code %s", c, p.Code)
		}
		if len(p.Traits) == 0 || p.ThinkingStyle == "" {
			t.Fatalf("profile for %s is incomplete", c)
		}
	}
	if ProfileFor("ABCD") != nil {
		t.Fatal("expected nil profile for illegal code")
	}
}
