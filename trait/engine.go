package trait

import (
	"fmt"
)

// Engine converts a fixed-length ordered answer sequence into a Code.
// It is a pure function over its question bank: no state, no side effects.
type Engine struct {
	questions []Question
}

// NewEngine creates an engine over the built-in question bank.
func NewEngine() *Engine {
	return &Engine{questions: DefaultQuestions()}
}

// NewEngineWithQuestions creates an engine over a custom question bank.
func NewEngineWithQuestions(questions []Question) *Engine {
	return &Engine{questions: questions}
}

// Questions returns the engine's question bank.
func (e *Engine) Questions() []Question {
	return e.questions
}

// QuestionCount returns the required answer sequence length.
func (e *Engine) QuestionCount() int {
	return len(e.questions)
}

// Infer scores a complete answer sequence into a Code.
// Each axis is resolved independently by majority vote among that
// axis's answers; a tied axis resolves to Axis.Default().
//
// Fails with ErrIncompleteInput when fewer than QuestionCount answers
// are supplied, and with ErrInvalidAnswer (an *AnswerError) when a tag
// is not legal for its question's axis.
func (e *Engine) Infer(answers []Answer) (Code, error) {
	if len(answers) != len(e.questions) {
		return "", fmt.Errorf("%w: got %d answers, need %d", ErrIncompleteInput, len(answers), len(e.questions))
	}

	var counts [axisCount][2]int
	for i, tag := range answers {
		axis := e.questions[i].Axis
		if !axis.Accepts(tag) {
			return "", &AnswerError{Index: i, Tag: tag, Axis: axis}
		}
		first, _ := axis.Poles()
		if tag == first {
			counts[axis][0]++
		} else {
			counts[axis][1]++
		}
	}

	var code []byte
	for axis := Axis(0); axis < axisCount; axis++ {
		first, second := axis.Poles()
		// Strict majority for the first pole; ties fall to the second
		// (the documented defaults I, N, F, P).
		if counts[axis][0] > counts[axis][1] {
			code = append(code, first[0])
		} else {
			code = append(code, second[0])
		}
	}
	return Code(code), nil
}

// Resolve implements the bypass path: a caller who already knows their
// code supplies it directly and scoring is skipped entirely. The
// sentinel "unknown" (or an empty string) triggers the scored path.
func (e *Engine) Resolve(known string, answers []Answer) (Code, error) {
	if known != "" {
		code, err := ParseCode(known)
		if err != nil {
			return "", err
		}
		if code != CodeUnknown {
			return code, nil
		}
	}
	return e.Infer(answers)
}
