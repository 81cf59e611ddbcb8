// Package trait implements the personality-code inference engine:
// a deterministic mapping from an ordered sequence of forced-choice
// quiz answers to a 4-letter trait code (MBTI-style).
package trait

import (
	"strings"
)

// Answer is one symbolic tag drawn from the fixed answer alphabet.
// Each question accepts exactly the two tags of its target axis.
type Answer string

const (
	AnswerE Answer = "E"
	AnswerI Answer = "I"
	AnswerS Answer = "S"
	AnswerN Answer = "N"
	AnswerT Answer = "T"
	AnswerF Answer = "F"
	AnswerJ Answer = "J"
	AnswerP Answer = "P"
)

// Axis is one of the four independent dimensions composing a Code.
type Axis int

const (
	// AxisMind opposes Extraversion (E) and Introversion (I).
	AxisMind Axis = iota
	// AxisEnergy opposes Sensing (S) and Intuition (N).
	AxisEnergy
	// AxisNature opposes Thinking (T) and Feeling (F).
	AxisNature
	// AxisTactics opposes Judging (J) and Perceiving (P).
	AxisTactics

	axisCount
)

// axisPoles lists the two legal tags per axis, in code order.
var axisPoles = [axisCount][2]Answer{
	AxisMind:    {AnswerE, AnswerI},
	AxisEnergy:  {AnswerS, AnswerN},
	AxisNature:  {AnswerT, AnswerF},
	AxisTactics: {AnswerJ, AnswerP},
}

// Poles returns the two legal answer tags for the axis.
func (a Axis) Poles() (Answer, Answer) {
	p := axisPoles[a]
	return p[0], p[1]
}

// Default returns the tag an axis resolves to on a tied vote.
// The defaults are fixed: I, N, F, P (the second pole of each axis).
func (a Axis) Default() Answer {
	return axisPoles[a][1]
}

// Accepts reports whether the tag is legal for this axis.
func (a Axis) Accepts(tag Answer) bool {
	p := axisPoles[a]
	return tag == p[0] || tag == p[1]
}

func (a Axis) String() string {
	switch a {
	case AxisMind:
		return "E/I"
	case AxisEnergy:
		return "S/N"
	case AxisNature:
		return "T/F"
	case AxisTactics:
		return "J/P"
	}
	return "?"
}

// Code is a 4-character trait code, one character per axis,
// in axis order Mind, Energy, Nature, Tactics (e.g. "INTJ").
type Code string

// CodeUnknown is the sentinel a caller supplies to request the scored
// path instead of a pre-known code.
const CodeUnknown Code = "unknown"

// AllCodes returns the closed set of 16 legal codes.
func AllCodes() []Code {
	codes := make([]Code, 0, 16)
	for _, m := range axisPoles[AxisMind] {
		for _, e := range axisPoles[AxisEnergy] {
			for _, n := range axisPoles[AxisNature] {
				for _, t := range axisPoles[AxisTactics] {
					codes = append(codes, Code(string(m)+string(e)+string(n)+string(t)))
				}
			}
		}
	}
	return codes
}

// Valid reports whether c is one of the 16 legal codes.
func (c Code) Valid() bool {
	if len(c) != int(axisCount) {
		return false
	}
	for i := Axis(0); i < axisCount; i++ {
		if !i.Accepts(Answer(c[i : i+1])) {
			return false
		}
	}
	return true
}

// ParseCode validates a caller-supplied code string.
// It accepts the 16 legal codes case-insensitively, and the sentinel
// "unknown" (returned as CodeUnknown).
func ParseCode(s string) (Code, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, string(CodeUnknown)) {
		return CodeUnknown, nil
	}
	code := Code(strings.ToUpper(trimmed))
	if !code.Valid() {
		return "", &CodeError{Supplied: s}
	}
	return code, nil
}
