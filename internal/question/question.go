package question

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Question is a single record from the question bank.
type Question struct {
	// ID is unique and stable across sessions.
	ID string

	// Category is a free-form grouping, e.g. "People" or "Places".
	Category string

	// Source names the text the question is drawn from, e.g. "Genesis".
	Source string

	// Text is the question prompt.
	Text string

	// Type selects how the question is answered.
	Type Type

	// Options holds the answer choices for multiple choice questions.
	// It may hold fewer than answer.MinOptions entries; padding is done
	// when the question is displayed, not by the store.
	Options []string

	// Answer is the canonical correct answer as stored.
	// For multiple choice it is the text of the correct option, for
	// true/false it is "True" or "False", for numeric it may be digits
	// or words ("12", "Twelve").
	Answer string

	// Explanation is shown after the question is answered.
	Explanation string

	// Reference is the citation backing the answer, e.g. "Genesis 1:1".
	Reference string

	// Difficulty is the bank's difficulty tag for the question.
	Difficulty Difficulty
}

// NormalizedText returns the question text trimmed and case-folded.
// Two questions with the same normalized text are duplicates.
func (q Question) NormalizedText() string {
	return NormalizeText(q.Text)
}

// NormalizeText trims surrounding whitespace and lowercases s.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Type describes how a question is answered.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeTrueFalse      Type = "true_false"
	TypeNumeric        Type = "numeric"
)

// ParseType maps a stored type string to a Type. Unknown or empty values
// fall back to TypeMultipleChoice.
func ParseType(s string) Type {
	switch Type(NormalizeText(s)) {
	case TypeTrueFalse:
		return TypeTrueFalse
	case TypeNumeric:
		return TypeNumeric
	default:
		return TypeMultipleChoice
	}
}

// Difficulty is a question bank difficulty tag. The zero value means
// "mixed", i.e. no difficulty filter.
type Difficulty string

const (
	DifficultyMixed  Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ErrUnknownDifficulty is returned by ParseDifficulty for unrecognized input.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty parses a user-supplied difficulty. "mixed" and the empty
// string both yield DifficultyMixed.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(NormalizeText(s)); d {
	case DifficultyMixed, "mixed":
		return DifficultyMixed, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return DifficultyMixed, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// String returns "mixed" for the zero value.
func (d Difficulty) String() string {
	if d == DifficultyMixed {
		return "mixed"
	}
	return string(d)
}

// ResetPeriod controls how long a used question stays excluded from new
// batches.
type ResetPeriod string

const (
	// ResetNone means no reset period is configured; nothing is excluded.
	ResetNone ResetPeriod = ""

	// Reset60Days makes a used question eligible again after 60 days.
	Reset60Days ResetPeriod = "60d"

	// Reset90Days makes a used question eligible again after 90 days.
	Reset90Days ResetPeriod = "90d"

	// ResetNever excludes a used question permanently.
	ResetNever ResetPeriod = "never"
)

// ErrInvalidResetPeriod is returned by ParseResetPeriod for unrecognized input.
var ErrInvalidResetPeriod = errors.New("invalid reset period")

// ParseResetPeriod accepts "60d", "60", "60 days", "90d", "90", "90 days",
// "never" and "none".
func ParseResetPeriod(s string) (ResetPeriod, error) {
	switch NormalizeText(s) {
	case "60d", "60", "60 days":
		return Reset60Days, nil
	case "90d", "90", "90 days":
		return Reset90Days, nil
	case "never":
		return ResetNever, nil
	case "none", "":
		return ResetNone, nil
	default:
		return ResetNone, fmt.Errorf("%w: %q", ErrInvalidResetPeriod, s)
	}
}

// Duration returns the exclusion window. ok is false for ResetNone and
// ResetNever, which have no finite window.
func (p ResetPeriod) Duration() (d time.Duration, ok bool) {
	switch p {
	case Reset60Days:
		return 60 * 24 * time.Hour, true
	case Reset90Days:
		return 90 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Valid reports whether p is one of the known periods.
func (p ResetPeriod) Valid() bool {
	switch p {
	case ResetNone, Reset60Days, Reset90Days, ResetNever:
		return true
	}
	return false
}

func (p ResetPeriod) String() string {
	switch p {
	case Reset60Days:
		return "60 days"
	case Reset90Days:
		return "90 days"
	case ResetNever:
		return "never"
	case ResetNone:
		return "none"
	}
	return string(p)
}
