// Package answer decides whether a learner's answer to a question is
// correct. Every function here is pure and never fails: input that cannot
// be interpreted is simply an incorrect answer.
package answer

import (
	"strconv"
	"strings"
)

// Labels accepted for true/false questions.
const (
	TrueLabel  = "True"
	FalseLabel = "False"
)

// CheckMultipleChoice reports whether the option at display position
// chosen is correct. options and order are as for CorrectIndex.
// Out-of-range choices are incorrect.
func CheckMultipleChoice(options []string, correctAnswer string, chosen int, order []int) bool {
	if chosen < 0 || chosen >= len(order) {
		return false
	}
	idx := CorrectIndex(options, correctAnswer, order)
	return idx >= 0 && idx == chosen
}

// CheckTrueFalse compares the chosen label with the stored answer,
// ignoring case and surrounding whitespace.
func CheckTrueFalse(correctAnswer, chosenLabel string) bool {
	return normalize(chosenLabel) == normalize(correctAnswer)
}

// CheckNumeric compares a typed answer with a stored numeric answer.
// The first rule that matches wins:
//
//  1. the raw texts are equal, ignoring case and surrounding whitespace;
//  2. both sides read as the same number through WordToNumber;
//  3. both sides parse as the same integer literal.
//
// Blank input only matches a blank stored answer.
func CheckNumeric(correctAnswer, input string) bool {
	if normalize(input) == normalize(correctAnswer) {
		return true
	}

	got, okGot := WordToNumber(input)
	want, okWant := WordToNumber(correctAnswer)
	if okGot && okWant && got == want {
		return true
	}

	gotInt, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	wantInt, err := strconv.Atoi(strings.TrimSpace(correctAnswer))
	if err != nil {
		return false
	}
	return gotInt == wantInt
}
