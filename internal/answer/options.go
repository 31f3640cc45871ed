package answer

import "strings"

// MinOptions is the number of choices every multiple choice question is
// displayed with.
const MinOptions = 4

// Placeholder fills the slots of a multiple choice question that has fewer
// than MinOptions stored options. A placeholder slot is never the correct
// answer, even if the stored answer text happens to be "N/A".
const Placeholder = "N/A"

// Rendering is one on-screen arrangement of a multiple choice question.
type Rendering struct {
	// Options are the option texts in display order.
	Options []string

	// Order maps each display position to its index in the padded option
	// list. Indices >= the stored option count are placeholders.
	Order []int

	// CorrectIndex is the display position of the correct option, or -1
	// if no displayed option matches the stored answer.
	CorrectIndex int
}

// Shuffler produces a random permutation of [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Perm(n int) []int
}

// PadOptions returns a copy of options extended with Placeholder entries
// up to MinOptions. The input slice is never modified.
func PadOptions(options []string) []string {
	n := len(options)
	if n < MinOptions {
		n = MinOptions
	}
	padded := make([]string, n)
	copy(padded, options)
	for i := len(options); i < n; i++ {
		padded[i] = Placeholder
	}
	return padded
}

// Render pads options and arranges them in a fresh random order drawn
// from shuffler, computing the correct display position against that
// order. A nil shuffler keeps storage order.
func Render(options []string, correctAnswer string, shuffler Shuffler) Rendering {
	padded := PadOptions(options)

	var order []int
	if shuffler != nil {
		order = shuffler.Perm(len(padded))
	} else {
		order = make([]int, len(padded))
		for i := range order {
			order[i] = i
		}
	}

	display := make([]string, len(order))
	for i, src := range order {
		display[i] = padded[src]
	}

	return Rendering{
		Options:      display,
		Order:        order,
		CorrectIndex: CorrectIndex(options, correctAnswer, order),
	}
}

// CorrectIndex returns the display position whose option text matches
// correctAnswer, ignoring case and surrounding whitespace. order is the
// display order over the padded option list, as in Rendering.Order.
// Placeholder slots never match. Returns -1 if nothing matches.
func CorrectIndex(options []string, correctAnswer string, order []int) int {
	want := normalize(correctAnswer)
	for pos, src := range order {
		if src < 0 || src >= len(options) {
			continue
		}
		if normalize(options[src]) == want {
			return pos
		}
	}
	return -1
}

// normalize trims whitespace and lowercases s for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
