package session

import "github.com/abhisek/triviaz/internal/question"

// Reasons reported for dropped duplicates.
const (
	DuplicateID   = "duplicate id"
	DuplicateText = "duplicate text"
)

// Duplicate is a question dropped by Dedupe.
type Duplicate struct {
	Question question.Question
	Reason   string
}

// Dedupe removes questions whose ID or normalized text was already seen
// earlier in batch. Order is preserved and the first occurrence wins.
func Dedupe(batch []question.Question) (kept []question.Question, dropped []Duplicate) {
	seenIDs := make(map[string]bool, len(batch))
	seenText := make(map[string]bool, len(batch))

	for _, q := range batch {
		text := q.NormalizedText()
		switch {
		case seenIDs[q.ID]:
			dropped = append(dropped, Duplicate{Question: q, Reason: DuplicateID})
			continue
		case seenText[text]:
			dropped = append(dropped, Duplicate{Question: q, Reason: DuplicateText})
			continue
		}
		seenIDs[q.ID] = true
		seenText[text] = true
		kept = append(kept, q)
	}
	return kept, dropped
}
