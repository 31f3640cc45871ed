package session

import (
	"github.com/abhisek/triviaz/internal/answer"
	"github.com/abhisek/triviaz/internal/question"
)

// snippetLen is how much question text goes into display log lines.
const snippetLen = 50

// Prompt is the question currently awaiting an answer.
type Prompt struct {
	Question question.Question

	// Options are the multiple choice options in display order, padded to
	// answer.MinOptions. Empty for other question types.
	Options []string
}

// Feedback is produced by every answer submission.
type Feedback struct {
	QuestionID    string
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Reference     string
}

// Snapshot is the externally visible session state after an operation.
type Snapshot struct {
	Phase Phase

	// Current is nil once the session is finished.
	Current *Prompt

	Index int
	Total int
	Score int

	Finished bool

	// NoQuestions is set when the session was built from a batch that was
	// empty after deduplication, so hosts can say so instead of scoring.
	NoQuestions bool

	// Feedback is set only on snapshots returned by a submission that was
	// evaluated.
	Feedback *Feedback
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		Index:       s.index,
		Total:       len(s.questions),
		Score:       s.score,
		Finished:    s.phase == PhaseFinished,
		NoQuestions: len(s.questions) == 0,
	}
	if s.phase == PhaseAwaitingAnswer {
		p := &Prompt{Question: s.questions[s.index]}
		if s.rendering != nil {
			p.Options = append([]string(nil), s.rendering.Options...)
		}
		snap.Current = p
	}
	return snap
}

// SubmitMultipleChoice answers the current multiple choice question with
// the option at display position chosen. It is a no-op unless a multiple
// choice question is awaiting an answer.
func (s *Session) SubmitMultipleChoice(chosen int) Snapshot {
	q, ok := s.awaiting(question.TypeMultipleChoice)
	if !ok {
		return s.Snapshot()
	}
	correct := s.rendering != nil &&
		answer.CheckMultipleChoice(q.Options, q.Answer, chosen, s.rendering.Order)
	return s.record(q, correct)
}

// SubmitTrueFalse answers the current true/false question with label,
// normally answer.TrueLabel or answer.FalseLabel. It is a no-op unless a
// true/false question is awaiting an answer.
func (s *Session) SubmitTrueFalse(label string) Snapshot {
	q, ok := s.awaiting(question.TypeTrueFalse)
	if !ok {
		return s.Snapshot()
	}
	return s.record(q, answer.CheckTrueFalse(q.Answer, label))
}

// SubmitNumeric answers the current numeric question with free text such
// as "12" or "twelve". It is a no-op unless a numeric question is
// awaiting an answer.
func (s *Session) SubmitNumeric(text string) Snapshot {
	q, ok := s.awaiting(question.TypeNumeric)
	if !ok {
		return s.Snapshot()
	}
	return s.record(q, answer.CheckNumeric(q.Answer, text))
}

// Skip moves past the current question without answering it.
func (s *Session) Skip() Snapshot {
	if s.phase != PhaseAwaitingAnswer {
		return s.Snapshot()
	}
	s.index++
	s.load(true)
	return s.Snapshot()
}

// GoBack returns to the previous question. The question is reloaded from
// scratch, so multiple choice options are reshuffled and the correct
// display position may change. It is a no-op at the first question and
// once the session is finished.
func (s *Session) GoBack() Snapshot {
	if s.phase != PhaseAwaitingAnswer || s.index == 0 {
		return s.Snapshot()
	}
	s.index--
	s.load(false)
	return s.Snapshot()
}

// awaiting returns the current question if it is awaiting an answer and
// is of type want.
func (s *Session) awaiting(want question.Type) (question.Question, bool) {
	if s.phase != PhaseAwaitingAnswer {
		return question.Question{}, false
	}
	q := s.questions[s.index]
	if q.Type != want {
		s.log.Debug().
			Str("question_id", q.ID).
			Str("type", string(q.Type)).
			Str("submitted", string(want)).
			Msg("ignoring answer for a different question type")
		return question.Question{}, false
	}
	return q, true
}

// record scores an evaluated answer and advances to the next question.
func (s *Session) record(q question.Question, correct bool) Snapshot {
	s.phase = PhaseAnswered
	s.answered++
	if correct {
		s.score++
	}
	fb := &Feedback{
		QuestionID:    q.ID,
		Correct:       correct,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
		Reference:     q.Reference,
	}

	s.index++
	s.load(true)

	snap := s.Snapshot()
	snap.Feedback = fb
	return snap
}

// load surfaces the question at s.index. When moving forward, a question
// already displayed at another position is skipped; the batch is
// deduplicated up front so this only guards against stale duplicates.
func (s *Session) load(forward bool) {
	s.rendering = nil

	for forward && s.index < len(s.questions) {
		q := s.questions[s.index]
		pos, seen := s.shown[q.ID]
		if !seen || pos == s.index {
			break
		}
		s.log.Warn().
			Str("question_id", q.ID).
			Int("index", s.index).
			Msg("skipping already shown question")
		s.index++
	}

	if s.index >= len(s.questions) {
		s.index = len(s.questions)
		s.phase = PhaseFinished
		return
	}

	q := s.questions[s.index]
	if _, seen := s.shown[q.ID]; !seen {
		s.shown[q.ID] = s.index
	}
	if q.Type == question.TypeMultipleChoice {
		r := answer.Render(q.Options, q.Answer, s.shuffler)
		s.rendering = &r
	}
	s.phase = PhaseAwaitingAnswer

	s.log.Debug().
		Str("question_id", q.ID).
		Int("index", s.index).
		Str("text", snippet(q.Text)).
		Msg("displaying question")
}

func snippet(text string) string {
	r := []rune(text)
	if len(r) <= snippetLen {
		return text
	}
	return string(r[:snippetLen]) + "..."
}
