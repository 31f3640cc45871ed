package session

import (
	"context"
	"math"
)

// UsedRecorder persists the IDs of questions shown in a session.
// store.UsedRepo satisfies it.
type UsedRecorder interface {
	MarkUsed(ctx context.Context, ids []string) error
}

// Result holds the final outcome of a session.
type Result struct {
	SessionID  string
	Score      int
	Total      int
	Answered   int
	Percentage int

	// NoQuestions is set when the session never had a question.
	NoQuestions bool

	// QuestionIDs lists every question in the session, reached or not.
	QuestionIDs []string

	// RecordErr is the error from reporting used IDs, if any. It never
	// prevents the result from being returned.
	RecordErr error
}

// Finish ends the session, possibly early, and returns its result.
// All session question IDs are reported to rec as used, including
// skipped and unreached ones. A reporting failure is logged and kept on
// the result; the score is still returned. Calling Finish again returns
// the same result without reporting twice. rec may be nil.
func (s *Session) Finish(ctx context.Context, rec UsedRecorder) Result {
	if s.result != nil {
		return *s.result
	}

	s.phase = PhaseFinished
	s.index = len(s.questions)
	s.rendering = nil

	ids := make([]string, len(s.questions))
	for i, q := range s.questions {
		ids[i] = q.ID
	}

	res := Result{
		SessionID:   s.id,
		Score:       s.score,
		Total:       len(s.questions),
		Answered:    s.answered,
		Percentage:  Percentage(s.score, len(s.questions)),
		NoQuestions: len(s.questions) == 0,
		QuestionIDs: ids,
	}

	if rec != nil && len(ids) > 0 {
		if err := rec.MarkUsed(ctx, ids); err != nil {
			s.log.Error().Err(err).Int("count", len(ids)).Msg("failed to record used questions")
			res.RecordErr = err
		}
	}

	s.result = &res
	return res
}

// Percentage returns correct/total as a rounded whole percentage, or 0
// when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
