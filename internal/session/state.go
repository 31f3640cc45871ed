package session

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/triviaz/internal/answer"
	"github.com/abhisek/triviaz/internal/question"
)

// Phase represents where the session is in its lifecycle.
type Phase int

const (
	PhaseLoading        Phase = iota // Constructed, no question surfaced yet
	PhaseAwaitingAnswer              // A question is current and unanswered
	PhaseAnswered                    // Feedback computed, about to advance
	PhaseFinished                    // Past the last question (terminal)
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseAnswered:
		return "answered"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Session is one run through a deduplicated batch of questions.
//
// A Session is owned by a single host and is not safe for concurrent use.
// Every operation runs to completion and returns a Snapshot of the new
// state; none of them return errors.
type Session struct {
	id string

	// questions is fixed for the lifetime of the session.
	questions []question.Question

	// index is the current position; len(questions) means finished.
	index int

	// score is the number of correct submissions.
	score int

	// answered counts submissions, correct or not.
	answered int

	phase Phase

	// shown maps a question ID to the position it was first displayed at.
	shown map[string]int

	// rendering is the current multiple choice arrangement (nil otherwise).
	rendering *answer.Rendering

	shuffler answer.Shuffler
	log      zerolog.Logger

	// result is set once Finish has run.
	result *Result
}

// Option configures a Session.
type Option func(*Session)

// WithShuffler sets the source of option orderings. Tests pass a seeded
// *rand.Rand for reproducible renderings.
func WithShuffler(sh answer.Shuffler) Option {
	return func(s *Session) {
		if sh != nil {
			s.shuffler = sh
		}
	}
}

// WithLogger sets the logger for duplicate drops and question display.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// globalShuffler draws from the math/rand/v2 global source.
type globalShuffler struct{}

func (globalShuffler) Perm(n int) []int { return rand.Perm(n) }

// New starts a session over batch. Duplicates by ID or by normalized
// question text are dropped, keeping the first occurrence. An empty
// result is valid: the session starts out finished with NoQuestions set.
func New(batch []question.Question, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		phase:    PhaseLoading,
		shown:    make(map[string]int),
		shuffler: globalShuffler{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session_id", s.id).Logger()

	kept, dropped := Dedupe(batch)
	for _, d := range dropped {
		s.log.Warn().
			Str("question_id", d.Question.ID).
			Str("reason", d.Reason).
			Msg("dropping duplicate question")
	}
	s.questions = kept

	s.load(true)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Questions returns a copy of the session's question list.
func (s *Session) Questions() []question.Question {
	out := make([]question.Question, len(s.questions))
	copy(out, s.questions)
	return out
}
