package store

import (
	"context"
	"time"

	"github.com/abhisek/triviaz/internal/question"
)

// BatchRequest selects a random batch of questions.
type BatchRequest struct {
	// Limit is the maximum batch size. Non-positive yields an empty batch.
	Limit int

	// Difficulty filters by tag; DifficultyMixed disables the filter.
	Difficulty question.Difficulty

	// ExcludeUsed drops questions used within ResetPeriod.
	ExcludeUsed bool

	// ResetPeriod decides how long a used question stays excluded. It is
	// passed in by the caller rather than read from settings so that the
	// fetch has no hidden inputs.
	ResetPeriod question.ResetPeriod
}

// QuestionRepo reads and writes the question bank.
type QuestionRepo interface {
	// FetchBatch returns up to req.Limit questions in random order.
	FetchBatch(ctx context.Context, req BatchRequest) ([]question.Question, error)

	// Save inserts or replaces questions by ID.
	Save(ctx context.Context, qs ...question.Question) error

	// Count returns the bank size for a difficulty (DifficultyMixed counts all).
	Count(ctx context.Context, difficulty question.Difficulty) (int, error)
}

// UsedRepo tracks which questions have been shown and when.
type UsedRepo interface {
	// MarkUsed records ids as used now. Repeating a call is harmless.
	MarkUsed(ctx context.Context, ids []string) error

	// LastUsed returns when id was last used, or the zero time.
	LastUsed(ctx context.Context, id string) (time.Time, error)

	// Count returns how many questions are excluded under period.
	Count(ctx context.Context, period question.ResetPeriod) (int, error)

	// Clear forgets every used question.
	Clear(ctx context.Context) error
}

// SettingsRepo persists process-wide quiz settings.
type SettingsRepo interface {
	// ResetPeriod returns the stored period, or ResetNone if unset.
	ResetPeriod(ctx context.Context) (question.ResetPeriod, error)

	// SetResetPeriod stores p.
	SetResetPeriod(ctx context.Context, p question.ResetPeriod) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID         string
	Action            string // ActionStart or ActionEnd
	Difficulty        string
	QuestionsTotal    int
	QuestionsAnswered int // on end only
	CorrectAnswers    int // on end only
	Percentage        int // on end only
}

// SessionEvent is a stored session lifecycle event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to the session log.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns events newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
}
