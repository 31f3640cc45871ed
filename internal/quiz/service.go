// Package quiz connects quiz sessions to the question store: it starts a
// session from a fresh batch and records the outcome when it ends.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/triviaz/internal/answer"
	"github.com/abhisek/triviaz/internal/logging"
	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/session"
	"github.com/abhisek/triviaz/internal/store"
)

// ErrStoreUnavailable wraps any failure to read the question bank or its
// settings while starting a session.
var ErrStoreUnavailable = errors.New("question store unavailable")

// Request describes the batch a new session is built from.
type Request struct {
	Limit       int
	Difficulty  question.Difficulty
	ExcludeUsed bool

	// ResetPeriod, when non-nil, is persisted before the fetch and then
	// applies to this and later sessions.
	ResetPeriod *question.ResetPeriod
}

// Service starts and finishes quiz sessions against a store.
type Service struct {
	questions store.QuestionRepo
	used      store.UsedRepo
	settings  store.SettingsRepo
	events    store.EventRepo
	shuffler  answer.Shuffler

	mu         sync.Mutex
	difficulty map[string]question.Difficulty
}

// Option configures a Service.
type Option func(*Service)

// WithShuffler sets the option shuffler handed to every new session.
func WithShuffler(sh answer.Shuffler) Option {
	return func(s *Service) { s.shuffler = sh }
}

// NewService creates a Service. events may be nil to skip the session log.
func NewService(questions store.QuestionRepo, used store.UsedRepo, settings store.SettingsRepo, events store.EventRepo, opts ...Option) *Service {
	s := &Service{
		questions:  questions,
		used:       used,
		settings:   settings,
		events:     events,
		difficulty: make(map[string]question.Difficulty),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreService creates a Service backed by every repository of st.
func NewStoreService(st *store.Store, opts ...Option) *Service {
	return NewService(st.Questions(), st.Used(), st.Settings(), st.Events(), opts...)
}

// Start fetches a batch and builds a session over it. On any store
// failure no session is built and the error wraps ErrStoreUnavailable.
// An empty batch yields a session that is already finished.
func (s *Service) Start(ctx context.Context, req Request) (*session.Session, error) {
	log := logging.FromContext(ctx)

	if req.ResetPeriod != nil {
		if err := s.settings.SetResetPeriod(ctx, *req.ResetPeriod); err != nil {
			log.Error().Err(err).Msg("failed to save reset period")
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	period, err := s.settings.ResetPeriod(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read reset period")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	batch, err := s.questions.FetchBatch(ctx, store.BatchRequest{
		Limit:       req.Limit,
		Difficulty:  req.Difficulty,
		ExcludeUsed: req.ExcludeUsed,
		ResetPeriod: period,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch questions")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	opts := []session.Option{session.WithLogger(log)}
	if s.shuffler != nil {
		opts = append(opts, session.WithShuffler(s.shuffler))
	}
	sess := session.New(batch, opts...)

	log.Info().
		Str("session_id", sess.ID()).
		Str("difficulty", req.Difficulty.String()).
		Str("reset_period", period.String()).
		Int("questions", sess.Total()).
		Msg("session started")

	s.mu.Lock()
	s.difficulty[sess.ID()] = req.Difficulty
	s.mu.Unlock()

	s.logEvent(ctx, store.SessionEventData{
		SessionID:      sess.ID(),
		Action:         store.ActionStart,
		Difficulty:     req.Difficulty.String(),
		QuestionsTotal: sess.Total(),
	})
	return sess, nil
}

// Finish ends sess, reports its questions as used and logs the outcome.
// A failure to record usage is logged and carried on the result.
func (s *Service) Finish(ctx context.Context, sess *session.Session) session.Result {
	res := sess.Finish(ctx, s.used)

	s.mu.Lock()
	d, started := s.difficulty[sess.ID()]
	delete(s.difficulty, sess.ID())
	s.mu.Unlock()

	if !started {
		return res
	}

	log := logging.FromContext(ctx)
	log.Info().
		Str("session_id", res.SessionID).
		Int("score", res.Score).
		Int("total", res.Total).
		Int("percentage", res.Percentage).
		Msg("session finished")

	s.logEvent(ctx, store.SessionEventData{
		SessionID:         res.SessionID,
		Action:            store.ActionEnd,
		Difficulty:        d.String(),
		QuestionsTotal:    res.Total,
		QuestionsAnswered: res.Answered,
		CorrectAnswers:    res.Score,
		Percentage:        res.Percentage,
	})
	return res
}

func (s *Service) logEvent(ctx context.Context, data store.SessionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).
			Str("session_id", data.SessionID).
			Str("action", data.Action).
			Msg("failed to log session event")
	}
}
