package quiz

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/session"
	"github.com/abhisek/triviaz/internal/store"
)

type fakeQuestions struct {
	batch []question.Question
	err   error
	reqs  []store.BatchRequest
}

func (f *fakeQuestions) FetchBatch(_ context.Context, req store.BatchRequest) ([]question.Question, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	if req.Limit < len(f.batch) {
		return f.batch[:req.Limit], nil
	}
	return f.batch, nil
}

func (f *fakeQuestions) Save(_ context.Context, _ ...question.Question) error { return nil }

func (f *fakeQuestions) Count(_ context.Context, _ question.Difficulty) (int, error) {
	return len(f.batch), nil
}

type fakeUsed struct {
	marked [][]string
	err    error
}

func (f *fakeUsed) MarkUsed(_ context.Context, ids []string) error {
	f.marked = append(f.marked, ids)
	return f.err
}

func (f *fakeUsed) LastUsed(_ context.Context, _ string) (time.Time, error) { return time.Time{}, nil }

func (f *fakeUsed) Count(_ context.Context, _ question.ResetPeriod) (int, error) { return 0, nil }

func (f *fakeUsed) Clear(_ context.Context) error { return nil }

type fakeSettings struct {
	period question.ResetPeriod
	err    error
}

func (f *fakeSettings) ResetPeriod(_ context.Context) (question.ResetPeriod, error) {
	return f.period, f.err
}

func (f *fakeSettings) SetResetPeriod(_ context.Context, p question.ResetPeriod) error {
	if f.err != nil {
		return f.err
	}
	f.period = p
	return nil
}

type fakeEvents struct {
	events []store.SessionEventData
	err    error
}

func (f *fakeEvents) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, data)
	return nil
}

func (f *fakeEvents) QuerySessionEvents(_ context.Context, _ store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, nil
}

type identity struct{}

func (identity) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func bank() []question.Question {
	return []question.Question{
		{ID: "1", Text: "Who built the ark?", Type: question.TypeMultipleChoice,
			Options: []string{"Noah", "Abraham", "Moses", "David"}, Answer: "Noah"},
		{ID: "2", Text: "Goliath was a giant.", Type: question.TypeTrueFalse, Answer: "True"},
		{ID: "3", Text: "How many plagues struck Egypt?", Type: question.TypeNumeric, Answer: "ten"},
	}
}

type fixture struct {
	questions *fakeQuestions
	used      *fakeUsed
	settings  *fakeSettings
	events    *fakeEvents
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		questions: &fakeQuestions{batch: bank()},
		used:      &fakeUsed{},
		settings:  &fakeSettings{period: question.Reset60Days},
		events:    &fakeEvents{},
	}
	f.svc = NewService(f.questions, f.used, f.settings, f.events, WithShuffler(identity{}))
	return f
}

func TestStart_PassesPersistedPeriod(t *testing.T) {
	f := newFixture()

	sess, err := f.svc.Start(context.Background(), Request{
		Limit: 2, Difficulty: question.DifficultyEasy, ExcludeUsed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Total())
	assert.Equal(t, session.PhaseAwaitingAnswer, sess.Phase())

	require.Len(t, f.questions.reqs, 1)
	assert.Equal(t, store.BatchRequest{
		Limit: 2, Difficulty: question.DifficultyEasy, ExcludeUsed: true,
		ResetPeriod: question.Reset60Days,
	}, f.questions.reqs[0])

	require.Len(t, f.events.events, 1)
	assert.Equal(t, store.ActionStart, f.events.events[0].Action)
	assert.Equal(t, sess.ID(), f.events.events[0].SessionID)
	assert.Equal(t, "easy", f.events.events[0].Difficulty)
}

func TestStart_SavesRequestedPeriod(t *testing.T) {
	f := newFixture()
	never := question.ResetNever

	_, err := f.svc.Start(context.Background(), Request{Limit: 3, ExcludeUsed: true, ResetPeriod: &never})
	require.NoError(t, err)
	assert.Equal(t, question.ResetNever, f.settings.period)
	assert.Equal(t, question.ResetNever, f.questions.reqs[0].ResetPeriod)
}

func TestStart_StoreFailures(t *testing.T) {
	boom := errors.New("disk on fire")
	never := question.ResetNever

	tests := []struct {
		name  string
		setup func(*fixture)
		req   Request
	}{
		{"fetch", func(f *fixture) { f.questions.err = boom }, Request{Limit: 3}},
		{"read period", func(f *fixture) { f.settings.err = boom }, Request{Limit: 3}},
		{"save period", func(f *fixture) { f.settings.err = boom }, Request{Limit: 3, ResetPeriod: &never}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			sess, err := f.svc.Start(context.Background(), tt.req)
			assert.Nil(t, sess)
			assert.ErrorIs(t, err, ErrStoreUnavailable)
			assert.ErrorIs(t, err, boom)
			assert.Empty(t, f.events.events)
		})
	}
}

func TestStart_EmptyBatch(t *testing.T) {
	f := newFixture()
	f.questions.batch = nil

	sess, err := f.svc.Start(context.Background(), Request{Limit: 5})
	require.NoError(t, err)

	snap := sess.Snapshot()
	assert.True(t, snap.Finished)
	assert.True(t, snap.NoQuestions)

	res := f.svc.Finish(context.Background(), sess)
	assert.True(t, res.NoQuestions)
	assert.Empty(t, f.used.marked)
}

func TestFinish_RecordsUsageAndEndEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.svc.Start(ctx, Request{Limit: 3, Difficulty: question.DifficultyMixed})
	require.NoError(t, err)

	sess.SubmitMultipleChoice(0) // Noah
	sess.Skip()

	res := f.svc.Finish(ctx, sess)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 33, res.Percentage)
	assert.NoError(t, res.RecordErr)

	require.Len(t, f.used.marked, 1)
	assert.Equal(t, []string{"1", "2", "3"}, f.used.marked[0])

	require.Len(t, f.events.events, 2)
	end := f.events.events[1]
	assert.Equal(t, store.ActionEnd, end.Action)
	assert.Equal(t, "mixed", end.Difficulty)
	assert.Equal(t, 1, end.QuestionsAnswered)
	assert.Equal(t, 1, end.CorrectAnswers)
	assert.Equal(t, 33, end.Percentage)

	again := f.svc.Finish(ctx, sess)
	assert.Equal(t, res.Score, again.Score)
	assert.Len(t, f.used.marked, 1)
	assert.Len(t, f.events.events, 2)
}

func TestFinish_SwallowsFailures(t *testing.T) {
	f := newFixture()
	f.used.err = errors.New("read-only")
	f.events.err = errors.New("event log full")
	ctx := context.Background()

	sess, err := f.svc.Start(ctx, Request{Limit: 1})
	require.NoError(t, err)
	sess.SubmitMultipleChoice(0)

	res := f.svc.Finish(ctx, sess)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 100, res.Percentage)
	assert.Error(t, res.RecordErr)
}

func TestService_AgainstSQLite(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Questions().Save(ctx, bank()...))

	svc := NewStoreService(st, WithShuffler(identity{}))
	never := question.ResetNever

	first, err := svc.Start(ctx, Request{Limit: 2, ExcludeUsed: true, ResetPeriod: &never})
	require.NoError(t, err)
	require.Equal(t, 2, first.Total())
	svc.Finish(ctx, first)

	second, err := svc.Start(ctx, Request{Limit: 10, ExcludeUsed: true})
	require.NoError(t, err)
	require.Equal(t, 1, second.Total())
	for _, q := range first.Questions() {
		assert.NotEqual(t, q.ID, second.Questions()[0].ID)
	}
	svc.Finish(ctx, second)

	third, err := svc.Start(ctx, Request{Limit: 10, ExcludeUsed: true})
	require.NoError(t, err)
	assert.True(t, third.Snapshot().NoQuestions)

	events, err := st.Events().QuerySessionEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 5)
}
