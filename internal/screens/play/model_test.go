package play

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/store"
)

type identity struct{}

func (identity) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

var shiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}

var arkQuestion = question.Question{
	ID: "7", Category: "People", Source: "Genesis", Text: "Who built the ark?",
	Type: question.TypeMultipleChoice, Options: []string{"Noah", "Abraham"},
	Answer: "Noah", Explanation: "God told Noah to build it.", Reference: "Genesis 6:14",
}

func openTestStore(t *testing.T, qs ...question.Question) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "play.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	if len(qs) > 0 {
		require.NoError(t, s.Questions().Save(context.Background(), qs...))
	}
	return s
}

// settle runs cmd and feeds session messages back into m until a command
// yields something else, which is returned.
func settle(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Msg) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case sessionStartedMsg, sessionFinishedMsg:
		default:
			return m, msg
		}
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		cmd = nextCmd
	}
	return m, nil
}

func startModel(t *testing.T, s *store.Store, req quiz.Request) Model {
	t.Helper()
	m := New(context.Background(), quiz.NewStoreService(s, quiz.WithShuffler(identity{})), req)
	m, _ = settle(t, m, m.Init())
	return m
}

// press sends a key and runs any session command it starts.
func press(t *testing.T, m Model, key tea.KeyPressMsg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(key)
	return settle(t, next.(Model), cmd)
}

// typeText enters text without running the input's cursor commands.
func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(keyPress(r))
		m = next.(Model)
	}
	return m
}

func viewText(m Model) string {
	return ansi.Strip(m.render())
}

func TestPlay_MultipleChoiceByNumber(t *testing.T) {
	s := openTestStore(t, arkQuestion)
	m := startModel(t, s, quiz.Request{Limit: 5})

	view := viewText(m)
	assert.Contains(t, view, "Question 1 of 1")
	assert.Contains(t, view, "People · Genesis · 7")
	assert.Contains(t, view, "4) N/A")

	m, _ = press(t, m, keyPress('9'))
	require.Nil(t, m.feedback, "out of range option is ignored")

	m, _ = press(t, m, keyPress('1'))
	require.NotNil(t, m.feedback)
	assert.True(t, m.feedback.Correct)
	view = viewText(m)
	assert.Contains(t, view, "Correct!")
	assert.Contains(t, view, "Reference: Genesis 6:14")

	m, _ = press(t, m, keyPress(' '))
	require.NotNil(t, m.result)
	assert.Contains(t, viewText(m), "You answered 1 out of 1 correctly.")
	assert.Contains(t, viewText(m), "Score: 100%")
}

func TestPlay_MultipleChoiceByArrows(t *testing.T) {
	s := openTestStore(t, arkQuestion)
	m := startModel(t, s, quiz.Request{Limit: 5})

	m, _ = press(t, m, specialKey(tea.KeyDown))
	m, _ = press(t, m, specialKey(tea.KeyEnter))
	require.NotNil(t, m.feedback)
	assert.False(t, m.feedback.Correct)
	assert.Contains(t, viewText(m), "Incorrect. The correct answer is: Noah")
}

func TestPlay_TrueFalse(t *testing.T) {
	s := openTestStore(t, question.Question{
		ID: "t1", Text: "Jonah was swallowed by a fish.", Type: question.TypeTrueFalse, Answer: "True",
	})
	m := startModel(t, s, quiz.Request{Limit: 5})
	assert.Contains(t, viewText(m), "2) False")

	m, _ = press(t, m, keyPress('2'))
	require.NotNil(t, m.feedback)
	assert.False(t, m.feedback.Correct)

	m, _ = press(t, m, keyPress(' '))
	require.NotNil(t, m.result)
	assert.Equal(t, 0, m.result.Score)
	assert.Equal(t, 1, m.result.Total)
}

func TestPlay_NumericWords(t *testing.T) {
	s := openTestStore(t, question.Question{
		ID: "n1", Text: "How many apostles?", Type: question.TypeNumeric, Answer: "12",
	})
	m := startModel(t, s, quiz.Request{Limit: 5})

	m, _ = press(t, m, specialKey(tea.KeyEnter))
	assert.Nil(t, m.feedback, "blank input is not submitted")

	m = typeText(m, "twelve")
	assert.Equal(t, "twelve", m.input.Value())

	m, _ = press(t, m, specialKey(tea.KeyEnter))
	require.NotNil(t, m.feedback)
	assert.True(t, m.feedback.Correct)
}

func TestPlay_SkipAndGoBack(t *testing.T) {
	s := openTestStore(t, arkQuestion, question.Question{
		ID: "t1", Text: "Jonah was swallowed by a fish.", Type: question.TypeTrueFalse, Answer: "True",
	})
	m := startModel(t, s, quiz.Request{Limit: 5})
	first := m.snap.Current.Question.ID

	m, _ = press(t, m, specialKey(tea.KeyTab))
	assert.Equal(t, 1, m.snap.Index)
	assert.NotEqual(t, first, m.snap.Current.Question.ID)

	m, _ = press(t, m, shiftTab)
	assert.Equal(t, 0, m.snap.Index)
	assert.Equal(t, first, m.snap.Current.Question.ID)

	m, _ = press(t, m, specialKey(tea.KeyTab))
	m, _ = press(t, m, specialKey(tea.KeyTab))
	require.NotNil(t, m.result, "skipping the last question finishes")
	assert.Equal(t, 0, m.result.Score)
	assert.Equal(t, 2, m.result.Total)
}

func TestPlay_FinishEarlyRecordsUsage(t *testing.T) {
	s := openTestStore(t, arkQuestion)
	m := startModel(t, s, quiz.Request{Limit: 5, ExcludeUsed: true})

	m, _ = press(t, m, specialKey(tea.KeyEscape))
	require.NotNil(t, m.result)
	assert.Contains(t, viewText(m), "You answered 0 out of 1 correctly.")

	last, err := s.Used().LastUsed(context.Background(), "7")
	require.NoError(t, err)
	assert.False(t, last.IsZero())

	_, msg := press(t, m, keyPress('q'))
	assert.Equal(t, tea.QuitMsg{}, msg)
}

func TestPlay_RestartDoesNotRecordUsage(t *testing.T) {
	s := openTestStore(t, arkQuestion)
	m := startModel(t, s, quiz.Request{Limit: 5, ExcludeUsed: true})
	before := m.sess

	m, _ = press(t, m, ctrlKey('r'))
	require.NotNil(t, m.sess)
	assert.NotSame(t, before, m.sess)
	assert.Equal(t, "7", m.snap.Current.Question.ID)

	last, err := s.Used().LastUsed(context.Background(), "7")
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestPlay_NoQuestions(t *testing.T) {
	s := openTestStore(t)
	m := startModel(t, s, quiz.Request{Limit: 5})

	require.NotNil(t, m.result)
	assert.True(t, m.result.NoQuestions)
	assert.Contains(t, viewText(m), noQuestionsMsg)

	_, msg := press(t, m, keyPress('r'))
	assert.Equal(t, tea.QuitMsg{}, msg, "there is nothing to replay")
}

func TestPlay_ReplayExcludesUsed(t *testing.T) {
	s := openTestStore(t, arkQuestion)
	never := question.ResetNever
	m := startModel(t, s, quiz.Request{Limit: 5, ExcludeUsed: true, ResetPeriod: &never})
	assert.Nil(t, m.req.ResetPeriod, "reset period is saved once")

	m, _ = press(t, m, keyPress('1'))
	m, _ = press(t, m, keyPress(' '))
	require.NotNil(t, m.result)
	assert.Equal(t, 100, m.result.Percentage)

	m, _ = press(t, m, keyPress('r'))
	require.NotNil(t, m.result)
	assert.True(t, m.result.NoQuestions)
}

func TestPlay_CtrlCFinishesAndQuits(t *testing.T) {
	s := openTestStore(t, arkQuestion)
	m := startModel(t, s, quiz.Request{Limit: 5, ExcludeUsed: true})

	m, msg := press(t, m, ctrlKey('c'))
	assert.Equal(t, tea.QuitMsg{}, msg)
	require.NotNil(t, m.result)

	last, err := s.Used().LastUsed(context.Background(), "7")
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestPlay_StartErrorQuits(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	m := New(context.Background(), quiz.NewStoreService(s), quiz.Request{Limit: 5})
	m, msg := settle(t, m, m.Init())
	assert.Equal(t, tea.QuitMsg{}, msg)
	assert.ErrorIs(t, m.Err(), quiz.ErrStoreUnavailable)
	assert.Contains(t, viewText(m), "Error: start quiz")
}
