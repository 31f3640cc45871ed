package play

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/answer"
	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/session"
	"github.com/abhisek/triviaz/internal/ui/components"
)

// numericCharLimit caps free-text answers such as "one hundred twenty".
const numericCharLimit = 40

// Model is the quiz screen. It owns one session at a time and replaces it
// on restart.
type Model struct {
	ctx context.Context
	svc *quiz.Service
	req quiz.Request

	sess *session.Session
	snap session.Snapshot

	choice components.MultiChoice
	input  components.TextInput

	// feedback is shown after a submission until the next key press.
	feedback *session.Feedback
	result   *session.Result

	finishing    bool
	quitOnFinish bool
	err          error
	width        int
}

// New creates the quiz screen. A reset period in req is saved by the
// first session only.
func New(ctx context.Context, svc *quiz.Service, req quiz.Request) Model {
	return Model{ctx: ctx, svc: svc, req: req}
}

// Run plays quizzes on in/out until the user quits.
func Run(ctx context.Context, svc *quiz.Service, req quiz.Request, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, svc, req),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run quiz: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// Err returns the error that stopped the screen, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return m.start()
}

func (m Model) start() tea.Cmd {
	ctx, svc, req := m.ctx, m.svc, m.req
	return func() tea.Msg {
		sess, err := svc.Start(ctx, req)
		return sessionStartedMsg{sess: sess, err: err}
	}
}

// finish ends the current session. Keys are ignored until the result
// arrives so the session is never touched from two goroutines.
func (m *Model) finish() tea.Cmd {
	m.finishing = true
	ctx, svc, sess := m.ctx, m.svc, m.sess
	return func() tea.Msg {
		return sessionFinishedMsg{res: svc.Finish(ctx, sess)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("start quiz: %w", msg.err)
			return m, tea.Quit
		}
		m.req.ResetPeriod = nil
		m.sess = msg.sess
		m.feedback = nil
		m.result = nil
		m.setSnapshot(m.sess.Snapshot())
		if m.snap.NoQuestions {
			cmd := m.finish()
			return m, cmd
		}
		return m, nil

	case sessionFinishedMsg:
		m.finishing = false
		m.result = &msg.res
		if m.quitOnFinish {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.numericPrompt() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case m.finishing:
		return m, nil

	case m.result != nil:
		if key == "r" && !m.result.NoQuestions {
			m.sess = nil
			m.result = nil
			return m, m.start()
		}
		return m, tea.Quit

	case m.sess == nil:
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case m.feedback != nil:
		m.feedback = nil
		if m.snap.Finished {
			m.quitOnFinish = key == "ctrl+c"
			cmd := m.finish()
			return m, cmd
		}
		if key != "ctrl+c" {
			return m, nil
		}
	}

	switch key {
	case "ctrl+c":
		m.quitOnFinish = true
		cmd := m.finish()
		return m, cmd
	case "esc":
		cmd := m.finish()
		return m, cmd
	case "ctrl+r":
		// Abandoned sessions are not recorded as used.
		m.sess = nil
		return m, m.start()
	case "tab":
		return m.advance(m.sess.Skip())
	case "shift+tab":
		m.setSnapshot(m.sess.GoBack())
		return m, nil
	}

	return m.answer(msg)
}

// answer routes a key to the widget for the current question type and
// submits once the widget has an answer.
func (m Model) answer(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	p := m.snap.Current
	if p == nil {
		return m, nil
	}

	if p.Question.Type == question.TypeNumeric {
		if msg.String() != "enter" {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		return m.advance(m.sess.SubmitNumeric(text))
	}

	m.choice, _ = m.choice.Update(msg)
	if !m.choice.Submitted {
		return m, nil
	}
	if p.Question.Type == question.TypeTrueFalse {
		return m.advance(m.sess.SubmitTrueFalse(m.choice.Options[m.choice.ChosenIndex]))
	}
	return m.advance(m.sess.SubmitMultipleChoice(m.choice.ChosenIndex))
}

// advance shows a new snapshot. Without feedback to show first, a
// finished session is scored right away.
func (m Model) advance(snap session.Snapshot) (tea.Model, tea.Cmd) {
	m.feedback = snap.Feedback
	m.setSnapshot(snap)
	if m.feedback == nil && snap.Finished {
		cmd := m.finish()
		return m, cmd
	}
	return m, nil
}

// setSnapshot stores snap and builds a fresh widget for its question.
// Going back reshuffles options, so widgets are never reused.
func (m *Model) setSnapshot(snap session.Snapshot) {
	m.snap = snap
	if snap.Current == nil {
		return
	}
	switch snap.Current.Question.Type {
	case question.TypeMultipleChoice:
		m.choice = components.NewMultiChoice(snap.Current.Options)
	case question.TypeTrueFalse:
		m.choice = components.NewMultiChoice([]string{answer.TrueLabel, answer.FalseLabel})
	default:
		m.input = components.NewTextInput("Type a number (digits or words)", numericCharLimit)
	}
}

func (m Model) numericPrompt() bool {
	return m.feedback == nil && m.snap.Current != nil &&
		m.snap.Current.Question.Type == question.TypeNumeric
}
