package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/session"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

const noQuestionsMsg = "No questions available for this selection."

// maxContentWidth keeps long question text readable on wide terminals.
const maxContentWidth = 80

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m Model) render() string {
	switch {
	case m.err != nil:
		return theme.Incorrect.Render("Error: " + m.err.Error())
	case m.result != nil:
		return m.renderResult(*m.result)
	case m.sess == nil || m.finishing:
		return theme.Hint.Render("Loading...")
	case m.feedback != nil:
		return m.renderFeedback(*m.feedback)
	case m.snap.Current != nil:
		return m.renderQuestion()
	}
	return ""
}

func (m Model) contentWidth() int {
	if m.width > 0 && m.width < maxContentWidth {
		return m.width
	}
	return maxContentWidth
}

func (m Model) renderQuestion() string {
	p := m.snap.Current
	q := p.Question

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d of %d", m.snap.Index+1, m.snap.Total)))
	b.WriteString("  ")
	b.WriteString(theme.Meta.Render(fmt.Sprintf("Score %d", m.snap.Score)))
	b.WriteString("\n")
	b.WriteString(theme.Meta.Render(metadata(q)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(m.contentWidth()).Render(q.Text))
	b.WriteString("\n\n")

	if q.Type == question.TypeNumeric {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("enter submit · tab skip · shift+tab back · esc finish · ctrl+r restart"))
		return b.String()
	}

	b.WriteString(m.choice.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("1-%d or ↑/↓ enter answer · tab skip · shift+tab back · esc finish · ctrl+r restart",
		len(m.choice.Options))))
	return b.String()
}

// metadata joins the non-empty category, source and ID of q.
func metadata(q question.Question) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{q.Category, q.Source, q.ID} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderFeedback(fb session.Feedback) string {
	var b strings.Builder
	if fb.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect. The correct answer is: " + fb.CorrectAnswer))
	}
	b.WriteString("\n")
	if fb.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(m.contentWidth()).Render(fb.Explanation))
		b.WriteString("\n")
	}
	if fb.Reference != "" {
		b.WriteString("\n")
		b.WriteString(theme.Meta.Render("Reference: " + fb.Reference))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press any key to continue"))
	return b.String()
}

func (m Model) renderResult(res session.Result) string {
	if res.NoQuestions {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.Body.Render(noQuestionsMsg),
			"",
			theme.Hint.Render("Press any key to exit"),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Quiz complete"),
		"",
		theme.Body.Render(fmt.Sprintf("You answered %d out of %d correctly.", res.Score, res.Total)),
		theme.Body.Render(fmt.Sprintf("Score: %d%%", res.Percentage)),
		"",
		theme.Hint.Render("r play again · any other key quits"),
	)
}
