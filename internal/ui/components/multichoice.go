package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

// MultiChoice is a numbered option picker. Options can be chosen with
// their number key or with the arrows and Enter.
type MultiChoice struct {
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a picker over options in display order.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:     options,
		ChosenIndex: -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.Submitted = true
			m.ChosenIndex = n - 1
		}
	}

	return m, nil
}

// View renders the options with the cursor on the selected one.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		style := theme.Unselected
		if i == m.Selected {
			prefix = "> "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d) %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
