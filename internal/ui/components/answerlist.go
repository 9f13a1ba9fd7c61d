package components

import (
	"charm.land/lipgloss/v2"

	"github.com/mpiekarski/quizdeck/internal/ui/theme"
)

// AnswerOption is one selectable row in an AnswerList.
type AnswerOption struct {
	ID   string
	Text string
}

// AnswerList renders the answers of a question as radio buttons or
// checkboxes. Selection and reveal state are owned by the caller.
type AnswerList struct {
	Options     []AnswerOption
	Multi       bool
	Highlighted int

	// Selected and Correct are keyed by answer ID. Correct is only
	// consulted once Checked is set.
	Selected map[string]bool
	Correct  map[string]bool
	Checked  bool
}

// NewAnswerList creates an answer list with the first row highlighted.
func NewAnswerList(options []AnswerOption, multi bool) AnswerList {
	return AnswerList{
		Options: options,
		Multi:   multi,
	}
}

// MoveUp moves the highlight up one row.
func (a *AnswerList) MoveUp() {
	if a.Highlighted > 0 {
		a.Highlighted--
	}
}

// MoveDown moves the highlight down one row.
func (a *AnswerList) MoveDown() {
	if a.Highlighted < len(a.Options)-1 {
		a.Highlighted++
	}
}

// HighlightedID returns the ID of the highlighted row, or "" when the
// list is empty.
func (a AnswerList) HighlightedID() string {
	if a.Highlighted < 0 || a.Highlighted >= len(a.Options) {
		return ""
	}
	return a.Options[a.Highlighted].ID
}

// View renders the list.
func (a AnswerList) View() string {
	var s string
	for i, opt := range a.Options {
		marker := a.marker(opt.ID)

		prefix := "  "
		if i == a.Highlighted && !a.Checked {
			prefix = "▸ "
		}

		line := prefix + marker + " " + opt.Text

		s += a.rowStyle(i, opt.ID).Render(line) + "\n"
	}
	return s
}

func (a AnswerList) marker(id string) string {
	sel := a.Selected[id]
	if a.Multi {
		if sel {
			return "[x]"
		}
		return "[ ]"
	}
	if sel {
		return "(●)"
	}
	return "( )"
}

func (a AnswerList) rowStyle(i int, id string) lipgloss.Style {
	if a.Checked {
		switch {
		case a.Correct[id]:
			return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case a.Selected[id]:
			return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}
	if i == a.Highlighted {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.Text)
}
