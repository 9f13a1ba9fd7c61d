package editor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mpiekarski/quizdeck/internal/ui/theme"
)

func (e *EditorScreen) View(width, height int) string {
	if e.mode == modeQuestion {
		return e.renderQuestionForm(width)
	}
	return e.renderOverview(width)
}

func (e *EditorScreen) renderOverview(width int) string {
	var b strings.Builder

	b.WriteString(e.fieldLabel("Name", e.focus == 0))
	b.WriteString("  ")
	if e.focus == 0 {
		b.WriteString(e.name.View())
	} else {
		b.WriteString(e.name.ViewInactive())
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Questions (%d)", len(e.draft.Questions))))
	b.WriteString("\n")

	if len(e.draft.Questions) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  none yet, press Ctrl+N to add one"))
		b.WriteString("\n")
	}

	for i, q := range e.draft.Questions {
		focused := e.focus == i+1
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if focused {
			prefix = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%d. %s", prefix, i+1, truncate(q.Text, width-20))
		detail := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%d answers)", len(q.Answers)))
		b.WriteString(style.Render(line) + detail + "\n")
	}

	if e.saving {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saving..."))
	}
	if e.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func (e *EditorScreen) renderQuestionForm(width int) string {
	f := &e.form
	var b strings.Builder

	b.WriteString(e.fieldLabel("Question", f.focus == 0))
	b.WriteString("  ")
	if f.focus == 0 {
		b.WriteString(f.text.View())
	} else {
		b.WriteString(f.text.ViewInactive())
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("Answers"))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("mark at least one correct"))
	b.WriteString("\n")

	for i := range f.answers {
		focused := f.focus == i+1

		marker := "[ ]"
		markerStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
		if f.draft.Answers[i].Correct {
			marker = "[✓]"
			markerStyle = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		}

		prefix := "  "
		if focused {
			prefix = "▸ "
		}

		b.WriteString(prefix + markerStyle.Render(marker) + " ")
		if focused {
			b.WriteString(f.answers[i].View())
		} else {
			b.WriteString(f.answers[i].ViewInactive())
		}
		b.WriteString("\n")
	}

	if e.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func (e *EditorScreen) fieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return style.Render(label + ":")
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
