package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mpiekarski/quizdeck/internal/ui/components"
	"github.com/mpiekarski/quizdeck/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.machine.ShowingSummary() {
		return s.renderSummary(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question with its answer rows.
func (s *SessionScreen) renderQuestion(width int) string {
	q, ok := s.machine.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder

	// Position line.
	posLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.machine.Index()+1, s.machine.DisplayCount()))

	var posRight string
	if s.machine.IsReviewPass() {
		posRight = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("Reviewing incorrect  ")
	}

	posLine := posLeft
	rightPad := width - lipgloss.Width(posLeft) - lipgloss.Width(posRight) - 2
	if rightPad > 0 {
		posLine += strings.Repeat(" ", rightPad) + posRight
	}

	b.WriteString(posLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question text.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n")

	if q.AllowsMultipleSelection() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Select all that apply"))
	}
	b.WriteString("\n\n")

	// Answer rows with live selection state from the machine.
	answers := s.answers
	answers.Checked = s.machine.Checked()
	answers.Selected = make(map[string]bool, len(q.Answers))
	answers.Correct = make(map[string]bool, len(q.Answers))
	for _, a := range q.Answers {
		if s.machine.IsSelected(a.ID) {
			answers.Selected[a.ID] = true
		}
		if a.Correct {
			answers.Correct[a.ID] = true
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answers.View()))

	// Verdict after checking.
	if s.machine.Checked() {
		b.WriteString("\n")
		sel := s.machine.Set().Progress[q.ID]
		verdict := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center)
		if sel.Equal(q.CorrectAnswerIDs()) && len(q.CorrectAnswerIDs()) > 0 {
			b.WriteString(verdict.Foreground(theme.Success).Bold(true).Render("Correct!"))
		} else {
			b.WriteString(verdict.Foreground(theme.Error).Bold(true).Render("Not quite"))
		}
	}

	if s.saveErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.saveErr))
	}

	return b.String()
}

// renderSummary renders the end-of-run summary and its menu.
func (s *SessionScreen) renderSummary(width int) string {
	sum := s.machine.Summary()

	var b strings.Builder
	b.WriteString("\n")

	headline := "Quiz complete"
	headColor := theme.Primary
	if s.machine.AllPerfect() {
		headline = "Perfect score!"
		headColor = theme.Success
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(headColor).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%d correct   %d incorrect   %d%%",
		sum.Correct, sum.Incorrect, sum.Percentage)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n")

	var fraction float64
	if sum.Total > 0 {
		fraction = float64(sum.Correct) / float64(sum.Total)
	}
	bar := components.NewProgressBar("", fraction, false, min(width-8, 48)).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.saveErr))
	}

	return b.String()
}
