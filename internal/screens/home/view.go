package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/ui/components"
	"github.com/mpiekarski/quizdeck/internal/ui/theme"
)

const cardWidth = 56

func (h *HomeScreen) View(width, height int) string {
	if h.loading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading decks...")
	}
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  " + h.errMsg)
	}
	if len(h.sets) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No quiz sets yet.\n\n  Press N to create one.")
	}

	var cards []string
	for i, set := range h.sets {
		cards = append(cards, h.renderCard(set, i == h.selected))
	}

	body := strings.Join(cards, "\n")

	if h.confirmDelete {
		if set := h.current(); set != nil {
			body += "\n\n" + lipgloss.NewStyle().
				Foreground(theme.Error).
				Bold(true).
				Render(fmt.Sprintf("Delete %q and its progress? [y/n]", set.Name))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// renderCard renders one set as a bordered card with its progress.
func (h *HomeScreen) renderCard(set *quiz.Set, selected bool) string {
	name := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(set.Name)

	answered := set.AnsweredCount()
	total := len(set.Questions)

	var percent float64
	if total > 0 {
		percent = float64(answered) / float64(total)
	}
	bar := components.NewProgressBar("", percent, false, cardWidth-18).View()

	statusText := fmt.Sprintf("%d/%d", answered, total)
	status := lipgloss.NewStyle().Foreground(theme.TextDim).Render(statusText)

	line := bar + "  " + status

	if set.Completed {
		sum := quiz.Summarize(set.Questions, set.Progress)
		line += "  " + lipgloss.NewStyle().
			Foreground(theme.Success).
			Render(fmt.Sprintf("✓ %d%%", sum.Percentage))
	}

	borderColor := theme.Border
	if selected {
		borderColor = theme.Primary
	}

	return lipgloss.NewStyle().
		Width(cardWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(name + "\n" + line)
}
