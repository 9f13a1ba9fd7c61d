// Package session is the quiz-taking screen: one question at a time
// with answer selection, check feedback, navigation, and the end-of-run
// summary with its review options.
package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/router"
	"github.com/mpiekarski/quizdeck/internal/screen"
	sess "github.com/mpiekarski/quizdeck/internal/session"
	"github.com/mpiekarski/quizdeck/internal/ui/components"
	"github.com/mpiekarski/quizdeck/internal/ui/layout"
)

// SessionScreen implements screen.Screen for an active quiz run.
type SessionScreen struct {
	machine *sess.Machine
	answers components.AnswerList
	menu    components.Menu
	saveErr string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New starts a session over the given set. The saver receives the
// working copy on every state-changing operation.
func New(set *quiz.Set, saver sess.Saver) *SessionScreen {
	s := &SessionScreen{
		machine: sess.New(set, saver),
	}
	if s.machine.ShowingSummary() {
		s.menu = components.NewMenu(s.summaryItems())
	} else {
		s.enterQuestion()
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

func (s *SessionScreen) Title() string {
	return s.machine.Set().Name
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.machine.ShowingSummary() {
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
		if !s.machine.AllPerfect() {
			hints = append(hints, layout.KeyHint{Key: "N", Description: "Review incorrect"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	if s.machine.Checked() {
		next := "Next"
		if s.machine.IsLastQuestion() {
			next = "Finish"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "←", Description: "Previous"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Select"},
		{Key: "Enter", Description: "Check"},
		{Key: "←", Description: "Previous"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.machine.ShowingSummary() {
		// "n" is the shortcut for the review option.
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "n" && !s.machine.AllPerfect() {
			s.recordSave(s.machine.FilterIncorrect(context.Background()))
			if s.machine.ShowingSummary() {
				s.menu = components.NewMenu(s.summaryItems())
			} else {
				s.enterQuestion()
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.answers.MoveUp()
	case "down", "j":
		s.answers.MoveDown()
	case "space":
		if id := s.answers.HighlightedID(); id != "" {
			s.machine.SelectAnswer(id)
		}
	case "enter":
		return s.handleEnter()
	case "left", "p":
		s.machine.Previous()
		s.enterQuestion()
	}

	return s, nil
}

// handleEnter checks an unchecked answer, or advances a checked one.
func (s *SessionScreen) handleEnter() (screen.Screen, tea.Cmd) {
	if !s.machine.Checked() {
		// Selecting with Enter before checking mirrors Space, so a
		// single-choice question can be answered with two Enter presses.
		if !s.machine.HasSelection() {
			if id := s.answers.HighlightedID(); id != "" {
				s.machine.SelectAnswer(id)
				return s, nil
			}
		}
		s.machine.Submit()
		return s, nil
	}

	ctx := context.Background()
	if s.machine.IsLastQuestion() {
		s.recordSave(s.machine.Finish(ctx))
		s.menu = components.NewMenu(s.summaryItems())
		return s, nil
	}
	s.recordSave(s.machine.Next(ctx))
	s.enterQuestion()
	return s, nil
}

// enterQuestion resets the answer list for the current question.
func (s *SessionScreen) enterQuestion() {
	q, ok := s.machine.CurrentQuestion()
	if !ok {
		s.answers = components.AnswerList{}
		return
	}
	opts := make([]components.AnswerOption, 0, len(q.Answers))
	for _, a := range q.Answers {
		opts = append(opts, components.AnswerOption{ID: a.ID, Text: a.Text})
	}
	s.answers = components.NewAnswerList(opts, q.AllowsMultipleSelection())
}

// summaryItems builds the summary menu for the current outcome.
func (s *SessionScreen) summaryItems() []components.MenuItem {
	var items []components.MenuItem

	if !s.machine.AllPerfect() {
		items = append(items, components.MenuItem{
			Label: "Review incorrect answers",
			Action: func() tea.Cmd {
				s.recordSave(s.machine.FilterIncorrect(context.Background()))
				if s.machine.ShowingSummary() {
					s.menu = components.NewMenu(s.summaryItems())
				} else {
					s.enterQuestion()
				}
				return nil
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "Show all questions",
			Action: func() tea.Cmd {
				s.machine.ShowAllQuestions()
				s.enterQuestion()
				return nil
			},
		},
		components.MenuItem{
			Label: "Start over",
			Action: func() tea.Cmd {
				s.recordSave(s.machine.ResetProgress(context.Background()))
				s.enterQuestion()
				return nil
			},
		},
		components.MenuItem{
			Label: "Back to decks",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PopScreenMsg{} }
			},
		},
	)

	return items
}

func (s *SessionScreen) recordSave(err error) {
	if err != nil {
		s.saveErr = "Saving failed: " + err.Error()
	} else {
		s.saveErr = ""
	}
}
