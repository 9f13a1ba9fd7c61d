// Package home is the deck overview screen: every stored set as a card
// with its progress, plus entry points for taking, creating, editing,
// and deleting sets.
package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/router"
	"github.com/mpiekarski/quizdeck/internal/screen"
	"github.com/mpiekarski/quizdeck/internal/screens/editor"
	sessionscreen "github.com/mpiekarski/quizdeck/internal/screens/session"
	"github.com/mpiekarski/quizdeck/internal/store"
	"github.com/mpiekarski/quizdeck/internal/ui/layout"
)

// setsLoadedMsg carries the result of the async set load.
type setsLoadedMsg struct {
	sets []*quiz.Set
	err  error
}

// setDeletedMsg carries the result of a delete.
type setDeletedMsg struct {
	err error
}

// HomeScreen lists all stored quiz sets.
type HomeScreen struct {
	repo store.SetRepo

	sets     []*quiz.Set
	selected int
	loading  bool
	errMsg   string

	confirmDelete bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)
var _ screen.EscConsumer = (*HomeScreen)(nil)

// New creates the home screen over the given repo.
func New(repo store.SetRepo) *HomeScreen {
	return &HomeScreen{
		repo:    repo,
		loading: true,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	h.loading = true
	return h.loadSets()
}

func (h *HomeScreen) Title() string {
	return "Decks"
}

func (h *HomeScreen) Status() string {
	if h.loading {
		return ""
	}
	return fmt.Sprintf("%d sets  ", len(h.sets))
}

// WantsEsc claims esc while the delete prompt is up so it cancels the
// prompt instead of being swallowed by the app.
func (h *HomeScreen) WantsEsc() bool {
	return h.confirmDelete
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Take quiz"},
		{Key: "N", Description: "New"},
		{Key: "E", Description: "Edit"},
		{Key: "D", Description: "Delete"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) loadSets() tea.Cmd {
	return func() tea.Msg {
		sets, err := h.repo.List(context.Background())
		return setsLoadedMsg{sets: sets, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		h.loading = false
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.sets = msg.sets
		if h.selected >= len(h.sets) {
			h.selected = len(h.sets) - 1
		}
		if h.selected < 0 {
			h.selected = 0
		}
		return h, nil

	case setDeletedMsg:
		h.confirmDelete = false
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		return h, h.loadSets()

	case tea.KeyMsg:
		return h.handleKey(msg)
	}

	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if h.confirmDelete {
		switch key {
		case "y", "Y":
			set := h.current()
			if set == nil {
				h.confirmDelete = false
				return h, nil
			}
			id := set.ID
			return h, func() tea.Msg {
				return setDeletedMsg{err: h.repo.Delete(context.Background(), id)}
			}
		case "n", "N", "esc":
			h.confirmDelete = false
		}
		return h, nil
	}

	switch key {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < len(h.sets)-1 {
			h.selected++
		}
	case "enter":
		if set := h.current(); set != nil {
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(set, h.repo)}
			}
		}
	case "n":
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: editor.New(h.repo, nil)}
		}
	case "e":
		if set := h.current(); set != nil {
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: editor.New(h.repo, set)}
			}
		}
	case "d":
		if h.current() != nil {
			h.confirmDelete = true
		}
	case "q":
		return h, tea.Quit
	}

	return h, nil
}

func (h *HomeScreen) current() *quiz.Set {
	if h.selected < 0 || h.selected >= len(h.sets) {
		return nil
	}
	return h.sets[h.selected]
}
