// Package editor is the set authoring screen: a set overview with the
// name and question list, and a question form for adding or reworking
// one question at a time.
package editor

import (
	"context"

	tea "charm.land/bubbletea/v2"

	editcore "github.com/mpiekarski/quizdeck/internal/editor"
	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/router"
	"github.com/mpiekarski/quizdeck/internal/screen"
	"github.com/mpiekarski/quizdeck/internal/store"
	"github.com/mpiekarski/quizdeck/internal/ui/components"
	"github.com/mpiekarski/quizdeck/internal/ui/layout"
)

type mode int

const (
	modeOverview mode = iota
	modeQuestion
)

// savedMsg carries the result of persisting the draft.
type savedMsg struct {
	err error
}

// EditorScreen creates a new set or reworks an existing one.
type EditorScreen struct {
	repo  store.SetRepo
	draft *editcore.Draft

	mode mode

	// Overview state. Focus 0 is the name field, 1..n the questions.
	name  components.TextInput
	focus int

	// Question form state.
	form questionForm

	errMsg string
	saving bool
}

// questionForm edits one question draft inline.
type questionForm struct {
	draft     editcore.QuestionDraft
	text      components.TextInput
	answers   []components.TextInput
	editIndex int // index into draft.Questions, -1 for a new question
	focus     int // 0 = question text, 1..n = answers
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.EscConsumer = (*EditorScreen)(nil)

// New creates the editor. A nil set starts a new draft; otherwise the
// set is loaded for editing and keeps its identity on save.
func New(repo store.SetRepo, set *quiz.Set) *EditorScreen {
	var draft *editcore.Draft
	if set == nil {
		draft = editcore.NewDraft()
	} else {
		draft = editcore.EditDraft(set)
	}

	name := components.NewTextInput("Set name", 60)
	name.SetValue(draft.Name)

	return &EditorScreen{
		repo:  repo,
		draft: draft,
		name:  name,
	}
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.name.Focus()
}

func (e *EditorScreen) Title() string {
	if e.draft.IsEditing() {
		return "Edit Set"
	}
	return "New Set"
}

func (e *EditorScreen) WantsEsc() bool {
	return e.mode == modeQuestion
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	if e.mode == modeQuestion {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "Tab", Description: "Toggle correct"},
			{Key: "Ctrl+N", Description: "Add answer"},
			{Key: "Ctrl+D", Description: "Remove answer"},
			{Key: "Enter", Description: "Keep question"},
			{Key: "Esc", Description: "Discard"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "Enter", Description: "Edit question"},
		{Key: "Ctrl+N", Description: "Add question"},
		{Key: "Ctrl+D", Description: "Remove question"},
		{Key: "Ctrl+S", Description: "Save set"},
		{Key: "Esc", Description: "Back"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		e.saving = false
		if msg.err != nil {
			e.errMsg = msg.err.Error()
			return e, nil
		}
		return e, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if e.mode == modeQuestion {
			return e.updateQuestion(msg)
		}
		return e.updateOverview(msg)
	}

	return e, nil
}

func (e *EditorScreen) updateOverview(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up":
		if e.focus > 0 {
			e.focus--
		}
		return e, e.syncOverviewFocus()
	case "down":
		if e.focus < len(e.draft.Questions) {
			e.focus++
		}
		return e, e.syncOverviewFocus()
	case "enter":
		if e.focus > 0 {
			e.openQuestion(e.focus - 1)
		}
		return e, nil
	case "ctrl+n":
		e.openQuestion(-1)
		return e, nil
	case "ctrl+d":
		if e.focus > 0 {
			e.draft.RemoveQuestion(e.focus - 1)
			if e.focus > len(e.draft.Questions) {
				e.focus = len(e.draft.Questions)
			}
		}
		return e, nil
	case "ctrl+s":
		return e, e.saveSet()
	}

	// Everything else goes to the name field when it has focus.
	if e.focus == 0 {
		var cmd tea.Cmd
		e.name, cmd = e.name.Update(msg)
		e.draft.Name = e.name.Value()
		return e, cmd
	}
	return e, nil
}

func (e *EditorScreen) syncOverviewFocus() tea.Cmd {
	if e.focus == 0 {
		return e.name.Focus()
	}
	e.name.Blur()
	return nil
}

// openQuestion enters the question form, pre-filled when reworking an
// existing question.
func (e *EditorScreen) openQuestion(index int) {
	var qd editcore.QuestionDraft
	if index >= 0 && index < len(e.draft.Questions) {
		q := e.draft.Questions[index]
		qd = editcore.QuestionDraft{Text: q.Text}
		for _, a := range q.Answers {
			qd.Answers = append(qd.Answers, editcore.AnswerDraft{Text: a.Text, Correct: a.Correct})
		}
		for len(qd.Answers) < editcore.MinAnswerSlots {
			qd.Answers = append(qd.Answers, editcore.AnswerDraft{})
		}
	} else {
		index = -1
		qd = editcore.NewQuestionDraft()
	}

	text := components.NewTextInput("Question text", 120)
	text.SetValue(qd.Text)

	answers := make([]components.TextInput, len(qd.Answers))
	for i, a := range qd.Answers {
		answers[i] = components.NewTextInput("Answer text", 80)
		answers[i].SetValue(a.Text)
	}

	e.form = questionForm{
		draft:     qd,
		text:      text,
		answers:   answers,
		editIndex: index,
	}
	e.mode = modeQuestion
	e.errMsg = ""
	e.name.Blur()
	e.form.text.Focus()
}

func (e *EditorScreen) updateQuestion(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	f := &e.form

	switch msg.String() {
	case "esc":
		e.mode = modeOverview
		e.errMsg = ""
		return e, e.syncOverviewFocus()
	case "up":
		if f.focus > 0 {
			f.focus--
		}
		return e, f.syncFocus()
	case "down":
		if f.focus < len(f.answers) {
			f.focus++
		}
		return e, f.syncFocus()
	case "tab":
		if f.focus > 0 {
			f.draft.Answers[f.focus-1].Correct = !f.draft.Answers[f.focus-1].Correct
		}
		return e, nil
	case "ctrl+n":
		f.draft.AddAnswer()
		f.answers = append(f.answers, components.NewTextInput("Answer text", 80))
		return e, nil
	case "ctrl+d":
		if f.focus > 0 {
			i := f.focus - 1
			if err := f.draft.RemoveAnswer(i); err != nil {
				e.errMsg = err.Error()
				return e, nil
			}
			f.answers = append(f.answers[:i], f.answers[i+1:]...)
			if f.focus > len(f.answers) {
				f.focus = len(f.answers)
			}
		}
		return e, nil
	case "enter":
		return e.commitQuestion()
	}

	// Route typing to the focused field.
	var cmd tea.Cmd
	if f.focus == 0 {
		f.text, cmd = f.text.Update(msg)
	} else {
		f.answers[f.focus-1], cmd = f.answers[f.focus-1].Update(msg)
	}
	return e, cmd
}

func (f *questionForm) syncFocus() tea.Cmd {
	f.text.Blur()
	for i := range f.answers {
		f.answers[i].Blur()
	}
	if f.focus == 0 {
		return f.text.Focus()
	}
	return f.answers[f.focus-1].Focus()
}

// commitQuestion validates the form and folds it into the draft.
func (e *EditorScreen) commitQuestion() (screen.Screen, tea.Cmd) {
	f := &e.form

	f.draft.Text = f.text.Value()
	for i := range f.answers {
		f.draft.Answers[i].Text = f.answers[i].Value()
	}

	q, err := f.draft.Build()
	if err != nil {
		e.errMsg = err.Error()
		return e, nil
	}

	if f.editIndex >= 0 {
		e.draft.Questions[f.editIndex] = q
	} else {
		e.draft.AddQuestion(q)
		e.focus = len(e.draft.Questions)
	}

	e.mode = modeOverview
	e.errMsg = ""
	return e, e.syncOverviewFocus()
}

// saveSet validates the whole draft and persists it. Edited sets go
// through ImportDefinition so their stored progress is reconciled
// instead of wiped.
func (e *EditorScreen) saveSet() tea.Cmd {
	e.draft.Name = e.name.Value()

	set, err := e.draft.Build()
	if err != nil {
		e.errMsg = err.Error()
		return nil
	}

	e.saving = true
	editing := e.draft.IsEditing()
	return func() tea.Msg {
		ctx := context.Background()
		if editing {
			return savedMsg{err: e.repo.ImportDefinition(ctx, set)}
		}
		return savedMsg{err: e.repo.Save(ctx, set)}
	}
}
