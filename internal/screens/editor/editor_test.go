package editor

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	editcore "github.com/mpiekarski/quizdeck/internal/editor"
	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/router"
)

// memRepo records what the editor persists.
type memRepo struct {
	saved    *quiz.Set
	imported *quiz.Set
}

func (m *memRepo) Save(_ context.Context, set *quiz.Set) error { m.saved = set; return nil }
func (m *memRepo) Get(_ context.Context, id string) (*quiz.Set, error) {
	return nil, nil
}
func (m *memRepo) List(_ context.Context) ([]*quiz.Set, error) { return nil, nil }
func (m *memRepo) Delete(_ context.Context, id string) error   { return nil }
func (m *memRepo) ImportDefinition(_ context.Context, def *quiz.Set) error {
	m.imported = def
	return nil
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// buildQuestion fills the open question form and commits it.
func buildQuestion(e *EditorScreen, text string, answers []string, correct ...int) {
	e.form.text.SetValue(text)
	for i, a := range answers {
		for len(e.form.answers) < i+1 {
			e.Update(ctrlKey('n'))
		}
		e.form.answers[i].SetValue(a)
	}
	for _, c := range correct {
		e.form.draft.Answers[c].Correct = true
	}
	e.Update(key(tea.KeyEnter))
}

func TestEditor_CreateSet(t *testing.T) {
	repo := &memRepo{}
	e := New(repo, nil)

	e.name.SetValue("Rivers")
	e.Update(ctrlKey('n')) // open question form
	if e.mode != modeQuestion {
		t.Fatal("expected question form")
	}
	buildQuestion(e, "Longest river?", []string{"Nile", "Amazon"}, 0)

	if e.mode != modeOverview {
		t.Fatal("expected overview after committing question")
	}
	if len(e.draft.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(e.draft.Questions))
	}

	_, cmd := e.Update(ctrlKey('s'))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("unexpected save result: %#v", msg)
	}
	if repo.saved == nil {
		t.Fatal("expected Save on new set")
	}
	if repo.saved.Name != "Rivers" || len(repo.saved.Questions) != 1 {
		t.Errorf("saved set = %+v", repo.saved)
	}
	if repo.saved.ID == "" {
		t.Error("expected a generated set id")
	}

	// Successful save pops back.
	_, cmd = e.Update(savedMsg{})
	if cmd == nil {
		t.Fatal("expected pop command after save")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEditor_SaveRejectsEmptyName(t *testing.T) {
	e := New(&memRepo{}, nil)
	e.Update(ctrlKey('n'))
	buildQuestion(e, "Q?", []string{"A", "B"}, 0)

	_, cmd := e.Update(ctrlKey('s'))
	if cmd != nil {
		t.Fatal("invalid draft must not produce a save command")
	}
	if !strings.Contains(e.errMsg, editcore.ErrEmptyName.Error()) {
		t.Errorf("errMsg = %q", e.errMsg)
	}
}

func TestEditor_QuestionNeedsCorrectAnswer(t *testing.T) {
	e := New(&memRepo{}, nil)
	e.Update(ctrlKey('n'))

	e.form.text.SetValue("Q?")
	e.form.answers[0].SetValue("A")
	e.form.answers[1].SetValue("B")
	e.Update(key(tea.KeyEnter))

	if e.mode != modeQuestion {
		t.Error("invalid question must stay in the form")
	}
	if !strings.Contains(e.errMsg, editcore.ErrNoCorrectAnswer.Error()) {
		t.Errorf("errMsg = %q", e.errMsg)
	}
}

func TestEditor_TabTogglesCorrect(t *testing.T) {
	e := New(&memRepo{}, nil)
	e.Update(ctrlKey('n'))

	e.Update(key(tea.KeyDown)) // focus first answer
	e.Update(key(tea.KeyTab))
	if !e.form.draft.Answers[0].Correct {
		t.Error("expected first answer marked correct")
	}
	e.Update(key(tea.KeyTab))
	if e.form.draft.Answers[0].Correct {
		t.Error("expected toggle back off")
	}
}

func TestEditor_AnswerMinimumEnforced(t *testing.T) {
	e := New(&memRepo{}, nil)
	e.Update(ctrlKey('n'))

	e.Update(key(tea.KeyDown)) // focus first answer
	e.Update(ctrlKey('d'))
	if len(e.form.answers) != editcore.MinAnswerSlots {
		t.Errorf("answers = %d, want %d", len(e.form.answers), editcore.MinAnswerSlots)
	}
	if e.errMsg == "" {
		t.Error("expected minimum-slots error")
	}
}

func TestEditor_EscLeavesQuestionForm(t *testing.T) {
	e := New(&memRepo{}, nil)

	if e.WantsEsc() {
		t.Error("overview must not consume esc")
	}
	e.Update(ctrlKey('n'))
	if !e.WantsEsc() {
		t.Error("question form must consume esc")
	}
	e.Update(key(tea.KeyEscape))
	if e.mode != modeOverview {
		t.Error("expected esc to return to overview")
	}
	if len(e.draft.Questions) != 0 {
		t.Error("discarded question must not be committed")
	}
}

func TestEditor_EditExistingSavesViaImport(t *testing.T) {
	repo := &memRepo{}
	set := &quiz.Set{
		ID:   "set-1",
		Name: "Capitals",
		Questions: []quiz.Question{
			{ID: "q1", Text: "Capital of France?", Answers: []quiz.Answer{
				{ID: "a1", Text: "Paris", Correct: true},
				{ID: "a2", Text: "Lyon"},
			}},
		},
		Progress: map[string]quiz.Selection{},
	}

	e := New(repo, set)
	if e.Title() != "Edit Set" {
		t.Errorf("Title = %q", e.Title())
	}

	_, cmd := e.Update(ctrlKey('s'))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	if msg := cmd(); msg.(savedMsg).err != nil {
		t.Fatalf("save failed: %v", msg.(savedMsg).err)
	}

	if repo.imported == nil {
		t.Fatal("expected edit to go through ImportDefinition")
	}
	if repo.saved != nil {
		t.Error("edit must not use plain Save")
	}
	if repo.imported.ID != "set-1" {
		t.Errorf("imported id = %q, want set-1", repo.imported.ID)
	}
}

func TestEditor_ReworkExistingQuestion(t *testing.T) {
	set := &quiz.Set{
		ID:   "set-1",
		Name: "Capitals",
		Questions: []quiz.Question{
			{ID: "q1", Text: "Capital of France?", Answers: []quiz.Answer{
				{ID: "a1", Text: "Paris", Correct: true},
				{ID: "a2", Text: "Lyon"},
			}},
		},
		Progress: map[string]quiz.Selection{},
	}
	e := New(&memRepo{}, set)

	e.Update(key(tea.KeyDown)) // focus the question
	e.Update(key(tea.KeyEnter))
	if e.mode != modeQuestion {
		t.Fatal("expected question form")
	}
	if e.form.text.Value() != "Capital of France?" {
		t.Errorf("prefilled text = %q", e.form.text.Value())
	}

	e.form.text.SetValue("Capital city of France?")
	e.Update(key(tea.KeyEnter))

	if len(e.draft.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(e.draft.Questions))
	}
	if e.draft.Questions[0].Text != "Capital city of France?" {
		t.Errorf("question text = %q", e.draft.Questions[0].Text)
	}
}
