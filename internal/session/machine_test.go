package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mpiekarski/quizdeck/internal/quiz"
)

// recordingSaver captures every persisted working copy.
type recordingSaver struct {
	saves []*quiz.Set
	err   error
}

func (r *recordingSaver) Save(_ context.Context, set *quiz.Set) error {
	r.saves = append(r.saves, set)
	return r.err
}

func (r *recordingSaver) last() *quiz.Set {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

// testSet has Q1 single-correct {A1*, A2} and Q2 multi-correct
// {A3*, A4*, A5}.
func testSet() *quiz.Set {
	return &quiz.Set{
		ID:   "set-1",
		Name: "test set",
		Questions: []quiz.Question{
			{
				ID:   "q1",
				Text: "first",
				Answers: []quiz.Answer{
					{ID: "a1", Correct: true},
					{ID: "a2"},
				},
			},
			{
				ID:   "q2",
				Text: "second",
				Answers: []quiz.Answer{
					{ID: "a3", Correct: true},
					{ID: "a4", Correct: true},
					{ID: "a5"},
				},
			},
		},
		Progress: map[string]quiz.Selection{},
	}
}

func TestRestore_FreshSet(t *testing.T) {
	m := New(testSet(), nil)

	if m.ShowingSummary() {
		t.Fatal("fresh set should not open on summary")
	}
	if m.Index() != 0 {
		t.Errorf("Index = %d, want 0", m.Index())
	}
	if m.Checked() || m.HasSelection() {
		t.Error("fresh session should start unchecked with empty selection")
	}
	if m.DisplayCount() != 2 {
		t.Errorf("DisplayCount = %d, want 2", m.DisplayCount())
	}
}

func TestRestore_ResumesAtFirstUnanswered(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a1")

	m := New(set, nil)

	if m.ShowingSummary() {
		t.Fatal("partially answered set should not open on summary")
	}
	if m.Index() != 1 {
		t.Errorf("Index = %d, want 1 (first unanswered)", m.Index())
	}
}

func TestRestore_CompletedSetOpensSummary(t *testing.T) {
	set := testSet()
	set.Completed = true

	m := New(set, nil)

	if !m.ShowingSummary() {
		t.Fatal("completed set should open on summary")
	}
	if !m.CompletedWithErrors() || m.AllPerfect() {
		t.Error("unanswered completed set should show completed-with-errors")
	}
	if _, ok := m.CurrentQuestion(); ok {
		t.Error("summary state should have no current question")
	}
}

func TestRestore_AllAnsweredOpensSummary(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a1")
	set.Progress["q2"] = quiz.SelectionOf("a3", "a4")

	m := New(set, nil)

	if !m.ShowingSummary() {
		t.Fatal("fully answered set should open on summary")
	}
	if !m.AllPerfect() {
		t.Error("all exact answers should show all-perfect")
	}
}

func TestSelectAnswer_RadioSemantics(t *testing.T) {
	m := New(testSet(), nil)

	m.SelectAnswer("a1")
	m.SelectAnswer("a2")
	m.SelectAnswer("a1")

	// Single-select questions never hold more than one answer.
	if !m.IsSelected("a1") || m.IsSelected("a2") {
		t.Error("expected only the last selected answer to be pending")
	}
}

func TestSelectAnswer_ToggleSemantics(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a1")
	m := New(set, nil) // resumes at q2, the multi-select question

	m.SelectAnswer("a3")
	m.SelectAnswer("a4")
	if !m.IsSelected("a3") || !m.IsSelected("a4") {
		t.Error("multi-select should accumulate answers")
	}
	m.SelectAnswer("a3")
	if m.IsSelected("a3") {
		t.Error("re-selecting should toggle the answer off")
	}
}

func TestSubmit_CommitsAndChecks(t *testing.T) {
	saver := &recordingSaver{}
	m := New(testSet(), saver)

	m.SelectAnswer("a1")
	m.Submit()

	if !m.Checked() {
		t.Fatal("expected checked after submit")
	}
	if !m.Set().Progress["q1"].Equal(quiz.SelectionOf("a1")) {
		t.Error("submit should commit the pending selection")
	}
	if len(saver.saves) != 0 {
		t.Error("submit must not persist; persistence happens on navigation")
	}
}

func TestSubmit_EmptySelectionIsNoop(t *testing.T) {
	m := New(testSet(), nil)
	m.Submit()
	if m.Checked() {
		t.Error("empty submission must not check the question")
	}
	if _, ok := m.Set().Progress["q1"]; ok {
		t.Error("empty submission must not create a progress entry")
	}
}

func TestSubmit_IdempotentOnceChecked(t *testing.T) {
	m := New(testSet(), nil)
	m.SelectAnswer("a1")
	m.Submit()

	// Further selects and submits are no-ops until the next question.
	m.SelectAnswer("a2")
	m.Submit()

	if m.IsSelected("a2") {
		t.Error("selectAnswer after check should be a no-op")
	}
	if !m.Set().Progress["q1"].Equal(quiz.SelectionOf("a1")) {
		t.Error("progress entry changed after second submit")
	}
}

func TestNext_PersistsAndAdvances(t *testing.T) {
	saver := &recordingSaver{}
	m := New(testSet(), saver)
	m.SelectAnswer("a1")
	m.Submit()

	if err := m.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}

	if len(saver.saves) != 1 {
		t.Fatalf("saves = %d, want 1", len(saver.saves))
	}
	if !saver.last().Progress["q1"].Equal(quiz.SelectionOf("a1")) {
		t.Error("persisted copy missing committed progress")
	}
	if m.Index() != 1 || m.Checked() || m.HasSelection() {
		t.Error("expected advance to a fresh, unchecked question")
	}
}

func TestNext_AtLastIndexKeepsPosition(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a1")
	saver := &recordingSaver{}
	m := New(set, saver) // index 1, last question

	if err := m.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if m.Index() != 1 {
		t.Errorf("Index = %d, want 1 (no advance past last)", m.Index())
	}
	if len(saver.saves) != 1 {
		t.Error("the write-through still happens at the last index")
	}
}

func TestPrevious_RestoresPriorSelection(t *testing.T) {
	m := New(testSet(), &recordingSaver{})
	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(context.Background())

	m.Previous()

	if m.Index() != 0 {
		t.Fatalf("Index = %d, want 0", m.Index())
	}
	if !m.Checked() {
		t.Error("previously answered question should re-display checked")
	}
	if !m.IsSelected("a1") || m.IsSelected("a2") {
		t.Error("prior selection not restored")
	}
}

func TestPrevious_AtFirstIndexIsNoop(t *testing.T) {
	m := New(testSet(), nil)
	m.Previous()
	if m.Index() != 0 {
		t.Errorf("Index = %d, want 0", m.Index())
	}
}

func TestPrevious_UnansweredQuestionIsUnchecked(t *testing.T) {
	set := testSet()
	m := New(set, &recordingSaver{})
	// Answer q1, move to q2, then jump back and forward without
	// answering q2 so q2 has no entry.
	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(context.Background())
	m.Previous()
	_ = m.Next(context.Background())
	m.Previous()
	_ = m.Next(context.Background())

	if m.Checked() {
		t.Error("unanswered question must come back unchecked")
	}
}

func TestFinish_MixedResults(t *testing.T) {
	saver := &recordingSaver{}
	m := New(testSet(), saver)
	ctx := context.Background()

	// Q1: correct.
	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(ctx)

	// Q2: only a3, missing a4 -> incorrect.
	m.SelectAnswer("a3")
	m.Submit()
	if err := m.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if !m.ShowingSummary() {
		t.Fatal("expected summary after finish")
	}
	if m.AllPerfect() || !m.CompletedWithErrors() {
		t.Error("expected completed-with-errors")
	}
	if !saver.last().Completed {
		t.Error("persisted copy should be marked completed")
	}

	sum := m.Summary()
	if sum.Correct != 1 || sum.Total != 2 || sum.Percentage != 50 {
		t.Errorf("summary = %+v, want 1/2 at 50%%", sum)
	}
}

func TestFinish_AllPerfect(t *testing.T) {
	m := New(testSet(), &recordingSaver{})
	ctx := context.Background()

	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(ctx)
	m.SelectAnswer("a3")
	m.SelectAnswer("a4")
	m.Submit()
	_ = m.Finish(ctx)

	if !m.AllPerfect() || m.CompletedWithErrors() {
		t.Error("expected all-perfect finish")
	}
}

func TestFilterIncorrect_NarrowsToWrongQuestions(t *testing.T) {
	saver := &recordingSaver{}
	m := New(testSet(), saver)
	ctx := context.Background()

	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(ctx)
	m.SelectAnswer("a3")
	m.Submit()
	_ = m.Finish(ctx)

	if err := m.FilterIncorrect(ctx); err != nil {
		t.Fatalf("FilterIncorrect: %v", err)
	}

	if m.ShowingSummary() {
		t.Fatal("expected to leave summary for the review pass")
	}
	if m.DisplayCount() != 1 {
		t.Fatalf("DisplayCount = %d, want 1", m.DisplayCount())
	}
	q, ok := m.CurrentQuestion()
	if !ok || q.ID != "q2" {
		t.Errorf("current question = %v, want q2", q.ID)
	}
	if m.Index() != 0 || m.Checked() || m.HasSelection() {
		t.Error("review pass should start at index 0, unchecked, empty")
	}
	if !m.IsReviewPass() {
		t.Error("expected review pass flag")
	}
	if _, ok := m.Set().Progress["q2"]; ok {
		t.Error("incorrect question's progress entry should be dropped")
	}
	if _, ok := m.Set().Progress["q1"]; !ok {
		t.Error("correct question's progress entry should survive")
	}
	if saver.last().Completed {
		t.Error("persisted copy should have completed cleared")
	}
}

func TestFilterIncorrect_AllCorrectGoesStraightToSummary(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a1")
	set.Progress["q2"] = quiz.SelectionOf("a3", "a4")
	set.Completed = false
	saver := &recordingSaver{}
	m := New(set, saver)
	m.ShowAllQuestions() // leave the auto-summary to exercise the op itself

	if err := m.FilterIncorrect(context.Background()); err != nil {
		t.Fatalf("FilterIncorrect: %v", err)
	}

	if !m.ShowingSummary() || !m.AllPerfect() {
		t.Error("expected all-perfect summary when nothing is incorrect")
	}
	if m.Summary().Incorrect != 0 {
		t.Errorf("Incorrect = %d, want 0", m.Summary().Incorrect)
	}
	if !saver.last().Completed {
		t.Error("all-correct filter should mark the set completed")
	}
}

func TestFilterIncorrect_RepeatedPassesNarrow(t *testing.T) {
	m := New(testSet(), &recordingSaver{})
	ctx := context.Background()

	// Everything wrong on the first pass.
	m.SelectAnswer("a2")
	m.Submit()
	_ = m.Next(ctx)
	m.SelectAnswer("a5")
	m.Submit()
	_ = m.Finish(ctx)

	_ = m.FilterIncorrect(ctx)
	if m.DisplayCount() != 2 {
		t.Fatalf("first review pass size = %d, want 2", m.DisplayCount())
	}

	// Get q1 right, q2 wrong again.
	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(ctx)
	m.SelectAnswer("a5")
	m.Submit()
	_ = m.Finish(ctx)

	_ = m.FilterIncorrect(ctx)
	if m.DisplayCount() != 1 {
		t.Fatalf("second review pass size = %d, want 1", m.DisplayCount())
	}
}

func TestResetProgress(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a2")
	set.Progress["q2"] = quiz.SelectionOf("a5")
	set.Completed = true
	saver := &recordingSaver{}

	m := New(set, saver) // opens on summary
	if err := m.ResetProgress(context.Background()); err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}

	if m.ShowingSummary() {
		t.Fatal("reset should return to the first question")
	}
	if m.Index() != 0 || m.Checked() || m.HasSelection() {
		t.Error("reset should restart at index 0, unchecked, empty")
	}
	if m.Set().Completed || len(m.Set().Progress) != 0 {
		t.Error("reset should clear progress and the completed flag")
	}
	persisted := saver.last()
	if persisted == nil || len(persisted.Progress) != 0 || persisted.Completed {
		t.Error("reset must persist the cleared state")
	}
}

func TestShowAllQuestions_LeavesSummaryWithoutPersisting(t *testing.T) {
	set := testSet()
	set.Progress["q1"] = quiz.SelectionOf("a1")
	set.Progress["q2"] = quiz.SelectionOf("a5")
	set.Completed = true
	saver := &recordingSaver{}
	m := New(set, saver)

	m.ShowAllQuestions()

	if m.ShowingSummary() {
		t.Fatal("expected to leave summary")
	}
	if m.DisplayCount() != 2 {
		t.Errorf("DisplayCount = %d, want 2", m.DisplayCount())
	}
	if m.Index() != 0 {
		t.Errorf("Index = %d, want 0 (all answered)", m.Index())
	}
	if len(saver.saves) != 0 {
		t.Error("showing all questions must not persist")
	}
	if len(m.Set().Progress) != 2 {
		t.Error("progress must be untouched")
	}
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	m := New(testSet(), saver)
	ctx := context.Background()

	m.SelectAnswer("a1")
	m.Submit()
	if err := m.Next(ctx); err == nil {
		t.Fatal("expected save error surfaced")
	}

	// The machine advanced anyway and the entry is still in memory.
	if m.Index() != 1 {
		t.Errorf("Index = %d, want 1", m.Index())
	}
	if !m.Set().Progress["q1"].Equal(quiz.SelectionOf("a1")) {
		t.Error("in-memory progress lost after save failure")
	}

	// The next state-changing op retries with the full copy.
	saver.err = nil
	m.SelectAnswer("a3")
	m.SelectAnswer("a4")
	m.Submit()
	if err := m.Finish(ctx); err != nil {
		t.Fatalf("Finish after recovery: %v", err)
	}
	if !saver.last().Progress["q1"].Equal(quiz.SelectionOf("a1")) {
		t.Error("retry did not carry earlier progress")
	}
}

func TestPersistedCopyIsDetached(t *testing.T) {
	saver := &recordingSaver{}
	m := New(testSet(), saver)
	ctx := context.Background()

	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Next(ctx)

	// Mutating the machine afterwards must not affect the saved copy.
	m.SelectAnswer("a3")
	m.Submit()
	if _, ok := saver.last().Progress["q2"]; ok {
		t.Error("saved copy shares state with the working copy")
	}
}

func TestDegenerateContent_NoCorrectAnswer(t *testing.T) {
	set := &quiz.Set{
		ID:   "set-d",
		Name: "degenerate",
		Questions: []quiz.Question{
			{ID: "q1", Answers: []quiz.Answer{{ID: "a1"}, {ID: "a2"}}},
		},
		Progress: map[string]quiz.Selection{},
	}
	m := New(set, &recordingSaver{})
	ctx := context.Background()

	m.SelectAnswer("a1")
	m.Submit()
	_ = m.Finish(ctx)

	// Uncorrectable by definition; scored incorrect, never a crash.
	if m.AllPerfect() {
		t.Error("a zero-correct question can never be perfect")
	}
	if m.Summary().Correct != 0 {
		t.Errorf("Correct = %d, want 0", m.Summary().Correct)
	}
}
