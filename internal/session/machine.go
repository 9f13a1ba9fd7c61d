// Package session implements the quiz-taking state machine: which
// question is shown, how selections are validated and committed, and
// when a pass ends in the summary state. It owns a working copy of one
// quiz.Set and writes it through to the injected Saver on every
// state-changing operation.
package session

import (
	"context"

	"github.com/mpiekarski/quizdeck/internal/quiz"
)

// Saver is the narrow progress-store contract the machine persists
// through. Save must fully overwrite the stored set by identity, which
// makes every write idempotent and safe to retry.
type Saver interface {
	Save(ctx context.Context, set *quiz.Set) error
}

// Machine drives a single session over one set. Exactly one machine
// instance operates on a set at a time; all operations are synchronous.
//
// Invalid transitions (submitting with nothing selected, advancing past
// the last question, checking twice) are no-ops. Save failures are
// returned to the caller but never roll back in-memory state: the next
// state-changing operation writes the full working copy again.
type Machine struct {
	set   *quiz.Set
	saver Saver

	display []quiz.Question // questions shown this pass
	index   int
	pending quiz.Selection // selected but not yet committed
	checked bool

	showingSummary      bool
	allPerfect          bool
	completedWithErrors bool
}

// New starts a session over a working copy of set and runs the restore
// policy: a completed or fully answered set opens on the summary,
// otherwise the session resumes at the first unanswered question.
func New(set *quiz.Set, saver Saver) *Machine {
	m := &Machine{
		set:     set.Clone(),
		saver:   saver,
		pending: quiz.Selection{},
	}
	m.restore()
	return m
}

func (m *Machine) restore() {
	if m.set.Completed || m.allAnswered() {
		m.showSummaryFromProgress()
		return
	}
	m.display = m.set.Questions
	m.showingSummary = false
	m.index = m.firstUnanswered()
	m.pending = quiz.Selection{}
	m.checked = false
}

func (m *Machine) allAnswered() bool {
	if len(m.set.Questions) == 0 {
		return false
	}
	for _, q := range m.set.Questions {
		if _, ok := m.set.Progress[q.ID]; !ok {
			return false
		}
	}
	return true
}

func (m *Machine) firstUnanswered() int {
	for i, q := range m.set.Questions {
		if _, ok := m.set.Progress[q.ID]; !ok {
			return i
		}
	}
	return 0
}

// showSummaryFromProgress enters the summary state, scoring the full
// question sequence against the stored progress.
func (m *Machine) showSummaryFromProgress() {
	allCorrect := true
	for _, q := range m.set.Questions {
		if !quiz.IsCorrectlyAnswered(q, m.set.Progress[q.ID]) {
			allCorrect = false
			break
		}
	}
	m.allPerfect = allCorrect
	m.completedWithErrors = !allCorrect
	m.showingSummary = true
	m.display = nil
	m.index = 0
	m.pending = quiz.Selection{}
	m.checked = false
}

// CurrentQuestion returns the question at the current index, or false
// when the display subset is empty (summary state).
func (m *Machine) CurrentQuestion() (quiz.Question, bool) {
	if m.index < 0 || m.index >= len(m.display) {
		return quiz.Question{}, false
	}
	return m.display[m.index], true
}

// SelectAnswer toggles answer membership in the pending selection, or
// replaces it under radio semantics when the current question has a
// single correct answer. No-op once the answer has been checked.
func (m *Machine) SelectAnswer(answerID string) {
	if m.checked {
		return
	}
	q, ok := m.CurrentQuestion()
	if !ok {
		return
	}
	if q.AllowsMultipleSelection() {
		m.pending.Toggle(answerID)
	} else {
		m.pending = quiz.SelectionOf(answerID)
	}
}

// Submit commits the pending selection into the progress map and marks
// the question checked. Empty submissions and double submissions are
// no-ops. Persistence is deferred to the next navigation so repeated
// toggling before commit does not thrash storage.
func (m *Machine) Submit() {
	if m.checked || len(m.pending) == 0 {
		return
	}
	q, ok := m.CurrentQuestion()
	if !ok {
		return
	}
	m.set.Progress[q.ID] = m.pending.Clone()
	m.checked = true
}

// Next persists the working set, then advances to the next question
// with a cleared selection. At the last index the save still happens
// but the position is unchanged; callers finish the set instead.
func (m *Machine) Next(ctx context.Context) error {
	if m.showingSummary {
		return nil
	}
	err := m.save(ctx)
	if m.index >= len(m.display)-1 {
		return err
	}
	m.index++
	m.pending = quiz.Selection{}
	m.checked = false
	return err
}

// Previous moves back one question. An already answered question comes
// back in its checked state with the prior selection restored.
func (m *Machine) Previous() {
	if m.showingSummary || m.index == 0 {
		return
	}
	m.index--
	q := m.display[m.index]
	if sel, ok := m.set.Progress[q.ID]; ok {
		m.pending = sel.Clone()
		m.checked = true
	} else {
		m.pending = quiz.Selection{}
		m.checked = false
	}
}

// Finish ends the pass: computes whether every displayed question was
// answered exactly right, marks the set completed, persists, and
// enters the summary state.
func (m *Machine) Finish(ctx context.Context) error {
	if m.showingSummary {
		return nil
	}
	allCorrect := true
	for _, q := range m.display {
		if !quiz.IsCorrectlyAnswered(q, m.set.Progress[q.ID]) {
			allCorrect = false
			break
		}
	}
	m.allPerfect = allCorrect
	m.completedWithErrors = !allCorrect
	m.set.Completed = true
	err := m.save(ctx)

	m.showingSummary = true
	m.display = nil
	m.index = 0
	m.pending = quiz.Selection{}
	m.checked = false
	return err
}

// ResetProgress clears the whole progress map and the completed flag,
// persists, and restarts the session from the first question.
func (m *Machine) ResetProgress(ctx context.Context) error {
	m.set.Progress = map[string]quiz.Selection{}
	m.set.Completed = false
	err := m.save(ctx)

	m.allPerfect = false
	m.completedWithErrors = false
	m.restore()
	return err
}

// FilterIncorrect narrows the session to the questions answered
// incorrectly, dropping their progress entries so they must be
// re-answered. With nothing incorrect it finishes with all-perfect
// semantics instead. Each call judges only the current progress; no
// history accumulates across review passes.
func (m *Machine) FilterIncorrect(ctx context.Context) error {
	wrong := quiz.IncorrectQuestions(m.set.Questions, m.set.Progress)
	if len(wrong) == 0 {
		m.set.Completed = true
		err := m.save(ctx)
		m.showSummaryFromProgress()
		return err
	}

	m.display = wrong
	m.showingSummary = false
	m.allPerfect = false
	m.completedWithErrors = false

	for _, q := range wrong {
		delete(m.set.Progress, q.ID)
	}
	m.set.Completed = false
	err := m.save(ctx)

	m.index = 0
	m.pending = quiz.Selection{}
	m.checked = false
	return err
}

// ShowAllQuestions leaves the summary and re-enters the session over
// the full question sequence, resuming at the first unanswered
// question. Progress is untouched and nothing is persisted.
func (m *Machine) ShowAllQuestions() {
	m.showingSummary = false
	m.allPerfect = false
	m.completedWithErrors = false
	m.display = m.set.Questions
	m.index = m.firstUnanswered()
	m.pending = quiz.Selection{}
	m.checked = false
}

func (m *Machine) save(ctx context.Context) error {
	if m.saver == nil {
		return nil
	}
	return m.saver.Save(ctx, m.set.Clone())
}

// Set exposes the working copy for read-only collaborators such as the
// summary calculator and the views.
func (m *Machine) Set() *quiz.Set { return m.set }

// Index is the position within the current display subset.
func (m *Machine) Index() int { return m.index }

// DisplayCount is the size of the current display subset.
func (m *Machine) DisplayCount() int { return len(m.display) }

// IsLastQuestion reports whether the current question is the final one
// of the display subset.
func (m *Machine) IsLastQuestion() bool {
	return len(m.display) > 0 && m.index == len(m.display)-1
}

// IsReviewPass reports whether the display subset is narrower than the
// full question sequence.
func (m *Machine) IsReviewPass() bool {
	return len(m.display) > 0 && len(m.display) < len(m.set.Questions)
}

// IsSelected reports whether an answer is in the pending selection.
func (m *Machine) IsSelected(answerID string) bool { return m.pending.Has(answerID) }

// HasSelection reports whether anything is pending; callers disable
// the submit action when false.
func (m *Machine) HasSelection() bool { return len(m.pending) > 0 }

// Checked reports whether the current question has been submitted.
func (m *Machine) Checked() bool { return m.checked }

// ShowingSummary reports whether the machine is in the summary state.
func (m *Machine) ShowingSummary() bool { return m.showingSummary }

// AllPerfect reports whether every question of the finished pass was
// answered exactly right.
func (m *Machine) AllPerfect() bool { return m.allPerfect }

// CompletedWithErrors is the complement of AllPerfect for a finished
// pass.
func (m *Machine) CompletedWithErrors() bool { return m.completedWithErrors }

// Summary scores the full set with the current progress.
func (m *Machine) Summary() quiz.Summary {
	return quiz.Summarize(m.set.Questions, m.set.Progress)
}
