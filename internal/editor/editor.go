// Package editor builds and edits quiz set definitions. It owns the
// content rules the session machine assumes: every question carries at
// least one answer and at least one marked correct.
package editor

import (
	"errors"
	"strings"

	"github.com/mpiekarski/quizdeck/internal/quiz"
)

var (
	ErrEmptyName        = errors.New("set name must not be empty")
	ErrNoQuestions      = errors.New("a set needs at least one question")
	ErrEmptyQuestion    = errors.New("question text must not be empty")
	ErrNoAnswers        = errors.New("a question needs at least one answer")
	ErrNoCorrectAnswer  = errors.New("at least one answer must be marked correct")
	ErrMinAnswersRemain = errors.New("a question keeps at least two answer slots")
)

// MinAnswerSlots is the number of answer fields a question draft
// starts with and never drops below while editing.
const MinAnswerSlots = 2

// AnswerDraft is an answer being edited.
type AnswerDraft struct {
	Text    string
	Correct bool
}

// QuestionDraft is the in-progress question, edited separately from
// the set's committed question list.
type QuestionDraft struct {
	Text    string
	Answers []AnswerDraft
}

// NewQuestionDraft returns a draft with the minimum answer slots.
func NewQuestionDraft() QuestionDraft {
	return QuestionDraft{Answers: make([]AnswerDraft, MinAnswerSlots)}
}

// AddAnswer appends an empty answer slot.
func (d *QuestionDraft) AddAnswer() {
	d.Answers = append(d.Answers, AnswerDraft{})
}

// RemoveAnswer deletes the slot at i, refusing to go below the
// minimum.
func (d *QuestionDraft) RemoveAnswer(i int) error {
	if len(d.Answers) <= MinAnswerSlots {
		return ErrMinAnswersRemain
	}
	if i < 0 || i >= len(d.Answers) {
		return nil
	}
	d.Answers = append(d.Answers[:i], d.Answers[i+1:]...)
	return nil
}

// Build validates the draft and produces a question with fresh ids.
// Empty answer slots are silently dropped.
func (d QuestionDraft) Build() (quiz.Question, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return quiz.Question{}, ErrEmptyQuestion
	}

	var answers []quiz.Answer
	hasCorrect := false
	for _, a := range d.Answers {
		at := strings.TrimSpace(a.Text)
		if at == "" {
			continue
		}
		if a.Correct {
			hasCorrect = true
		}
		answers = append(answers, quiz.Answer{ID: quiz.NewID(), Text: at, Correct: a.Correct})
	}
	if len(answers) == 0 {
		return quiz.Question{}, ErrNoAnswers
	}
	if !hasCorrect {
		return quiz.Question{}, ErrNoCorrectAnswer
	}

	return quiz.Question{ID: quiz.NewID(), Text: text, Answers: answers}, nil
}

// Draft is a set definition being created or edited.
type Draft struct {
	Name      string
	Questions []quiz.Question

	editingID string // non-empty when editing an existing set
}

// NewDraft starts a draft for a brand new set.
func NewDraft() *Draft {
	return &Draft{}
}

// EditDraft starts a draft pre-filled from an existing set. The set's
// identity is kept so its stored progress survives the save.
func EditDraft(set *quiz.Set) *Draft {
	return &Draft{
		Name:      set.Name,
		Questions: append([]quiz.Question(nil), set.Questions...),
		editingID: set.ID,
	}
}

// AddQuestion commits a built question to the draft.
func (d *Draft) AddQuestion(q quiz.Question) {
	d.Questions = append(d.Questions, q)
}

// RemoveQuestion deletes the question at i.
func (d *Draft) RemoveQuestion(i int) {
	if i < 0 || i >= len(d.Questions) {
		return
	}
	d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
}

// IsEditing reports whether the draft targets an existing set.
func (d *Draft) IsEditing() bool {
	return d.editingID != ""
}

// Build validates the draft and produces the set definition. New sets
// get a fresh id and empty progress; edited sets keep their id, and
// the store reconciles progress on save.
func (d *Draft) Build() (*quiz.Set, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(d.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	set := quiz.NewSet(name, append([]quiz.Question(nil), d.Questions...))
	if d.editingID != "" {
		set.ID = d.editingID
	}
	return set, nil
}
