// Package quiz defines the question set model shared by the session
// machine, the store, the editor and the interchange codec.
package quiz

import "github.com/google/uuid"

// Answer is a single answer option. Answers are created by the editor
// and never mutated afterwards.
type Answer struct {
	ID      string
	Text    string
	Correct bool
}

// Question is an ordered list of answer options with a prompt.
type Question struct {
	ID      string
	Text    string
	Answers []Answer
}

// AllowsMultipleSelection reports whether more than one answer is
// marked correct, which switches the session from radio to checkbox
// semantics.
func (q Question) AllowsMultipleSelection() bool {
	n := 0
	for _, a := range q.Answers {
		if a.Correct {
			n++
		}
	}
	return n > 1
}

// CorrectAnswerIDs returns the set of answer ids marked correct.
func (q Question) CorrectAnswerIDs() Selection {
	sel := Selection{}
	for _, a := range q.Answers {
		if a.Correct {
			sel[a.ID] = true
		}
	}
	return sel
}

// Set is a named, ordered collection of questions plus the per-set
// progress map. Progress keys are question ids; values are the answer
// ids the user last submitted for that question. Progress and
// Completed are session-local state and are never exported.
type Set struct {
	ID        string
	Name      string
	Questions []Question
	Progress  map[string]Selection
	Completed bool
}

// NewSet creates an empty-progress set with a fresh id.
func NewSet(name string, questions []Question) *Set {
	return &Set{
		ID:        uuid.New().String(),
		Name:      name,
		Questions: questions,
		Progress:  map[string]Selection{},
	}
}

// NewID returns a fresh identity for sets, questions and answers.
func NewID() string {
	return uuid.New().String()
}

// Question returns the question with the given id, or false.
func (s *Set) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// AnsweredCount is the number of questions with a progress entry.
func (s *Set) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.Progress[q.ID]; ok {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. The session machine works on a clone so
// the store's copy is only touched through explicit saves.
func (s *Set) Clone() *Set {
	cp := &Set{
		ID:        s.ID,
		Name:      s.Name,
		Completed: s.Completed,
		Questions: make([]Question, len(s.Questions)),
		Progress:  make(map[string]Selection, len(s.Progress)),
	}
	for i, q := range s.Questions {
		qc := q
		qc.Answers = append([]Answer(nil), q.Answers...)
		cp.Questions[i] = qc
	}
	for id, sel := range s.Progress {
		cp.Progress[id] = sel.Clone()
	}
	return cp
}

// IsCorrectlyAnswered applies the exact-match rule: the recorded
// selection must equal the question's correct-answer set exactly. A
// question with no correct answers can never match, so it always
// scores incorrect.
func IsCorrectlyAnswered(q Question, sel Selection) bool {
	correct := q.CorrectAnswerIDs()
	if len(correct) == 0 {
		return false
	}
	return sel.Equal(correct)
}
