package quiz

// DemoSet builds the starter set seeded on first run so the app is
// usable before the user creates anything.
func DemoSet() *Set {
	q1 := Question{
		ID:   NewID(),
		Text: "Which keyword declares a new type in Go?",
		Answers: []Answer{
			{ID: NewID(), Text: "type", Correct: true},
			{ID: NewID(), Text: "struct"},
			{ID: NewID(), Text: "class"},
		},
	}
	q2 := Question{
		ID:   NewID(),
		Text: "Which of these are built-in Go types?",
		Answers: []Answer{
			{ID: NewID(), Text: "string", Correct: true},
			{ID: NewID(), Text: "complex128", Correct: true},
			{ID: NewID(), Text: "decimal"},
			{ID: NewID(), Text: "rune", Correct: true},
		},
	}
	q3 := Question{
		ID:   NewID(),
		Text: "What does a nil map lookup return?",
		Answers: []Answer{
			{ID: NewID(), Text: "The zero value of the element type", Correct: true},
			{ID: NewID(), Text: "A runtime panic"},
			{ID: NewID(), Text: "A compile error"},
		},
	}
	return NewSet("Go Basics (demo)", []Question{q1, q2, q3})
}
