package quiz

import "testing"

func TestSummarize(t *testing.T) {
	q1 := singleChoiceQuestion()
	q2 := multiChoiceQuestion()
	questions := []Question{q1, q2}

	tests := []struct {
		name     string
		progress map[string]Selection
		want     Summary
	}{
		{
			"no answers",
			nil,
			Summary{Correct: 0, Incorrect: 2, Total: 2, Percentage: 0},
		},
		{
			"one correct one partial",
			map[string]Selection{
				"q1": SelectionOf("a1"),
				"q2": SelectionOf("a3"), // missing a4
			},
			Summary{Correct: 1, Incorrect: 1, Total: 2, Percentage: 50},
		},
		{
			"all correct",
			map[string]Selection{
				"q1": SelectionOf("a1"),
				"q2": SelectionOf("a3", "a4"),
			},
			Summary{Correct: 2, Incorrect: 0, Total: 2, Percentage: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(questions, tt.progress); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	got := Summarize(nil, nil)
	if got.Percentage != 0 || got.Total != 0 {
		t.Errorf("empty set summary = %+v, want zero values", got)
	}
}

func TestSummarizePercentageRounds(t *testing.T) {
	// 1 of 3 correct = 33.33... -> 33, 2 of 3 = 66.66... -> 67.
	q3 := Question{ID: "q3", Answers: []Answer{{ID: "a6", Correct: true}}}
	questions := []Question{singleChoiceQuestion(), multiChoiceQuestion(), q3}

	one := Summarize(questions, map[string]Selection{"q1": SelectionOf("a1")})
	if one.Percentage != 33 {
		t.Errorf("1/3 percentage = %d, want 33", one.Percentage)
	}

	two := Summarize(questions, map[string]Selection{
		"q1": SelectionOf("a1"),
		"q3": SelectionOf("a6"),
	})
	if two.Percentage != 67 {
		t.Errorf("2/3 percentage = %d, want 67", two.Percentage)
	}
}
