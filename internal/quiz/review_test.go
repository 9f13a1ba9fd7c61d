package quiz

import "testing"

func TestIncorrectQuestions(t *testing.T) {
	q1 := singleChoiceQuestion()
	q2 := multiChoiceQuestion()
	questions := []Question{q1, q2}

	t.Run("all wrong when nothing answered", func(t *testing.T) {
		wrong := IncorrectQuestions(questions, nil)
		if len(wrong) != 2 {
			t.Fatalf("len = %d, want 2", len(wrong))
		}
	})

	t.Run("only the mismatched question", func(t *testing.T) {
		wrong := IncorrectQuestions(questions, map[string]Selection{
			"q1": SelectionOf("a1"),
			"q2": SelectionOf("a3"),
		})
		if len(wrong) != 1 || wrong[0].ID != "q2" {
			t.Fatalf("wrong = %v, want [q2]", wrong)
		}
	})

	t.Run("empty when all exact", func(t *testing.T) {
		wrong := IncorrectQuestions(questions, map[string]Selection{
			"q1": SelectionOf("a1"),
			"q2": SelectionOf("a3", "a4"),
		})
		if len(wrong) != 0 {
			t.Fatalf("wrong = %v, want empty", wrong)
		}
	})

	t.Run("preserves set order", func(t *testing.T) {
		wrong := IncorrectQuestions(questions, map[string]Selection{
			"q1": SelectionOf("a2"),
			"q2": SelectionOf("a5"),
		})
		if len(wrong) != 2 || wrong[0].ID != "q1" || wrong[1].ID != "q2" {
			t.Fatalf("wrong = %v, want [q1 q2]", wrong)
		}
	})
}
