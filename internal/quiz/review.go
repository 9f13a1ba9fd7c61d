package quiz

// IncorrectQuestions returns the questions whose recorded selection
// fails the exact-match rule, in set order. Unanswered questions are
// included: a missing entry never equals a non-empty correct set.
// This is the review subset used for "retry only what I got wrong".
func IncorrectQuestions(questions []Question, progress map[string]Selection) []Question {
	var wrong []Question
	for _, q := range questions {
		if !IsCorrectlyAnswered(q, progress[q.ID]) {
			wrong = append(wrong, q)
		}
	}
	return wrong
}
