package quiz

import "math"

// Summary aggregates a set's score from its questions and progress map.
type Summary struct {
	Correct    int
	Incorrect  int
	Total      int
	Percentage int // round(correct/total*100), 0 for an empty set
}

// Summarize scores every question with the exact-match rule. It is a
// pure function and safe to call mid-session, e.g. for the set cards
// on the home screen.
func Summarize(questions []Question, progress map[string]Selection) Summary {
	sum := Summary{Total: len(questions)}
	for _, q := range questions {
		if IsCorrectlyAnswered(q, progress[q.ID]) {
			sum.Correct++
		}
	}
	sum.Incorrect = sum.Total - sum.Correct
	if sum.Total > 0 {
		sum.Percentage = int(math.Round(float64(sum.Correct) / float64(sum.Total) * 100))
	}
	return sum
}
