package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mpiekarski/quizdeck/internal/quiz"
)

// SetRepo manages stored quiz sets. Save fully overwrites a set by
// identity, which is what the session machine's write-through relies
// on: every write carries the complete working copy.
type SetRepo interface {
	// Save upserts the full set, definition and progress included.
	Save(ctx context.Context, set *quiz.Set) error

	// Get returns the set with the given id, or nil if absent.
	Get(ctx context.Context, id string) (*quiz.Set, error)

	// List returns all sets in creation order.
	List(ctx context.Context) ([]*quiz.Set, error)

	// Delete removes a set and its progress.
	Delete(ctx context.Context, id string) error

	// ImportDefinition stores an imported definition. On id collision
	// the name and questions are replaced while the stored progress
	// and completed flag are preserved; progress entries for question
	// ids that no longer exist are pruned.
	ImportDefinition(ctx context.Context, def *quiz.Set) error
}

type setRepo struct {
	db *sql.DB
}

// questionRecord is the JSON shape of the questions column.
type questionRecord struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Answers []answerRecord `json:"answers"`
}

type answerRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

func encodeQuestions(questions []quiz.Question) (string, error) {
	records := make([]questionRecord, len(questions))
	for i, q := range questions {
		answers := make([]answerRecord, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = answerRecord{ID: a.ID, Text: a.Text, IsCorrect: a.Correct}
		}
		records[i] = questionRecord{ID: q.ID, Text: q.Text, Answers: answers}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	return string(b), nil
}

func decodeQuestions(data string) ([]quiz.Question, error) {
	var records []questionRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	questions := make([]quiz.Question, len(records))
	for i, r := range records {
		answers := make([]quiz.Answer, len(r.Answers))
		for j, a := range r.Answers {
			answers[j] = quiz.Answer{ID: a.ID, Text: a.Text, Correct: a.IsCorrect}
		}
		questions[i] = quiz.Question{ID: r.ID, Text: r.Text, Answers: answers}
	}
	return questions, nil
}

// Progress is stored as question id -> sorted answer id list.
func encodeProgress(progress map[string]quiz.Selection) (string, error) {
	records := make(map[string][]string, len(progress))
	for qid, sel := range progress {
		records[qid] = sel.IDs()
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode progress: %w", err)
	}
	return string(b), nil
}

func decodeProgress(data string) (map[string]quiz.Selection, error) {
	var records map[string][]string
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	progress := make(map[string]quiz.Selection, len(records))
	for qid, ids := range records {
		progress[qid] = quiz.SelectionOf(ids...)
	}
	return progress, nil
}

func (r *setRepo) Save(ctx context.Context, set *quiz.Set) error {
	questions, err := encodeQuestions(set.Questions)
	if err != nil {
		return err
	}
	progress, err := encodeProgress(set.Progress)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO quiz_sets (id, name, questions, progress, completed)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	questions = excluded.questions,
	progress = excluded.progress,
	completed = excluded.completed,
	updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, set.ID, set.Name, questions, progress, set.Completed); err != nil {
		return fmt.Errorf("save set: %w", err)
	}
	return nil
}

func (r *setRepo) Get(ctx context.Context, id string) (*quiz.Set, error) {
	const query = `SELECT id, name, questions, progress, completed FROM quiz_sets WHERE id = ?`
	set, err := scanSet(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return set, nil
}

func (r *setRepo) List(ctx context.Context) ([]*quiz.Set, error) {
	const query = `SELECT id, name, questions, progress, completed FROM quiz_sets ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []*quiz.Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func (r *setRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quiz_sets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

func (r *setRepo) ImportDefinition(ctx context.Context, def *quiz.Set) error {
	existing, err := r.Get(ctx, def.ID)
	if err != nil {
		return err
	}

	merged := def.Clone()
	merged.Progress = map[string]quiz.Selection{}
	if existing != nil {
		// Keep the stored session state; drop entries orphaned by the
		// new definition.
		merged.Completed = existing.Completed
		for qid, sel := range existing.Progress {
			if _, ok := merged.Question(qid); ok {
				merged.Progress[qid] = sel
			}
		}
	}
	return r.Save(ctx, merged)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*quiz.Set, error) {
	var (
		set           quiz.Set
		questionsJSON string
		progressJSON  string
	)
	if err := row.Scan(&set.ID, &set.Name, &questionsJSON, &progressJSON, &set.Completed); err != nil {
		return nil, err
	}
	questions, err := decodeQuestions(questionsJSON)
	if err != nil {
		return nil, err
	}
	progress, err := decodeProgress(progressJSON)
	if err != nil {
		return nil, err
	}
	set.Questions = questions
	set.Progress = progress
	return &set, nil
}
