// Package interchange serializes quiz set definitions to and from the
// JSON interchange format. Only the definition travels: progress and
// the completed flag are session-local and never cross this boundary.
package interchange

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mpiekarski/quizdeck/internal/quiz"
)

// Document is the interchange representation of a set definition.
type Document struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Questions []QuestionDocument `json:"questions"`
}

// QuestionDocument is a question within a Document.
type QuestionDocument struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Answers []AnswerDocument `json:"answers"`
}

// AnswerDocument is an answer option within a QuestionDocument.
type AnswerDocument struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Export renders the set's definition as pretty-printed JSON.
func Export(set *quiz.Set) ([]byte, error) {
	doc := Document{
		ID:        set.ID,
		Name:      set.Name,
		Questions: make([]QuestionDocument, len(set.Questions)),
	}
	for i, q := range set.Questions {
		answers := make([]AnswerDocument, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = AnswerDocument{ID: a.ID, Text: a.Text, IsCorrect: a.Correct}
		}
		doc.Questions[i] = QuestionDocument{ID: q.ID, Text: q.Text, Answers: answers}
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode set: %w", err)
	}
	return b, nil
}

// Import parses and validates an interchange document and returns the
// set it defines, with empty progress. Missing or malformed ids are
// replaced with fresh ones rather than rejected, so hand-written
// documents stay importable.
func Import(data []byte) (*quiz.Set, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("invalid quiz set document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	set := &quiz.Set{
		ID:        validID(doc.ID),
		Name:      doc.Name,
		Questions: make([]quiz.Question, len(doc.Questions)),
		Progress:  map[string]quiz.Selection{},
	}
	for i, qd := range doc.Questions {
		answers := make([]quiz.Answer, len(qd.Answers))
		for j, ad := range qd.Answers {
			answers[j] = quiz.Answer{ID: validID(ad.ID), Text: ad.Text, Correct: ad.IsCorrect}
		}
		set.Questions[i] = quiz.Question{ID: validID(qd.ID), Text: qd.Text, Answers: answers}
	}
	return set, nil
}

func validID(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return quiz.NewID()
	}
	return id
}

// documentSchema rejects structurally broken documents up front; id
// repair and content rules beyond shape stay in Go code.
const documentSchema = `{
	"type": "object",
	"required": ["name", "questions"],
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string", "minLength": 1},
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["text", "answers"],
				"properties": {
					"id": {"type": "string"},
					"text": {"type": "string", "minLength": 1},
					"answers": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["text", "isCorrect"],
							"properties": {
								"id": {"type": "string"},
								"text": {"type": "string"},
								"isCorrect": {"type": "boolean"}
							}
						}
					}
				}
			}
		}
	}
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(documentSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://quizdeck-set.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}
