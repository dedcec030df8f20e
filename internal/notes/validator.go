package notes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawDocument detects missing keys: a field absent from the JSON stays nil,
// which a direct unmarshal into StudyNotesDocument would silently default.
type rawDocument struct {
	Title         *string        `json:"title"`
	Summary       *string        `json:"summary"`
	KeyPoints     *[]string      `json:"keyPoints"`
	Sections      *[]rawSection  `json:"sections"`
	KeyTerms      *[]string      `json:"keyTerms"`
	QuizQuestions *[]rawQuestion `json:"quizQuestions"`
}

type rawSection struct {
	Heading *string `json:"heading"`
	Content *string `json:"content"`
}

type rawQuestion struct {
	Question *string   `json:"question"`
	Options  *[]string `json:"options"`
	Answer   *string   `json:"answer"`
}

// ParseDocument extracts the study-notes JSON object from the model's raw
// text output and validates its shape. The span between the first '{' and the
// last '}' is parsed; everything outside it (preambles, code fences, trailing
// commentary) is discarded. Structural problems — no span, invalid JSON,
// missing keys, wrong element types — all fail with ErrUnparseableResponse.
func ParseDocument(raw string) (*StudyNotesDocument, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found in model output", ErrUnparseableResponse)
	}

	var rd rawDocument
	if err := json.Unmarshal([]byte(raw[start:end+1]), &rd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}

	doc, err := rd.toDocument()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}
	return doc, nil
}

func (rd *rawDocument) toDocument() (*StudyNotesDocument, error) {
	switch {
	case rd.Title == nil:
		return nil, fmt.Errorf("missing field %q", "title")
	case rd.Summary == nil:
		return nil, fmt.Errorf("missing field %q", "summary")
	case rd.KeyPoints == nil:
		return nil, fmt.Errorf("missing field %q", "keyPoints")
	case rd.Sections == nil:
		return nil, fmt.Errorf("missing field %q", "sections")
	case rd.KeyTerms == nil:
		return nil, fmt.Errorf("missing field %q", "keyTerms")
	case rd.QuizQuestions == nil:
		return nil, fmt.Errorf("missing field %q", "quizQuestions")
	}

	doc := &StudyNotesDocument{
		Title:     *rd.Title,
		Summary:   *rd.Summary,
		KeyPoints: *rd.KeyPoints,
		KeyTerms:  *rd.KeyTerms,
	}

	for i, s := range *rd.Sections {
		if s.Heading == nil || s.Content == nil {
			return nil, fmt.Errorf("sections[%d] missing heading or content", i)
		}
		doc.Sections = append(doc.Sections, Section{Heading: *s.Heading, Content: *s.Content})
	}

	for i, q := range *rd.QuizQuestions {
		if q.Question == nil || q.Options == nil || q.Answer == nil {
			return nil, fmt.Errorf("quizQuestions[%d] missing question, options or answer", i)
		}
		if len(*q.Options) != 4 {
			return nil, fmt.Errorf("quizQuestions[%d] has %d options, want 4", i, len(*q.Options))
		}
		// Answer membership in options is deliberately not checked.
		doc.QuizQuestions = append(doc.QuizQuestions, QuizQuestion{
			Question: *q.Question,
			Options:  *q.Options,
			Answer:   *q.Answer,
		})
	}

	return doc, nil
}
