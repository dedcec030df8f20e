package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studytube-app/studytube/internal/gemini"
)

// LLM is the language model used to generate notes. The production
// implementation is *gemini.Client.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// promptTemplate embeds the resolved content and a strict output-format
// instruction. The model is asked for bare JSON; stripping whatever prose it
// wraps around that JSON anyway is the parser's job, not the prompt's.
const promptTemplate = `You are an expert study notes generator. Create comprehensive study notes based on this content:

Content:
%s

Provide the study notes in this JSON format ONLY (no other text):
{
  "title": "Topic title",
  "summary": "Brief overview (2-3 sentences)",
  "keyPoints": ["point 1", "point 2", "point 3", "point 4", "point 5"],
  "sections": [
    {
      "heading": "Section heading",
      "content": "Detailed content"
    }
  ],
  "keyTerms": ["term1: definition", "term2: definition"],
  "quizQuestions": [
    {
      "question": "Question?",
      "options": ["A", "B", "C", "D"],
      "answer": "A"
    }
  ]
}

Return ONLY valid JSON.`

// Generator invokes the model once per request. No retry, no backoff, no
// output repair — malformed output is the validator's problem.
type Generator struct {
	llm     LLM
	timeout time.Duration
}

func NewGenerator(llm LLM, timeout time.Duration) *Generator {
	return &Generator{llm: llm, timeout: timeout}
}

// Generate builds the prompt for content and returns the model's raw text
// output unmodified. The call waits at most the configured timeout; expiry
// surfaces as ErrModelUnavailable, other invocation faults as
// ErrModelInvocation.
func (g *Generator) Generate(ctx context.Context, content string) (string, error) {
	if g.llm == nil {
		return "", ErrModelUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.llm.Complete(ctx, BuildPrompt(content))
	if err != nil {
		switch {
		case errors.Is(err, gemini.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
			return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		case errors.Is(err, gemini.ErrNoAPIKey):
			return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		default:
			return "", fmt.Errorf("%w: %v", ErrModelInvocation, err)
		}
	}
	return raw, nil
}

// BuildPrompt returns the deterministic prompt for the given content.
func BuildPrompt(content string) string {
	return fmt.Sprintf(promptTemplate, content)
}
