// Package extraction converts raw CV text into structured facts. The
// extraction prompt forbids inference; only claims present in the source
// text survive into the structured record.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/cv-match/internal/llm"
	"github.com/jonathan/cv-match/internal/prompts"
	"github.com/jonathan/cv-match/internal/schemas"
	"github.com/jonathan/cv-match/internal/types"
)

// ErrEmptyCV is returned when the input text contains nothing to extract.
var ErrEmptyCV = errors.New("cv text is empty")

// Extractor pulls structured facts out of free-form CV text
type Extractor struct {
	client llm.Client
}

func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract parses cvText into CVFacts. On LLM failure it returns a
// degraded record with Unparsed set so callers can persist the attempt
// and retry later, alongside the error that caused the degradation.
func (e *Extractor) Extract(ctx context.Context, cvText string) (*types.CVFacts, error) {
	trimmed := strings.TrimSpace(cvText)
	if trimmed == "" {
		return nil, ErrEmptyCV
	}
	if e.client == nil {
		return unparsed(trimmed), errors.New("extraction client not configured")
	}

	template := prompts.MustGet("extraction.json", "extract-cv-facts")
	prompt := prompts.Format(template, map[string]string{"CVText": trimmed})

	jsonResp, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return unparsed(trimmed), fmt.Errorf("extraction request failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(jsonResp)
	if err := schemas.ValidateCVFacts([]byte(cleaned)); err != nil {
		return unparsed(trimmed), fmt.Errorf("extraction response invalid: %w", err)
	}

	var facts types.CVFacts
	if err := json.Unmarshal([]byte(cleaned), &facts); err != nil {
		return unparsed(trimmed), fmt.Errorf("malformed extraction response: %w", err)
	}
	return &facts, nil
}

// unparsed builds the degraded record for a failed extraction. The
// summary carries a truncated copy of the source so the original content
// is not lost.
func unparsed(cvText string) *types.CVFacts {
	const maxSummary = 500
	summary := cvText
	if len(summary) > maxSummary {
		summary = summary[:maxSummary]
	}
	return &types.CVFacts{
		Summary:  summary,
		Unparsed: true,
	}
}
