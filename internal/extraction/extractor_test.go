package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-match/internal/llm"
)

// stubClient satisfies llm.Client with canned output
type stubClient struct {
	response string
	err      error
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GetModel(_ llm.ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }

const validFactsJSON = `{
	"summary": "Backend engineer with 7 years of experience",
	"skills": ["go", "python"],
	"experience": [{"title": "Engineer", "company": "Acme"}],
	"education": [{"degree": "B.Sc. Computer Science"}],
	"years_experience_total": 7
}`

func TestExtract(t *testing.T) {
	e := NewExtractor(&stubClient{response: validFactsJSON})

	facts, err := e.Extract(context.Background(), "Jane Doe, backend engineer...")
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "python"}, facts.Skills)
	assert.Equal(t, 7, facts.YearsExperienceTotal)
	assert.False(t, facts.Unparsed)
}

func TestExtract_StripsCodeFence(t *testing.T) {
	e := NewExtractor(&stubClient{response: "```json\n" + validFactsJSON + "\n```"})

	facts, err := e.Extract(context.Background(), "cv text")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "python"}, facts.Skills)
}

func TestExtract_EmptyText(t *testing.T) {
	e := NewExtractor(&stubClient{response: validFactsJSON})

	_, err := e.Extract(context.Background(), "   \n ")
	assert.ErrorIs(t, err, ErrEmptyCV)
}

func TestExtract_LLMFailureReturnsUnparsedRecord(t *testing.T) {
	e := NewExtractor(&stubClient{err: errors.New("quota exceeded")})

	facts, err := e.Extract(context.Background(), "Jane Doe, backend engineer")
	require.Error(t, err)
	require.NotNil(t, facts)

	assert.True(t, facts.Unparsed)
	assert.Contains(t, facts.Summary, "Jane Doe")
}

func TestExtract_SchemaViolationReturnsUnparsedRecord(t *testing.T) {
	e := NewExtractor(&stubClient{response: `{"skills": "not a list"}`})

	facts, err := e.Extract(context.Background(), "cv text")
	require.Error(t, err)
	require.NotNil(t, facts)
	assert.True(t, facts.Unparsed)
}

func TestExtract_LongTextTruncatedInDegradedSummary(t *testing.T) {
	e := NewExtractor(&stubClient{err: errors.New("down")})

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}

	facts, err := e.Extract(context.Background(), string(long))
	require.Error(t, err)
	assert.Len(t, facts.Summary, 500)
}

func TestExtract_NilClient(t *testing.T) {
	e := NewExtractor(nil)

	facts, err := e.Extract(context.Background(), "cv text")
	require.Error(t, err)
	require.NotNil(t, facts)
	assert.True(t, facts.Unparsed)
}
