package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ClearCache()

	prompt, err := Get("matching.json", "rate-transferability")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Requirement}}")
	assert.Contains(t, prompt, "transferability_score")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("matching.json", "no-such-prompt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "anything")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("matching.json", "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	template := "Candidate has {{.Years}} years with {{.Skill}}."
	got := Format(template, map[string]string{
		"Years": "5",
		"Skill": "go",
	})
	assert.Equal(t, "Candidate has 5 years with go.", got)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	got := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", got)
}

func TestList(t *testing.T) {
	keys, err := List("matching.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "rate-transferability")
	assert.Contains(t, keys, "generate-explanation")
	assert.Contains(t, keys, "holistic-match")
}

func TestExtractionPromptsPresent(t *testing.T) {
	prompt := MustGet("extraction.json", "extract-cv-facts")
	assert.Contains(t, prompt, "{{.CVText}}")
}
