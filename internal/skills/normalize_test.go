package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-match/internal/types"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"golang to go", "Golang", "go"},
		{"k8s to kubernetes", "k8s", "kubernetes"},
		{"aws expanded", "AWS", "amazon web services"},
		{"postgres canonical", "Postgres", "postgresql"},
		{"react.js variant", "React.js", "react"},
		{"node to nodejs", "Node", "nodejs"},
		{"unknown kept as lowercase", "Haskell", "haskell"},
		{"whitespace trimmed", "  Python  ", "python"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToken(tt.input))
		})
	}
}

func TestNormalizeToken_Idempotent(t *testing.T) {
	for _, token := range []string{"Golang", "k8s", "AWS", "React.js", "Haskell"} {
		once := NormalizeToken(token)
		assert.Equal(t, once, NormalizeToken(once), "normalizing %q twice must not change it", token)
	}
}

func TestNormalizeCVFacts(t *testing.T) {
	cv := &types.CVFacts{
		Skills:         []string{"Golang", "K8s"},
		Languages:      []string{"Python"},
		CloudPlatforms: []string{"AWS"},
		Experience: []types.Experience{
			{Title: "Engineer", Technologies: []string{"Postgres", "ReactJS"}},
		},
	}

	normalized := NormalizeCVFacts(cv)

	assert.Equal(t, []string{"go", "kubernetes"}, normalized.Skills)
	assert.Equal(t, []string{"python"}, normalized.Languages)
	assert.Equal(t, []string{"amazon web services"}, normalized.CloudPlatforms)
	assert.Equal(t, []string{"postgresql", "react"}, normalized.Experience[0].Technologies)

	// The input must not be mutated
	assert.Equal(t, []string{"Golang", "K8s"}, cv.Skills)
}

func TestNormalizeRequirementString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"variant inside sentence", "Experience with Golang services", "experience with go services"},
		{"years requirement", "3+ years Python", "3+ years python"},
		{"k8s rewritten", "Production K8s experience", "production kubernetes experience"},
		{"athena expanded", "Athena experience", "aws athena experience"},
		{"no double rewrite", "Amazon Web Services (AWS)", "amazon web services (aws)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRequirementString(tt.input))
		})
	}
}

func TestNormalizeRequirementString_Deterministic(t *testing.T) {
	input := "Node, node.js and NodeJS on K8s"
	first := NormalizeRequirementString(input)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, NormalizeRequirementString(input))
	}
}

func TestAllCVTech(t *testing.T) {
	cv := &types.CVFacts{
		Skills:    []string{"go", "python"},
		Databases: []string{"postgresql"},
		Tools:     []string{"docker"},
	}

	tech := AllCVTech(cv)

	require.Len(t, tech, 4)
	assert.True(t, tech["go"])
	assert.True(t, tech["postgresql"])
	assert.False(t, tech["kubernetes"])
}

func TestKnownTechnology(t *testing.T) {
	assert.True(t, KnownTechnology("experience with python"))
	assert.True(t, KnownTechnology("3+ years golang"))
	assert.True(t, KnownTechnology("kubernetes administration"))
	assert.False(t, KnownTechnology("excellent communication skills"))
	assert.False(t, KnownTechnology("bachelor's degree in computer science"))
}

func TestKnownTechnology_WordBoundaries(t *testing.T) {
	// "go" must not match inside other words
	assert.False(t, KnownTechnology("good communication"))
	assert.False(t, KnownTechnology("category management"))
	assert.True(t, KnownTechnology("go microservices"))
}
