package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-match/internal/types"
)

func TestValidateCVFacts_Valid(t *testing.T) {
	doc := []byte(`{
		"summary": "Backend engineer",
		"skills": ["go", "python"],
		"experience": [
			{"title": "Engineer", "company": "Acme", "technologies": ["go"]}
		],
		"education": [{"degree": "B.Sc."}],
		"years_experience_total": 7
	}`)

	assert.NoError(t, ValidateCVFacts(doc))
}

func TestValidateCVFacts_RejectsWrongTypes(t *testing.T) {
	doc := []byte(`{"skills": "go", "years_experience_total": "seven"}`)

	err := ValidateCVFacts(doc)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateCVFacts_RejectsUnknownFields(t *testing.T) {
	doc := []byte(`{"skills": [], "favorite_color": "blue"}`)

	assert.Error(t, ValidateCVFacts(doc))
}

func TestValidateCVFacts_RoundTripsTypeDefinition(t *testing.T) {
	facts := types.CVFacts{
		Summary:              "Engineer",
		Skills:               []string{"go"},
		Languages:            []string{"python"},
		Frameworks:           []string{"django"},
		CloudPlatforms:       []string{"aws"},
		Databases:            []string{"postgresql"},
		Tools:                []string{"docker"},
		SoftSkills:           []string{"communication"},
		Experience:           []types.Experience{{Title: "Dev", Company: "Acme", Description: []string{"built things"}}},
		Education:            []types.Education{{Degree: "B.Sc.", Field: "CS"}},
		Certifications:       []string{"CKA"},
		YearsExperienceTotal: 5,
		SenioritySignals:     []string{"lead"},
		DomainExpertise:      []string{"fintech"},
	}
	doc, err := json.Marshal(facts)
	require.NoError(t, err)

	assert.NoError(t, ValidateCVFacts(doc))
}

func TestValidateJobRequirements_Valid(t *testing.T) {
	doc := []byte(`{
		"title": "Backend Engineer",
		"role_level": "senior",
		"must_have": ["python"],
		"nice_to_have": [],
		"management": {"required": true, "team_size": 4}
	}`)

	assert.NoError(t, ValidateJobRequirements(doc))
}

func TestValidateJobRequirements_RequiresTiers(t *testing.T) {
	doc := []byte(`{"title": "Engineer"}`)

	assert.Error(t, ValidateJobRequirements(doc))
}

func TestValidateJobRequirements_RoundTripsTypeDefinition(t *testing.T) {
	job := types.JobRequirements{
		Title:      "Engineer",
		MustHave:   []string{"go"},
		NiceToHave: []string{},
		Management: &types.ManagementRequirement{Required: true, TeamSize: 3},
	}
	doc, err := json.Marshal(job)
	require.NoError(t, err)

	assert.NoError(t, ValidateJobRequirements(doc))
}
