// Package types provides type definitions for structured data used throughout the cv-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CVFacts represents the structured facts extracted from a candidate's résumé.
// It is produced once per résumé by the extraction capability and treated as
// an immutable input to the matching pipeline.
type CVFacts struct {
	Summary        string   `json:"summary,omitempty"`
	Skills         []string `json:"skills"`
	Languages      []string `json:"languages"`
	Frameworks     []string `json:"frameworks"`
	CloudPlatforms []string `json:"cloud_platforms"`
	Databases      []string `json:"databases"`
	Tools          []string `json:"tools"`
	SoftSkills     []string `json:"soft_skills,omitempty"`

	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Certifications []string     `json:"certifications"`

	YearsExperienceTotal int      `json:"years_experience_total"`
	SenioritySignals     []string `json:"seniority_signals"`
	DomainExpertise      []string `json:"domain_expertise"`

	// Unparsed marks a degraded record produced when extraction failed.
	// Downstream scoring treats an unparsed CV as all-gaps.
	Unparsed bool `json:"unparsed,omitempty"`
}

// Experience represents one position in the candidate's work history
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period,omitempty"`
	Description  []string `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education represents one educational credential
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// TechFields returns pointers to every technology-bearing string list in the
// CV, used by normalization to apply the canonical vocabulary uniformly.
func (cv *CVFacts) TechFields() []*[]string {
	return []*[]string{
		&cv.Skills,
		&cv.Languages,
		&cv.Frameworks,
		&cv.CloudPlatforms,
		&cv.Databases,
		&cv.Tools,
	}
}
