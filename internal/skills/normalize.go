// Package skills provides canonical skill vocabulary normalization.
// Normalizing both sides of a comparison to the same vocabulary is what
// keeps "React.js" on a CV from missing "React" in a job requirement.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-match/internal/types"
)

// canonicalNames maps common skill name variants to canonical lower-case names
var canonicalNames = map[string]string{
	// Languages
	"golang":   "go",
	"go lang":  "go",
	"python3":  "python",
	"python 3": "python",
	"c++":      "cpp",
	"c#":       "csharp",
	".net":     "dotnet",

	"javascript": "js",
	"typescript": "ts",
	"node.js":    "nodejs",
	"node":       "nodejs",

	// Frontend frameworks
	"react.js":   "react",
	"reactjs":    "react",
	"react js":   "react",
	"angular.js": "angular",
	"angularjs":  "angular",
	"angular js": "angular",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"vue js":     "vue",
	"next.js":    "nextjs",

	// Backend frameworks
	"express.js":  "express",
	"expressjs":   "express",
	"spring boot": "spring",
	"springboot":  "spring",

	// Cloud platforms
	"aws":                   "amazon web services",
	"gcp":                   "google cloud",
	"google cloud platform": "google cloud",
	"microsoft azure":       "azure",
	"azure cloud services":  "azure",

	// Databases
	"postgres":             "postgresql",
	"mongo":                "mongodb",
	"mssql":                "sql server",
	"microsoft sql server": "sql server",

	// DevOps tools
	"k8s": "kubernetes",

	// Big data
	"spark":        "apache spark",
	"kafka":        "apache kafka",
	"athena":       "aws athena",
	"drill":        "apache drill",
	"presto":       "presto",
	"hadoop":       "hadoop",
	"trino":        "trino",
	"terraform":    "terraform",
	"ansible":      "ansible",
	"docker":       "docker",
	"kubernetes":   "kubernetes",
	"jenkins":      "jenkins",
	"redis":        "redis",
	"django":       "django",
	"flask":        "flask",
	"fastapi":      "fastapi",
	"mysql":        "mysql",
	"dynamodb":     "dynamodb",
	"postgresql":   "postgresql",
	"mongodb":      "mongodb",
	"apache spark": "apache spark",
	"apache kafka": "apache kafka",
}

// orderedVariants lists the table keys longest-first so that requirement
// string rewriting is deterministic and longer variants ("node.js") win
// over their prefixes ("node").
var orderedVariants = func() []string {
	variants := make([]string, 0, len(canonicalNames))
	for v := range canonicalNames {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool {
		if len(variants[i]) != len(variants[j]) {
			return len(variants[i]) > len(variants[j])
		}
		return variants[i] < variants[j]
	})
	return variants
}()

// NormalizeToken normalizes a single skill token to its canonical form.
// Unmapped tokens degrade to identity mapping (lower-cased, trimmed);
// a missing table entry is never an error.
func NormalizeToken(token string) string {
	if token == "" {
		return token
	}

	lower := strings.ToLower(strings.TrimSpace(token))
	if canonical, ok := canonicalNames[lower]; ok {
		return canonical
	}
	return lower
}

// NormalizeCVFacts returns a copy of the CV with every technology-bearing
// field mapped through the canonical vocabulary, including experience entry
// technologies. The input is not modified.
func NormalizeCVFacts(cv *types.CVFacts) *types.CVFacts {
	if cv == nil {
		return nil
	}

	normalized := *cv
	normalized.Experience = make([]types.Experience, len(cv.Experience))
	copy(normalized.Experience, cv.Experience)

	for _, field := range normalized.TechFields() {
		*field = normalizeList(*field)
	}

	for i := range normalized.Experience {
		normalized.Experience[i].Technologies = normalizeList(normalized.Experience[i].Technologies)
	}

	return &normalized
}

// NormalizeJobRequirements returns a copy of the job requirements with every
// requirement string rewritten through the canonical vocabulary.
func NormalizeJobRequirements(job *types.JobRequirements) *types.JobRequirements {
	if job == nil {
		return nil
	}

	normalized := *job
	normalized.MustHave = normalizeRequirementStrings(job.MustHave)
	normalized.NiceToHave = normalizeRequirementStrings(job.NiceToHave)
	return &normalized
}

// NormalizeRequirementString lower-cases a requirement string like
// "3+ Years Python" and replaces any known skill variants with their
// canonical names.
func NormalizeRequirementString(requirement string) string {
	if requirement == "" {
		return requirement
	}

	lower := strings.ToLower(requirement)
	for _, variant := range orderedVariants {
		canonical := canonicalNames[variant]
		if variant == canonical {
			continue
		}
		// Skip when the canonical form is already present as a token;
		// rewriting again would corrupt it (e.g. "aws athena" ->
		// "amazon web services athena"). Plain Contains would be wrong
		// here: "golang" contains "go" and would never be rewritten.
		if containsToken(lower, canonical) {
			continue
		}
		lower = strings.ReplaceAll(lower, variant, canonical)
	}
	return lower
}

// AllCVTech collects every technology from the CV's skill fields into a
// single set of canonical tokens.
func AllCVTech(cv *types.CVFacts) map[string]bool {
	tech := make(map[string]bool)
	if cv == nil {
		return tech
	}

	collect := func(list []string) {
		for _, t := range list {
			if normalized := NormalizeToken(t); normalized != "" {
				tech[normalized] = true
			}
		}
	}

	collect(cv.Skills)
	collect(cv.Languages)
	collect(cv.Frameworks)
	collect(cv.CloudPlatforms)
	collect(cv.Databases)
	collect(cv.Tools)

	return tech
}

// KnownTechnology reports whether the requirement string names a technology
// from the canonical vocabulary. Used by requirement classification to tell
// "3+ years Python" (a skill requirement) apart from "3+ years backend
// engineering" (a generic experience requirement).
func KnownTechnology(requirement string) bool {
	lower := strings.ToLower(requirement)
	for variant, canonical := range canonicalNames {
		if containsToken(lower, variant) || containsToken(lower, canonical) {
			return true
		}
	}
	return false
}

// containsToken checks for a word-ish occurrence of token inside text,
// so that "go" does not match inside "google".
func containsToken(text, token string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], token)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(token)

		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func normalizeList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = NormalizeToken(s)
	}
	return out
}

func normalizeRequirementStrings(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = NormalizeRequirementString(s)
	}
	return out
}
