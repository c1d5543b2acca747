// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintComparison outputs a human-readable summary of the requirement comparison.
func (p *Printer) PrintComparison(comparison *types.ComparisonResult) {
	if comparison == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Must-have:     %d/%d met\n",
		len(comparison.MatchedMustHave), comparison.TotalMustHave()))
	sb.WriteString(fmt.Sprintf("Nice-to-have:  %d/%d met\n",
		len(comparison.MatchedNiceHave), comparison.TotalNiceToHave()))
	sb.WriteString("\n")

	if len(comparison.MissingMustHave) > 0 {
		sb.WriteString("Missing must-haves:\n")
		count := min(len(comparison.MissingMustHave), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", comparison.MissingMustHave[i].Requirement))
		}
		if len(comparison.MissingMustHave) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(comparison.MissingMustHave)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Experience:    %s (%s)\n",
		comparison.ExperienceMatch.Status, comparison.ExperienceMatch.Evidence))
	sb.WriteString(fmt.Sprintf("Education:     %s (%s)\n",
		comparison.EducationMatch.Status, comparison.EducationMatch.Evidence))
	sb.WriteString(fmt.Sprintf("Management:    %s (%s)",
		comparison.ManagementMatch.Status, comparison.ManagementMatch.Evidence))

	p.printBox("REQUIREMENT COMPARISON", sb.String())
}

// PrintTransferability outputs the transferability assessments for missing
// must-have requirements.
func (p *Printer) PrintTransferability(assessments []types.TransferabilityAssessment) {
	if len(assessments) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(assessments), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := assessments[i]
		sb.WriteString(fmt.Sprintf("• %s\n", a.Requirement))
		sb.WriteString(fmt.Sprintf("  score %.1f, ramp-up %s\n", a.Score, a.RampUpTime))
	}
	if len(assessments) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(assessments)-maxItemsToShow))
	}

	p.printBox("TRANSFERABILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the final scores and explanation lists.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:         %3d\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Skills:          %3d (base %d)\n", result.SkillsScore, result.BaseSkillsScore))
	sb.WriteString(fmt.Sprintf("Experience:      %3d\n", result.ExperienceScore))
	sb.WriteString(fmt.Sprintf("Qualifications:  %3d\n", result.QualificationsScore))
	sb.WriteString(fmt.Sprintf("Method:          %s\n", result.ScoringMethod))

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + title + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	writeList("Strengths", result.Strengths)
	writeList("Gaps", result.Gaps)
	writeList("Recommendations", result.Recommendations)

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStage reports pipeline progress in verbose mode
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStage(stage string) {
	fmt.Fprintf(p.out, "→ %s\n", stage)
}
