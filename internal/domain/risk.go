package domain

import (
	"fmt"
	"strings"
)

// RiskMatch records a single triggered risk rule
type RiskMatch struct {
	Pattern string
	Reason  string
}

// RiskAssessment is the result of statically scanning submitted code.
// It is recomputed per submission and never persisted on its own; the
// rendered summary is folded into the submission record.
type RiskAssessment struct {
	Score   int
	Matches []RiskMatch
}

// Reasons returns the human-readable reasons in match order
func (a RiskAssessment) Reasons() []string {
	reasons := make([]string, 0, len(a.Matches))
	for _, m := range a.Matches {
		reasons = append(reasons, m.Reason)
	}
	return reasons
}

// Summary renders the assessment into the review text stored on the
// submission: a short excerpt of the code followed by the matched reasons.
func (a RiskAssessment) Summary(code string) string {
	var b strings.Builder
	b.WriteString("Static review summary:\n")

	lines := strings.Split(code, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	fmt.Fprintf(&b, "First lines:\n```\n%s\n```\n", strings.Join(lines, "\n"))

	if len(a.Matches) == 0 {
		b.WriteString("No obvious static risk markers found.")
		return b.String()
	}

	fmt.Fprintf(&b, "Risk score: %d\n", a.Score)
	b.WriteString("Potential risks:\n")
	for _, m := range a.Matches {
		fmt.Fprintf(&b, "- %s\n", m.Reason)
	}
	return strings.TrimRight(b.String(), "\n")
}
