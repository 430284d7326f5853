package risk

import (
	"github.com/crucible-dev/crucible/internal/domain"
)

// IRiskScorer defines the interface for static risk triage of submitted code
type IRiskScorer interface {
	// Assess scans code against the rule set and returns a bounded score
	// with the matched reasons. Pure and deterministic; never fails.
	Assess(code string) domain.RiskAssessment
}
