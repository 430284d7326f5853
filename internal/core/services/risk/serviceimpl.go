package risk

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/domain"
)

var _ IRiskScorer = (*RiskScorer)(nil)

const maxScore = 100

// rule pairs a suspicious code pattern with the points it contributes
type rule struct {
	pattern *regexp.Regexp
	points  int
}

// suspiciousPatterns is the ordered rule set. The heuristics are
// deliberately simple and explainable: each match surfaces its reason to
// the submitter. The sandbox is the real safety boundary, not this list.
var suspiciousPatterns = []string{
	`\beval\(`,
	`\bexec\(`,
	`import\s+os`,
	`subprocess\.`,
	`socket\.`,
	`requests\.`,
	`ftplib\.`,
	`open\([^)]*['"]/etc`,
	`rm\s+-rf`,
	`os\.remove`,
	`shutil\.rmtree`,
	`popen\(`,
	`base64\.b64decode`,
	`urllib\.request`,
	`paramiko`,
	`ctypes\.`,
	`System\.Diagnostics`,
	`Process\.Start`,
	`CreateRemoteThread`,
}

var (
	base64BlobPattern  = regexp.MustCompile(`[A-Za-z0-9+/]{50,}={0,2}`)
	fileOpenPattern    = regexp.MustCompile(`\b(open|os\.open|Path\()`)
	readWriteModeWords = []string{"read", "write", "w+", "rb"}
)

// RiskScorer scans code against an ordered pattern rule set plus a pair of
// obfuscation and file-IO heuristics
type RiskScorer struct {
	rules             []rule
	obfuscationPoints int
	fileIOPoints      int
}

// NewRiskScorer creates a scorer with the configured rule weights
func NewRiskScorer(cfg *config.PipelineConfig) *RiskScorer {
	rules := make([]rule, 0, len(suspiciousPatterns))
	for _, p := range suspiciousPatterns {
		rules = append(rules, rule{
			pattern: regexp.MustCompile(p),
			points:  cfg.PatternPoints,
		})
	}
	return &RiskScorer{
		rules:             rules,
		obfuscationPoints: cfg.ObfuscationPoints,
		fileIOPoints:      cfg.FileIOPoints,
	}
}

// Assess scans code and returns its risk assessment. The score is capped at
// 100; empty input scores 0 with no reasons.
func (s *RiskScorer) Assess(code string) domain.RiskAssessment {
	var assessment domain.RiskAssessment

	for _, r := range s.rules {
		if r.pattern.MatchString(code) {
			assessment.Score += r.points
			assessment.Matches = append(assessment.Matches, domain.RiskMatch{
				Pattern: r.pattern.String(),
				Reason:  fmt.Sprintf("Matched suspicious pattern `%s`", r.pattern.String()),
			})
		}
	}

	// Long contiguous base64-alphabet runs are a cheap obfuscation proxy
	if base64BlobPattern.MatchString(code) {
		assessment.Score += s.obfuscationPoints
		assessment.Matches = append(assessment.Matches, domain.RiskMatch{
			Pattern: base64BlobPattern.String(),
			Reason:  "Detected long base64-like blob (possible obfuscation).",
		})
	}

	// File-open primitives together with read/write-mode tokens suggest
	// filesystem interaction
	if fileOpenPattern.MatchString(code) && containsReadWriteMode(code) {
		assessment.Score += s.fileIOPoints
		assessment.Matches = append(assessment.Matches, domain.RiskMatch{
			Pattern: fileOpenPattern.String(),
			Reason:  "Contains file read/write patterns.",
		})
	}

	if assessment.Score > maxScore {
		assessment.Score = maxScore
	}
	return assessment
}

func containsReadWriteMode(code string) bool {
	lowered := strings.ToLower(code)
	for _, word := range readWriteModeWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
