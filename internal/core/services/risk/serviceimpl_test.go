package risk_test

import (
	"strings"
	"testing"
	"time"

	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/core/services/risk"
)

func testConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		MaxCodeLength:     8000,
		RejectThreshold:   50,
		PatternPoints:     30,
		ObfuscationPoints: 20,
		FileIOPoints:      10,
		ExecTimeout:       time.Second,
		CatalogSampleSize: 10,
	}
}

func TestAssessEmptyCode(t *testing.T) {
	t.Parallel()
	scorer := risk.NewRiskScorer(testConfig())

	got := scorer.Assess("")
	if got.Score != 0 {
		t.Errorf("empty code score = %d, want 0", got.Score)
	}
	if len(got.Matches) != 0 {
		t.Errorf("empty code matches = %d, want 0", len(got.Matches))
	}
}

func TestAssessPatterns(t *testing.T) {
	t.Parallel()
	scorer := risk.NewRiskScorer(testConfig())

	tests := []struct {
		name      string
		code      string
		wantScore int
	}{
		{name: "benign", code: "print('hello world')", wantScore: 0},
		{name: "eval", code: "eval(user_input)", wantScore: 30},
		{name: "exec", code: "exec(payload)", wantScore: 30},
		{name: "import os", code: "import os\nprint(1)", wantScore: 30},
		{name: "subprocess", code: "subprocess.run(['ls'])", wantScore: 30},
		{name: "rm -rf", code: "cmd = 'rm -rf /tmp/x'", wantScore: 30},
		{name: "two patterns", code: "import os\nsubprocess.call('id')", wantScore: 60},
		{
			name:      "file io",
			code:      `f = open("notes.txt", "w+")`,
			wantScore: 10,
		},
		{
			name: "exec plus base64 blob",
			code: "exec(decode('" + strings.Repeat("QUJD", 20) + "=='))",
			// 30 for the pattern, 20 for the blob
			wantScore: 50,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := scorer.Assess(tt.code)
			if got.Score != tt.wantScore {
				t.Errorf("Assess(%q).Score = %d, want %d", tt.code, got.Score, tt.wantScore)
			}
		})
	}
}

func TestAssessScoreCappedAt100(t *testing.T) {
	t.Parallel()
	scorer := risk.NewRiskScorer(testConfig())

	code := strings.Join([]string{
		"import os",
		"eval(x)",
		"exec(y)",
		"subprocess.run('id')",
		"socket.connect(addr)",
		"requests.get(url)",
	}, "\n")

	got := scorer.Assess(code)
	if got.Score != 100 {
		t.Errorf("score = %d, want capped 100", got.Score)
	}
	if len(got.Matches) < 6 {
		t.Errorf("matches = %d, want at least 6", len(got.Matches))
	}
}

func TestAssessDeterministic(t *testing.T) {
	t.Parallel()
	scorer := risk.NewRiskScorer(testConfig())
	code := "import os\neval(input())\nf = open('x', 'rb')"

	first := scorer.Assess(code)
	second := scorer.Assess(code)

	if first.Score != second.Score {
		t.Fatalf("scores differ: %d vs %d", first.Score, second.Score)
	}
	if len(first.Matches) != len(second.Matches) {
		t.Fatalf("match counts differ: %d vs %d", len(first.Matches), len(second.Matches))
	}
	for i := range first.Matches {
		if first.Matches[i].Reason != second.Matches[i].Reason {
			t.Errorf("match %d reason differs: %q vs %q",
				i, first.Matches[i].Reason, second.Matches[i].Reason)
		}
	}
}

func TestAssessReasonsSurfaceInSummary(t *testing.T) {
	t.Parallel()
	scorer := risk.NewRiskScorer(testConfig())

	assessment := scorer.Assess("import os\nos.remove('/tmp/f')")
	summary := assessment.Summary("import os\nos.remove('/tmp/f')")

	if !strings.Contains(summary, "Risk score:") {
		t.Errorf("summary missing risk score: %q", summary)
	}
	for _, reason := range assessment.Reasons() {
		if !strings.Contains(summary, reason) {
			t.Errorf("summary missing reason %q", reason)
		}
	}
}

func TestSummaryWithoutMatches(t *testing.T) {
	t.Parallel()
	scorer := risk.NewRiskScorer(testConfig())

	assessment := scorer.Assess("print('hi')")
	summary := assessment.Summary("print('hi')")

	if !strings.Contains(summary, "No obvious static risk markers found.") {
		t.Errorf("benign summary = %q", summary)
	}
}
