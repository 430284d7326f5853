package domain

import "github.com/google/uuid"

// ExecutionResult represents a well-formed result returned by the execution
// backend. It is consumed to update the submission and then discarded.
type ExecutionResult struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	ExecutionTimeMs   int64
	MemoryUsedKb      int64
}

// ExecutionOutcome is the sum of the two things an execution attempt can
// produce: a structured result, or a failure reason. Transport errors,
// timeouts and malformed backend payloads all surface as failures so the
// pipeline never inspects transport-level shapes.
type ExecutionOutcome struct {
	Result        *ExecutionResult
	FailureReason string
}

// Failed reports whether the attempt produced no usable result
func (o ExecutionOutcome) Failed() bool {
	return o.Result == nil
}

// ExecutionSuccess wraps a structured backend result
func ExecutionSuccess(result *ExecutionResult) ExecutionOutcome {
	return ExecutionOutcome{Result: result}
}

// ExecutionFailure wraps a transport-level or malformed-response failure
func ExecutionFailure(reason string) ExecutionOutcome {
	return ExecutionOutcome{FailureReason: reason}
}

// Outcome is the structured event emitted per terminal transition for the
// presentation layer to render.
type Outcome struct {
	SubmissionID    uuid.UUID `json:"submissionId"`
	Status          Status    `json:"status"`
	RiskScore       int       `json:"riskScore"`
	Reasons         []string  `json:"reasons,omitempty"`
	Stdout          string    `json:"stdout,omitempty"`
	Stderr          string    `json:"stderr,omitempty"`
	CompileOutput   string    `json:"compileOutput,omitempty"`
	ExecutionTimeMs int64     `json:"executionTimeMs,omitempty"`
	MemoryUsedKb    int64     `json:"memoryUsedKb,omitempty"`
	FailureReason   string    `json:"failureReason,omitempty"`
	KnownLanguages  []string  `json:"knownLanguages,omitempty"`
}
