package types

// OutcomeStatus is the terminal status of a pipeline invocation.
type OutcomeStatus string

const (
	// OutcomeSucceeded indicates the pipeline exited with status 0.
	OutcomeSucceeded OutcomeStatus = "succeeded"
	// OutcomeFailed indicates a non-zero exit or a launch failure.
	OutcomeFailed OutcomeStatus = "failed"
)

// RunOutcome describes how a pipeline invocation resolved.
// Exit codes are authoritative: 0 maps to succeeded, everything else
// (including signal deaths reported as 128+n) maps to failed.
type RunOutcome struct {
	// Status is the outcome status.
	Status OutcomeStatus `json:"status"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// ExitCode is the runner process exit code. -1 when the process
	// could not be launched at all.
	ExitCode int `json:"exit_code"`
}

// Failed reports whether the invocation resolved to failed.
func (o *RunOutcome) Failed() bool {
	return o == nil || o.Status != OutcomeSucceeded
}
