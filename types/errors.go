package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for run failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
//
// The first five are fatal to the run. Reporting-phase failures
// (ErrLogUploadSkipped, ErrSizeMeasurement, ErrSizeTimeout) are logged
// as warnings and never change the final exit code.
var (
	// ErrMissingCredential indicates the execution token was not supplied.
	ErrMissingCredential = errors.New("missing execution token")

	// ErrProvisioningFailed indicates the storage dispatcher rejected the
	// provision request.
	ErrProvisioningFailed = errors.New("storage provisioning failed")

	// ErrMalformedResponse indicates a dispatcher response without the
	// expected handle field.
	ErrMalformedResponse = errors.New("malformed dispatcher response")

	// ErrStagingFailed indicates the workspace copy failed.
	ErrStagingFailed = errors.New("workspace staging failed")

	// ErrPipelineFailed indicates the pipeline runner exited non-zero or
	// could not be launched.
	ErrPipelineFailed = errors.New("pipeline execution failed")

	// ErrLogUploadSkipped indicates the run log could not be uploaded.
	ErrLogUploadSkipped = errors.New("log upload skipped")

	// ErrSizeMeasurement indicates the workspace size measurement failed.
	ErrSizeMeasurement = errors.New("workspace size measurement failed")

	// ErrSizeTimeout indicates the size measurement exceeded its deadline.
	ErrSizeTimeout = errors.New("workspace size measurement timed out")
)

// RunError wraps an underlying error with run failure classification.
// It preserves the original error in the chain for inspection via errors.As.
type RunError struct {
	// Kind is the sentinel error for classification.
	Kind error
	// Op is the operation that failed (e.g. "provision", "stage").
	Op string
	// Err is the underlying error, may be nil.
	Err error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *RunError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *RunError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewRunError creates a classified run error.
func NewRunError(kind error, op string, err error) *RunError {
	return &RunError{Kind: kind, Op: op, Err: err}
}

// IsFatal reports whether err carries one of the fatal classifications.
// Reporting-phase errors are never fatal.
func IsFatal(err error) bool {
	for _, kind := range []error{
		ErrMissingCredential,
		ErrProvisioningFailed,
		ErrMalformedResponse,
		ErrStagingFailed,
		ErrPipelineFailed,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
