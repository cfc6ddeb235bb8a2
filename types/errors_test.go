package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestRunErrorIs(t *testing.T) {
	err := NewRunError(ErrProvisioningFailed, "provision", errors.New("status 503"))

	if !errors.Is(err, ErrProvisioningFailed) {
		t.Error("should match ErrProvisioningFailed")
	}
	if errors.Is(err, ErrStagingFailed) {
		t.Error("should not match ErrStagingFailed")
	}
}

func TestRunErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewRunError(ErrProvisioningFailed, "provision", inner)

	if !errors.Is(err, inner) {
		t.Error("should unwrap to the underlying error")
	}
}

func TestRunErrorWrapped(t *testing.T) {
	err := fmt.Errorf("run aborted: %w", NewRunError(ErrMissingCredential, "provision", nil))

	if !errors.Is(err, ErrMissingCredential) {
		t.Error("classification should survive fmt.Errorf wrapping")
	}

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatal("errors.As should find the RunError")
	}
	if runErr.Op != "provision" {
		t.Errorf("op = %q, want provision", runErr.Op)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"missing credential", NewRunError(ErrMissingCredential, "provision", nil), true},
		{"provisioning", NewRunError(ErrProvisioningFailed, "provision", nil), true},
		{"malformed response", NewRunError(ErrMalformedResponse, "provision", nil), true},
		{"staging", NewRunError(ErrStagingFailed, "stage", nil), true},
		{"pipeline", NewRunError(ErrPipelineFailed, "invoke", nil), true},
		{"log upload skipped", NewRunError(ErrLogUploadSkipped, "report", nil), false},
		{"size measurement", NewRunError(ErrSizeMeasurement, "report", nil), false},
		{"size timeout", NewRunError(ErrSizeTimeout, "report", nil), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.fatal {
				t.Errorf("IsFatal = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestOutcomeFailed(t *testing.T) {
	ok := &RunOutcome{Status: OutcomeSucceeded, ExitCode: 0}
	if ok.Failed() {
		t.Error("succeeded outcome should not report failed")
	}

	bad := &RunOutcome{Status: OutcomeFailed, ExitCode: 137}
	if !bad.Failed() {
		t.Error("failed outcome should report failed")
	}

	var nilOutcome *RunOutcome
	if !nilOutcome.Failed() {
		t.Error("nil outcome is failed")
	}
}

func TestRunMetaValidate(t *testing.T) {
	meta := &RunMeta{RunName: "fold-1", WorkDir: "/nf-workdir"}
	if err := meta.Validate(); err != nil {
		t.Errorf("valid meta: %v", err)
	}

	if err := (&RunMeta{WorkDir: "/nf-workdir"}).Validate(); err == nil {
		t.Error("missing run name should fail validation")
	}
	if err := (&RunMeta{RunName: "fold-1"}).Validate(); err == nil {
		t.Error("missing work dir should fail validation")
	}
}
