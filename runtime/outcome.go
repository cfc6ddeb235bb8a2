package runtime

import (
	"fmt"

	"github.com/justapithecus/foldrun/types"
)

// DetermineOutcome maps the runner exit code to a run outcome.
// The pipeline owns its internal retry and recovery; by the time the
// process exits, zero means the run succeeded and anything else means
// it failed. Signal deaths (137 and friends) are failures like any
// other nonzero code.
func DetermineOutcome(exitCode int) *types.RunOutcome {
	if exitCode == 0 {
		return &types.RunOutcome{
			Status:   types.OutcomeSucceeded,
			Message:  "pipeline completed successfully",
			ExitCode: 0,
		}
	}
	return &types.RunOutcome{
		Status:   types.OutcomeFailed,
		Message:  fmt.Sprintf("pipeline exited with code %d", exitCode),
		ExitCode: exitCode,
	}
}

// LaunchFailureOutcome is the outcome when the runner process could
// not be started at all. ExitCode -1 marks that no process exit code
// exists.
func LaunchFailureOutcome(err error) *types.RunOutcome {
	return &types.RunOutcome{
		Status:   types.OutcomeFailed,
		Message:  fmt.Sprintf("failed to launch runner: %v", err),
		ExitCode: -1,
	}
}
