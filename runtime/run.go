// Package runtime orchestrates a single managed pipeline run: storage
// provisioning, workspace staging, runner invocation, and the post-run
// reporting that must happen no matter how the pipeline ends.
package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justapithecus/foldrun/log"
	"github.com/justapithecus/foldrun/metrics"
	"github.com/justapithecus/foldrun/params"
	"github.com/justapithecus/foldrun/types"
)

// Dispatcher is the slice of the dispatcher client the orchestrator
// uses.
type Dispatcher interface {
	Provision(ctx context.Context) (string, error)
	RenameExecution(ctx context.Context, name string) error
	ExecutionName(ctx context.Context) (string, error)
	ReportStorageUsage(ctx context.Context, usedBytes int64) error
}

// Stager copies the task filesystem into the shared work directory.
type Stager interface {
	Stage(src, dst string) error
}

// RunConfig configures a single run.
type RunConfig struct {
	// RunMeta is the run identity metadata.
	RunMeta *types.RunMeta
	// SourceRoot is the task filesystem root staged into the work
	// directory.
	SourceRoot string
	// RunnerPath is the path to the runner binary.
	RunnerPath string
	// ConfigFile is the platform config file passed to the runner.
	ConfigFile string
	// Profiles are the runner profiles.
	Profiles []string
	// Values are the pipeline parameter bindings.
	Values params.Values
	// NXFHome overrides the runner home directory.
	NXFHome string
	// Dispatcher provisions storage and resolves execution identity.
	Dispatcher Dispatcher
	// Stager stages the task filesystem. If nil, staging is skipped
	// (the work directory is assumed prepared).
	Stager Stager
	// Reporter runs post-run reporting. If nil, reporting is skipped.
	Reporter *Reporter
	// InvokerFactory overrides process creation (for testing).
	// If nil, uses NewPipelineProcess.
	InvokerFactory InvokerFactory
	// Collector is the metrics collector for this run.
	// If nil, no metrics are recorded (all Collector methods are
	// nil-safe).
	Collector *metrics.Collector
}

// RunResult represents the result of a run.
type RunResult struct {
	// RunMeta is the run identity, with Volume filled in.
	RunMeta *types.RunMeta
	// Outcome is the run outcome.
	Outcome *types.RunOutcome
	// Duration is the total run duration.
	Duration time.Duration
	// Command is the full runner argv that was (or would have been)
	// launched.
	Command []string
	// WorkspaceBytes is the measured workspace size, 0 when the
	// measurement failed or timed out.
	WorkspaceBytes int64
}

// Orchestrator drives a single run end-to-end.
type Orchestrator struct {
	config    *RunConfig
	logger    *log.Logger
	startTime time.Time
}

// NewOrchestrator creates a run orchestrator.
// Returns an error if run metadata is invalid.
func NewOrchestrator(config *RunConfig) (*Orchestrator, error) {
	if err := config.RunMeta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run metadata: %w", err)
	}

	return &Orchestrator{
		config: config,
		logger: log.NewLogger(config.RunMeta),
	}, nil
}

// Execute executes the run end-to-end.
//
// Execution flow:
//  1. Provision the shared storage volume (fatal on failure)
//  2. Rename the managed execution (warning on failure)
//  3. Stage the task filesystem into the work directory (fatal)
//  4. Launch the runner and wait for exit
//  5. Post-run reporting, unconditionally once launch was attempted
//
// Setup failures (steps 1 and 3) return an error before any process
// starts; from step 4 on, failures surface through the outcome and the
// reporter always runs.
func (r *Orchestrator) Execute(ctx context.Context) (*RunResult, error) {
	r.startTime = time.Now()
	r.config.Collector.IncRunsStarted()

	r.logger.Info("provisioning shared storage volume", nil)
	volume, err := r.config.Dispatcher.Provision(ctx)
	if err != nil {
		r.logFailure("storage provisioning failed", err)
		return nil, err
	}
	r.config.RunMeta.Volume = volume
	r.logger.Info("provisioned shared storage volume", map[string]any{
		"volume": volume,
	})

	if err := r.config.Dispatcher.RenameExecution(ctx, r.config.RunMeta.RunName); err != nil {
		r.logFailure("failed to rename execution", err)
	}

	if r.config.Stager != nil {
		r.logger.Info("staging task filesystem", map[string]any{
			"source":   r.config.SourceRoot,
			"work_dir": r.config.RunMeta.WorkDir,
		})
		if err := r.config.Stager.Stage(r.config.SourceRoot, r.config.RunMeta.WorkDir); err != nil {
			r.logFailure("workspace staging failed", err)
			return nil, err
		}
	}

	invCfg := &InvokerConfig{
		RunnerPath: r.config.RunnerPath,
		WorkDir:    r.config.RunMeta.WorkDir,
		ConfigFile: r.config.ConfigFile,
		Profiles:   r.config.Profiles,
		Values:     r.config.Values,
		NXFHome:    r.config.NXFHome,
	}
	command, err := BuildCommand(invCfg)
	if err != nil {
		return nil, fmt.Errorf("build runner command: %w", err)
	}

	return r.invoke(ctx, invCfg, command)
}

// invoke runs the subprocess phase. The reporter is deferred so it
// runs on every path out of this function that produced a result.
func (r *Orchestrator) invoke(ctx context.Context, invCfg *InvokerConfig, command []string) (result *RunResult, err error) {
	defer func() {
		if result != nil && r.config.Reporter != nil {
			r.config.Reporter.Report(context.WithoutCancel(ctx), result)
		}
	}()

	r.logger.Info("launching runner", map[string]any{
		"command": strings.Join(command, " "),
	})

	var invoker Invoker
	if r.config.InvokerFactory != nil {
		invoker = r.config.InvokerFactory(invCfg)
	} else {
		invoker = NewPipelineProcess(invCfg)
	}

	if err := invoker.Start(ctx); err != nil {
		r.config.Collector.IncLaunchFailures()
		r.config.Collector.RecordOutcome(false)
		r.logFailure("failed to launch runner", types.NewRunError(types.ErrPipelineFailed, "launch", err))
		return r.buildResult(LaunchFailureOutcome(err), command), nil
	}

	invResult, err := invoker.Wait()
	if err != nil {
		r.config.Collector.RecordOutcome(false)
		r.logFailure("runner wait failed", types.NewRunError(types.ErrPipelineFailed, "wait", err))
		return r.buildResult(LaunchFailureOutcome(err), command), nil
	}

	outcome := DetermineOutcome(invResult.ExitCode)
	r.config.Collector.RecordOutcome(!outcome.Failed())
	r.logger.Info("runner exited", map[string]any{
		"exit_code": invResult.ExitCode,
		"status":    string(outcome.Status),
	})

	return r.buildResult(outcome, command), nil
}

// logFailure records a step failure at a level matching its
// classification: fatal errors at error level, everything else as a
// warning.
func (r *Orchestrator) logFailure(msg string, err error) {
	fields := map[string]any{"error": err.Error()}
	if types.IsFatal(err) {
		r.logger.Error(msg, fields)
		return
	}
	r.logger.Warn(msg, fields)
}

func (r *Orchestrator) buildResult(outcome *types.RunOutcome, command []string) *RunResult {
	return &RunResult{
		RunMeta:  r.config.RunMeta,
		Outcome:  outcome,
		Duration: time.Since(r.startTime),
		Command:  command,
	}
}
