package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/justapithecus/foldrun/iox"
	"github.com/justapithecus/foldrun/log"
	"github.com/justapithecus/foldrun/metrics"
	"github.com/justapithecus/foldrun/store"
	"github.com/justapithecus/foldrun/types"
	"github.com/justapithecus/foldrun/workspace"
)

// runnerLogName is the log file the runner leaves in the work
// directory.
const runnerLogName = ".nextflow.log"

// archivedLogName is the name the log is archived under.
const archivedLogName = "nextflow.log"

// Reporter performs post-run reporting: log archival, workspace size
// measurement, and the storage usage report. Every step is best-effort
// and independently skippable; none of them can change the run
// outcome.
type Reporter struct {
	// Dispatcher resolves the execution name and receives the usage
	// report.
	Dispatcher Dispatcher
	// Archive receives the runner log. If nil, log archival is
	// skipped.
	Archive store.Client
	// Collector is the metrics collector for this run.
	Collector *metrics.Collector
	// Logger is the run logger.
	Logger *log.Logger
	// MeasureTimeout bounds the workspace size measurement
	// (default 5m).
	MeasureTimeout time.Duration
}

// Report runs all post-run steps in order. It never returns an error:
// each failed step logs a warning and the next step still runs.
func (rp *Reporter) Report(ctx context.Context, result *RunResult) {
	if err := rp.uploadLog(ctx, result.RunMeta); err != nil {
		if errors.Is(err, types.ErrLogUploadSkipped) {
			rp.Collector.IncLogUploadSkipped()
			rp.Logger.Warn("skipping log upload", map[string]any{
				"reason": err.Error(),
			})
		} else {
			rp.Collector.IncLogUploadFailure()
			rp.Logger.Warn("log upload failed", map[string]any{
				"error": err.Error(),
			})
		}
	}
	rp.reportUsage(ctx, result)
}

// uploadLog archives the runner log under the execution name. A
// LogUploadSkipped error means the log does not exist or the execution
// name could not be resolved; any other error is an archive failure.
func (rp *Reporter) uploadLog(ctx context.Context, meta *types.RunMeta) error {
	if rp.Archive == nil {
		return nil
	}

	logPath := filepath.Join(meta.WorkDir, runnerLogName)
	f, err := os.Open(logPath)
	if err != nil {
		return types.NewRunError(types.ErrLogUploadSkipped, "open-log", err)
	}
	defer iox.DiscardClose(f)

	name, err := rp.Dispatcher.ExecutionName(ctx)
	if err != nil {
		return types.NewRunError(types.ErrLogUploadSkipped, "execution-name", err)
	}

	key := path.Join(name, archivedLogName)
	if err := rp.Archive.Put(ctx, key, f); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	rp.Collector.IncLogUploadSuccess()
	rp.Logger.Info("uploaded runner log", map[string]any{
		"key": key,
	})
	return nil
}

// reportUsage measures the work directory and reports the size for
// billing. The measurement is time-boxed; on timeout or failure no
// usage report is sent.
func (rp *Reporter) reportUsage(ctx context.Context, result *RunResult) {
	timeout := rp.MeasureTimeout
	if timeout <= 0 {
		timeout = workspace.DefaultMeasureTimeout
	}

	rp.Logger.Info("computing size of work directory", nil)
	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	size, err := workspace.Measure(mctx, result.RunMeta.WorkDir)
	if err != nil {
		if errors.Is(err, types.ErrSizeTimeout) {
			rp.Logger.Warn("failed to compute storage size, operation timed out", map[string]any{
				"timeout": timeout.String(),
			})
		} else {
			rp.Logger.Warn("failed to compute storage size", map[string]any{
				"error": err.Error(),
			})
		}
		return
	}

	result.WorkspaceBytes = size
	rp.Collector.SetWorkspaceBytes(size)
	rp.Logger.Info("computed work directory size", map[string]any{
		"bytes": size,
		"gib":   fmt.Sprintf("%.2f", float64(size)/(1<<30)),
	})

	if err := rp.Dispatcher.ReportStorageUsage(ctx, size); err != nil {
		rp.Collector.IncUsageReportFailure()
		rp.Logger.Warn("failed to report storage usage", map[string]any{
			"error": err.Error(),
		})
		return
	}
	rp.Collector.IncUsageReportSuccess()
}

// RunReport is the structured JSON report written after a run.
type RunReport struct {
	RunName     string              `json:"run_name"`
	ExecutionID string              `json:"execution_id,omitempty"`
	Volume      string              `json:"volume,omitempty"`
	Outcome     types.OutcomeStatus `json:"outcome"`
	Message     string              `json:"message"`
	ExitCode    int                 `json:"exit_code"`
	DurationMs  int64               `json:"duration_ms"`

	WorkspaceBytes int64 `json:"workspace_bytes"`

	Command []string          `json:"command"`
	Metrics *metrics.Snapshot `json:"metrics,omitempty"`
}

// BuildRunReport composes a RunReport from a RunResult and metrics
// snapshot. The exitCode is the process exit code that will be
// returned to the caller.
func BuildRunReport(result *RunResult, snap metrics.Snapshot, exitCode int) *RunReport {
	return &RunReport{
		RunName:     result.RunMeta.RunName,
		ExecutionID: result.RunMeta.ExecutionID,
		Volume:      result.RunMeta.Volume,
		Outcome:     result.Outcome.Status,
		Message:     result.Outcome.Message,
		ExitCode:    exitCode,
		DurationMs:  result.Duration.Milliseconds(),

		WorkspaceBytes: result.WorkspaceBytes,

		Command: result.Command,
		Metrics: &snap,
	}
}

// WriteRunReport writes the report as indented JSON.
func WriteRunReport(w io.Writer, report *RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	return nil
}
