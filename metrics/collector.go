// Package metrics provides per-run metrics collection.
//
// The Collector accumulates counters during a single run. It is a leaf
// package with no internal dependencies.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of run metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after
// creation.
type Snapshot struct {
	// Run lifecycle
	RunsStarted   int64
	RunsSucceeded int64
	RunsFailed    int64

	// Pipeline process
	LaunchFailures int64

	// Post-run reporting
	LogUploadSuccess   int64
	LogUploadFailure   int64
	LogUploadSkipped   int64
	UsageReportSuccess int64
	UsageReportFailure int64

	// WorkspaceBytes is the last measured workspace size, 0 when the
	// measurement failed or timed out.
	WorkspaceBytes int64

	// Dimensions (informational, set at construction)
	Mode     string
	RunName  string
	Executor string
}

// Collector accumulates metrics during a single run.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver
// safe so call sites need no guard when metrics are disabled.
type Collector struct {
	mu sync.Mutex

	runsStarted   int64
	runsSucceeded int64
	runsFailed    int64

	launchFailures int64

	logUploadSuccess   int64
	logUploadFailure   int64
	logUploadSkipped   int64
	usageReportSuccess int64
	usageReportFailure int64

	workspaceBytes int64

	mode     string
	runName  string
	executor string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(mode, runName, executor string) *Collector {
	return &Collector{
		mode:     mode,
		runName:  runName,
		executor: executor,
	}
}

func (c *Collector) IncRunsStarted() { c.inc(func() { c.runsStarted++ }) }

// RecordOutcome records the terminal state of the run.
func (c *Collector) RecordOutcome(succeeded bool) {
	c.inc(func() {
		if succeeded {
			c.runsSucceeded++
		} else {
			c.runsFailed++
		}
	})
}

func (c *Collector) IncLaunchFailures() { c.inc(func() { c.launchFailures++ }) }

func (c *Collector) IncLogUploadSuccess() { c.inc(func() { c.logUploadSuccess++ }) }
func (c *Collector) IncLogUploadFailure() { c.inc(func() { c.logUploadFailure++ }) }
func (c *Collector) IncLogUploadSkipped() { c.inc(func() { c.logUploadSkipped++ }) }

func (c *Collector) IncUsageReportSuccess() { c.inc(func() { c.usageReportSuccess++ }) }
func (c *Collector) IncUsageReportFailure() { c.inc(func() { c.usageReportFailure++ }) }

// SetWorkspaceBytes records the measured workspace size.
func (c *Collector) SetWorkspaceBytes(n int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.workspaceBytes = n
	c.mu.Unlock()
}

func (c *Collector) inc(f func()) {
	if c == nil {
		return
	}
	c.mu.Lock()
	f()
	c.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all counters.
// A nil Collector returns a zero Snapshot.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		RunsStarted:   c.runsStarted,
		RunsSucceeded: c.runsSucceeded,
		RunsFailed:    c.runsFailed,

		LaunchFailures: c.launchFailures,

		LogUploadSuccess:   c.logUploadSuccess,
		LogUploadFailure:   c.logUploadFailure,
		LogUploadSkipped:   c.logUploadSkipped,
		UsageReportSuccess: c.usageReportSuccess,
		UsageReportFailure: c.usageReportFailure,

		WorkspaceBytes: c.workspaceBytes,

		Mode:     c.mode,
		RunName:  c.runName,
		Executor: c.executor,
	}
}
