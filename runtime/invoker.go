package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/justapithecus/foldrun/params"
)

// RunState is the lifecycle state of the pipeline process.
type RunState string

const (
	StateBuilt     RunState = "built"
	StateRunning   RunState = "running"
	StateSucceeded RunState = "succeeded"
	StateFailed    RunState = "failed"
)

// Default locations inside the runtime container.
const (
	DefaultRunnerPath = "/root/nextflow"
	DefaultNXFHome    = "/root/.nextflow"
)

// nxfOpts tunes the runner JVM for the runtime task's resource shape.
const nxfOpts = "-Xms1536M -Xmx6144M -XX:ActiveProcessorCount=4"

// InvokerConfig configures a single pipeline invocation.
type InvokerConfig struct {
	// RunnerPath is the path to the runner binary.
	RunnerPath string
	// WorkDir is the shared work directory holding the staged pipeline.
	WorkDir string
	// ConfigFile is the platform config file passed with -c, resolved
	// relative to WorkDir.
	ConfigFile string
	// Profiles are the runner profiles joined with commas.
	// Empty falls back to the standard profile.
	Profiles []string
	// Values are the pipeline parameter bindings.
	Values params.Values
	// NXFHome overrides the runner home directory (default /root/.nextflow).
	NXFHome string
	// Stdout and Stderr receive process output. Nil means os.Stdout
	// and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// InvokeResult represents the result of a pipeline invocation.
type InvokeResult struct {
	// ExitCode is the process exit code, -1 if it cannot be determined.
	ExitCode int
}

// BuildCommand assembles the full runner argv: fixed launch tokens
// followed by parameter flags in registry order. Deterministic for a
// given config.
func BuildCommand(cfg *InvokerConfig) ([]string, error) {
	runner := cfg.RunnerPath
	if runner == "" {
		runner = DefaultRunnerPath
	}
	if cfg.WorkDir == "" {
		return nil, fmt.Errorf("work directory is required")
	}

	profiles := cfg.Profiles
	if len(profiles) == 0 {
		profiles = []string{"standard"}
	}

	configFile := cfg.ConfigFile
	if configFile == "" {
		configFile = "latch.config"
	}

	cmd := []string{
		runner,
		"run",
		filepath.Join(cfg.WorkDir, "main.nf"),
		"-work-dir", cfg.WorkDir,
		"-profile", strings.Join(profiles, ","),
		"-c", configFile,
		"-resume",
	}

	flags, err := params.BuildFlags(cfg.Values)
	if err != nil {
		return nil, fmt.Errorf("build parameter flags: %w", err)
	}

	return append(cmd, flags...), nil
}

// BuildEnv returns the process environment: the inherited environment
// overlaid with the runner settings. Overlay values win over inherited
// duplicates.
func BuildEnv(nxfHome string) []string {
	if nxfHome == "" {
		nxfHome = DefaultNXFHome
	}
	env := append(os.Environ(),
		"NXF_ANSI_LOG=false",
		"NXF_HOME="+nxfHome,
		"NXF_OPTS="+nxfOpts,
		"NXF_DISABLE_CHECK_LATEST=true",
		"NXF_ENABLE_VIRTUAL_THREADS=false",
	)
	return deduplicateEnv(env)
}

// Invoker abstracts pipeline process lifecycle for testing.
type Invoker interface {
	Start(ctx context.Context) error
	Wait() (*InvokeResult, error)
	Kill() error
}

// InvokerFactory creates an Invoker. Used for test injection.
type InvokerFactory func(cfg *InvokerConfig) Invoker

// PipelineProcess manages the runner subprocess. One invocation per
// process: the runner's own -resume handles intra-run recovery, so the
// process is never relaunched.
type PipelineProcess struct {
	config *InvokerConfig
	cmd    *exec.Cmd
}

// NewPipelineProcess creates a pipeline process manager.
func NewPipelineProcess(cfg *InvokerConfig) *PipelineProcess {
	return &PipelineProcess{config: cfg}
}

// Start builds the command and launches the runner in the work
// directory. Output streams directly to the configured writers so the
// task log shows pipeline progress live.
func (p *PipelineProcess) Start(ctx context.Context) error {
	argv, err := BuildCommand(p.config)
	if err != nil {
		return err
	}

	p.cmd = exec.CommandContext(ctx, argv[0], argv[1:]...)
	p.cmd.Dir = p.config.WorkDir
	p.cmd.Env = BuildEnv(p.config.NXFHome)

	p.cmd.Stdout = p.config.Stdout
	if p.cmd.Stdout == nil {
		p.cmd.Stdout = os.Stdout
	}
	p.cmd.Stderr = p.config.Stderr
	if p.cmd.Stderr == nil {
		p.cmd.Stderr = os.Stderr
	}

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start runner: %w", err)
	}
	return nil
}

// Wait waits for the runner to exit and returns the result.
// Must be called after Start.
func (p *PipelineProcess) Wait() (*InvokeResult, error) {
	if p.cmd == nil {
		return nil, errors.New("runner not started")
	}

	err := p.cmd.Wait()
	if err == nil {
		return &InvokeResult{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			return &InvokeResult{ExitCode: status.ExitStatus()}, nil
		}
		return &InvokeResult{ExitCode: -1}, nil
	}
	return nil, fmt.Errorf("runner wait failed: %w", err)
}

// Kill terminates the runner process.
func (p *PipelineProcess) Kill() error {
	if p.cmd != nil && p.cmd.Process != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}

// deduplicateEnv keeps the last occurrence of each env var key.
// This ensures the overlaid NXF_* values win over inherited duplicates
// from os.Environ().
func deduplicateEnv(env []string) []string {
	seen := make(map[string]int, len(env))
	for i, entry := range env {
		key, _, _ := strings.Cut(entry, "=")
		seen[key] = i
	}
	result := make([]string, 0, len(seen))
	for i, entry := range env {
		key, _, _ := strings.Cut(entry, "=")
		if seen[key] == i {
			result = append(result, entry)
		}
	}
	return result
}
