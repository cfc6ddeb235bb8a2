package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/justapithecus/foldrun/cli/config"
	"github.com/justapithecus/foldrun/dispatch"
	"github.com/justapithecus/foldrun/log"
	"github.com/justapithecus/foldrun/metrics"
	"github.com/justapithecus/foldrun/params"
	"github.com/justapithecus/foldrun/runtime"
	"github.com/justapithecus/foldrun/store"
	"github.com/justapithecus/foldrun/types"
	"github.com/justapithecus/foldrun/workspace"
)

// Exit codes for the run command.
const (
	exitSuccess        = 0
	exitPipelineFailed = 1
	exitSetupFailure   = 2
)

// RunCommand returns the run command, the only command that executes
// work.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Execute a managed pipeline run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "run-name",
				Usage:    "Name for this run (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "params",
				Usage: "Pipeline parameter bindings as JSON",
				Value: "{}",
			},
			&cli.StringFlag{
				Name:  "params-file",
				Usage: "Path to a JSON file of pipeline parameter bindings",
			},
			&cli.StringFlag{
				Name:    "execution-token",
				Usage:   "Execution token for dispatcher authentication",
				EnvVars: []string{"FLYTE_INTERNAL_EXECUTION_ID"},
			},
			&cli.StringFlag{
				Name:  "execution-id",
				Usage: "Platform execution identifier (generated if omitted)",
			},
			// Config flags
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to foldrun.yaml config file",
			},
			&cli.StringFlag{
				Name:  "dispatcher-url",
				Usage: "Dispatcher service base URL",
			},
			&cli.StringFlag{
				Name:  "runner",
				Usage: "Path to the runner binary",
			},
			&cli.StringFlag{
				Name:  "source-root",
				Usage: "Task filesystem root staged into the work directory",
			},
			&cli.StringFlag{
				Name:  "work-dir",
				Usage: "Shared work directory",
			},
			&cli.StringSliceFlag{
				Name:  "profile",
				Usage: "Runner profile (repeatable)",
			},
			// Archive flags
			&cli.StringFlag{
				Name:  "archive-backend",
				Usage: "Log archive backend: fs or s3",
			},
			&cli.StringFlag{
				Name:  "archive-path",
				Usage: "Log archive path (fs: directory, s3: bucket/prefix)",
			},
			&cli.StringFlag{
				Name:  "archive-region",
				Usage: "AWS region for S3 archive (optional, uses default chain)",
			},
			// Output flags
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON run report to this path",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress result output",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %v", err), exitSetupFailure)
	}

	values, err := parseValues(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid parameters: %v", err), exitSetupFailure)
	}

	runName := c.String("run-name")
	joinOutdir(values, runName)

	executionID := c.String("execution-id")
	if executionID == "" {
		executionID = uuid.NewString()
	}

	runMeta := &types.RunMeta{
		RunName:     runName,
		ExecutionID: executionID,
		WorkDir:     cfg.Runner.WorkDir,
	}

	dispatcher, err := dispatch.New(dispatch.Config{
		URL:         cfg.Dispatcher.URL,
		Token:       c.String("execution-token"),
		ExecutionID: executionID,
		Timeout:     cfg.Dispatcher.Timeout.Duration,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("dispatcher setup failed: %v", err), exitSetupFailure)
	}

	archive, err := buildArchive(c.Context, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("archive setup failed: %v", err), exitSetupFailure)
	}

	collector := metrics.NewCollector(modeLabel(values), runName, "local")

	runConfig := &runtime.RunConfig{
		RunMeta:    runMeta,
		SourceRoot: cfg.Runner.SourceRoot,
		RunnerPath: cfg.Runner.Path,
		ConfigFile: cfg.Runner.ConfigFile,
		Profiles:   cfg.Runner.Profiles,
		Values:     values,
		NXFHome:    cfg.Runner.NXFHome,
		Dispatcher: dispatcher,
		Stager:     workspace.NewStager(nil),
		Reporter: &runtime.Reporter{
			Dispatcher: dispatcher,
			Archive:    archive,
			Collector:  collector,
			Logger:     log.NewLogger(runMeta),
		},
		Collector: collector,
	}

	orchestrator, err := runtime.NewOrchestrator(runConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid run: %v", err), exitSetupFailure)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := orchestrator.Execute(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("run setup failed: %v", err), exitSetupFailure)
	}

	exitCode := exitSuccess
	if result.Outcome.Failed() {
		exitCode = exitPipelineFailed
	}

	report := runtime.BuildRunReport(result, collector.Snapshot(), exitCode)
	if path := c.String("report"); path != "" {
		if err := writeReportFile(path, report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write run report: %v\n", err)
		}
	}
	if !c.Bool("quiet") {
		_ = runtime.WriteRunReport(os.Stdout, report)
	}

	return cli.Exit("", exitCode)
}

// loadConfig resolves the effective config: file values (if any) with
// flag overrides on top, defaults beneath.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	if url := c.String("dispatcher-url"); url != "" {
		cfg.Dispatcher.URL = url
	}
	if runner := c.String("runner"); runner != "" {
		cfg.Runner.Path = runner
	}
	if root := c.String("source-root"); root != "" {
		cfg.Runner.SourceRoot = root
	}
	if dir := c.String("work-dir"); dir != "" {
		cfg.Runner.WorkDir = dir
	}
	if profiles := c.StringSlice("profile"); len(profiles) > 0 {
		cfg.Runner.Profiles = profiles
	}
	if backend := c.String("archive-backend"); backend != "" {
		cfg.Archive.Backend = backend
	}
	if path := c.String("archive-path"); path != "" {
		cfg.Archive.Path = path
	}
	if region := c.String("archive-region"); region != "" {
		cfg.Archive.Region = region
	}

	return cfg, cfg.Validate()
}

// parseValues merges the params file (if any) and the inline JSON, the
// inline bindings winning. Every key must name a registered parameter.
func parseValues(c *cli.Context) (params.Values, error) {
	values := params.Values{}

	if path := c.String("params-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read params file: %w", err)
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	}

	if raw := c.String("params"); raw != "" && raw != "{}" {
		inline := params.Values{}
		if err := json.Unmarshal([]byte(raw), &inline); err != nil {
			return nil, fmt.Errorf("invalid params JSON: %w", err)
		}
		for name, value := range inline {
			values[name] = value
		}
	}

	for name := range values {
		if _, ok := params.LookupSpec(name); !ok {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
	}

	return values, nil
}

// joinOutdir scopes the output directory to this run by appending the
// run name.
func joinOutdir(values params.Values, runName string) {
	outdir, ok := values["outdir"].(string)
	if !ok || outdir == "" {
		return
	}
	values["outdir"] = strings.TrimRight(outdir, "/") + "/" + runName
}

// modeLabel returns the bound prediction mode, or the registry default
// when unbound.
func modeLabel(values params.Values) string {
	if mode, ok := values["mode"].(string); ok && mode != "" {
		return mode
	}
	if spec, ok := params.LookupSpec("mode"); ok {
		if mode, ok := spec.Default.(params.Mode); ok {
			return mode.String()
		}
	}
	return ""
}

// buildArchive creates the log archive client, nil when archival is
// disabled.
func buildArchive(ctx context.Context, cfg *config.Config) (store.Client, error) {
	switch cfg.Archive.Backend {
	case "":
		return nil, nil
	case "fs":
		return store.NewFSClient(cfg.Archive.Path)
	case "s3":
		bucket, prefix := store.ParseS3Path(cfg.Archive.Path)
		return store.NewS3Client(ctx, store.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       cfg.Archive.Region,
			Endpoint:     cfg.Archive.Endpoint,
			UsePathStyle: cfg.Archive.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown archive backend: %s", cfg.Archive.Backend)
	}
}

func writeReportFile(path string, report *runtime.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := runtime.WriteRunReport(f, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
