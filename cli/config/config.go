package config

import (
	"fmt"
	"time"
)

// Default locations inside the runtime container.
const (
	DefaultDispatcherURL = "http://nf-dispatcher-service.flyte.svc.cluster.local"
	DefaultRunnerPath    = "/root/nextflow"
	DefaultSourceRoot    = "/root"
	DefaultWorkDir       = "/nf-workdir"
	DefaultConfigFile    = "latch.config"
	DefaultNXFHome       = "/root/.nextflow"
)

// Config represents a foldrun.yaml configuration file.
// All values are optional and act as defaults for foldrun run flags.
// CLI flags always override config values.
type Config struct {
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Runner     RunnerConfig     `yaml:"runner"`
	Archive    ArchiveConfig    `yaml:"archive"`
}

// DispatcherConfig holds dispatcher service defaults.
type DispatcherConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout,omitempty"`
}

// RunnerConfig holds runner invocation defaults.
type RunnerConfig struct {
	Path       string   `yaml:"path"`
	SourceRoot string   `yaml:"source_root"`
	WorkDir    string   `yaml:"work_dir"`
	ConfigFile string   `yaml:"config_file"`
	Profiles   []string `yaml:"profiles"`
	NXFHome    string   `yaml:"nxf_home"`
}

// ArchiveConfig holds log-archive defaults.
type ArchiveConfig struct {
	// Backend selects the archive implementation: "fs", "s3", or ""
	// to disable log archival.
	Backend string `yaml:"backend"`
	// Path is the archive location: a directory for fs, or
	// "bucket/prefix" for s3.
	Path        string `yaml:"path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// ApplyDefaults fills in unset fields with container defaults.
func (c *Config) ApplyDefaults() {
	if c.Dispatcher.URL == "" {
		c.Dispatcher.URL = DefaultDispatcherURL
	}
	if c.Runner.Path == "" {
		c.Runner.Path = DefaultRunnerPath
	}
	if c.Runner.SourceRoot == "" {
		c.Runner.SourceRoot = DefaultSourceRoot
	}
	if c.Runner.WorkDir == "" {
		c.Runner.WorkDir = DefaultWorkDir
	}
	if c.Runner.ConfigFile == "" {
		c.Runner.ConfigFile = DefaultConfigFile
	}
	if c.Runner.Profiles == nil {
		c.Runner.Profiles = []string{"docker", "test"}
	}
	if c.Runner.NXFHome == "" {
		c.Runner.NXFHome = DefaultNXFHome
	}
}

// Validate checks archive backend selection.
func (c *Config) Validate() error {
	switch c.Archive.Backend {
	case "", "fs", "s3":
	default:
		return fmt.Errorf("invalid archive backend %q (must be fs or s3)", c.Archive.Backend)
	}
	if c.Archive.Backend != "" && c.Archive.Path == "" {
		return fmt.Errorf("archive backend %q requires a path", c.Archive.Backend)
	}
	return nil
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
