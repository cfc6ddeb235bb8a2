package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/foldrun/cli/config"
	"github.com/justapithecus/foldrun/params"
	"github.com/justapithecus/foldrun/store"
)

func newRunContext(t *testing.T, args map[string]string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	for _, name := range []string{
		"run-name", "params", "params-file", "execution-token", "execution-id",
		"config", "dispatcher-url", "runner", "source-root", "work-dir",
		"archive-backend", "archive-path", "archive-region", "report",
	} {
		set.String(name, "", "")
	}
	var profiles cli.StringSlice
	set.Var(&profiles, "profile", "")

	for name, value := range args {
		if err := set.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	return cli.NewContext(nil, set, nil)
}

func TestParseValuesInline(t *testing.T) {
	c := newRunContext(t, map[string]string{
		"params": `{"mode": "esmfold", "use_gpu": true, "num_recycles_esmfold": 4}`,
	})

	values, err := parseValues(c)
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	if values["mode"] != "esmfold" {
		t.Errorf("mode = %v", values["mode"])
	}
	if values["use_gpu"] != true {
		t.Errorf("use_gpu = %v", values["use_gpu"])
	}
}

func TestParseValuesFileAndInlineMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{"mode": "alphafold2", "use_gpu": true}`), 0o644); err != nil {
		t.Fatalf("write params file: %v", err)
	}

	c := newRunContext(t, map[string]string{
		"params-file": path,
		"params":      `{"mode": "colabfold"}`,
	})

	values, err := parseValues(c)
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	if values["mode"] != "colabfold" {
		t.Errorf("mode = %v, inline should win", values["mode"])
	}
	if values["use_gpu"] != true {
		t.Errorf("use_gpu = %v, file binding should survive", values["use_gpu"])
	}
}

func TestParseValuesRejectsUnknownParameter(t *testing.T) {
	c := newRunContext(t, map[string]string{
		"params": `{"fold_speed": "maximum"}`,
	})

	_, err := parseValues(c)
	if err == nil || !strings.Contains(err.Error(), "fold_speed") {
		t.Fatalf("err = %v, want unknown parameter", err)
	}
}

func TestParseValuesRejectsBadJSON(t *testing.T) {
	c := newRunContext(t, map[string]string{"params": `{not json`})
	if _, err := parseValues(c); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestJoinOutdir(t *testing.T) {
	values := params.Values{"outdir": "latch:///outputs/"}
	joinOutdir(values, "hopeful_fold")
	if values["outdir"] != "latch:///outputs/hopeful_fold" {
		t.Errorf("outdir = %v", values["outdir"])
	}

	empty := params.Values{}
	joinOutdir(empty, "hopeful_fold")
	if _, ok := empty["outdir"]; ok {
		t.Error("joinOutdir should not invent an outdir")
	}
}

func TestModeLabel(t *testing.T) {
	if got := modeLabel(params.Values{"mode": "esmfold"}); got != "esmfold" {
		t.Errorf("modeLabel = %q", got)
	}
	if got := modeLabel(params.Values{}); got != "alphafold2" {
		t.Errorf("default modeLabel = %q, want registry default", got)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	c := newRunContext(t, map[string]string{
		"dispatcher-url": "http://override.test",
		"work-dir":       "/scratch",
	})

	cfg, err := loadConfig(c)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Dispatcher.URL != "http://override.test" {
		t.Errorf("dispatcher url = %q", cfg.Dispatcher.URL)
	}
	if cfg.Runner.WorkDir != "/scratch" {
		t.Errorf("work dir = %q", cfg.Runner.WorkDir)
	}
	if cfg.Runner.Path != config.DefaultRunnerPath {
		t.Errorf("runner path = %q, want default preserved", cfg.Runner.Path)
	}
}

func TestBuildArchive(t *testing.T) {
	disabled, err := buildArchive(context.Background(), &config.Config{})
	if err != nil || disabled != nil {
		t.Errorf("disabled archive = %v, %v", disabled, err)
	}

	fsCfg := &config.Config{}
	fsCfg.Archive.Backend = "fs"
	fsCfg.Archive.Path = t.TempDir()
	client, err := buildArchive(context.Background(), fsCfg)
	if err != nil {
		t.Fatalf("fs archive: %v", err)
	}
	if _, ok := client.(*store.FSClient); !ok {
		t.Errorf("client = %T, want *store.FSClient", client)
	}

	badCfg := &config.Config{}
	badCfg.Archive.Backend = "redis"
	if _, err := buildArchive(context.Background(), badCfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
