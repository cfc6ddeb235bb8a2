package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/justapithecus/foldrun/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestStageCopiesTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "main.nf"), "workflow {}")
	writeFile(t, filepath.Join(src, "conf", "base.config"), "process {}")

	if err := NewStager(nil).Stage(src, dst); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "main.nf"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "workflow {}" {
		t.Errorf("main.nf = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "conf", "base.config")); err != nil {
		t.Errorf("nested file not staged: %v", err)
	}
}

func TestStageSkipsExcludedAtEveryDepth(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(src, "work", "scratch.txt"), "x")
	writeFile(t, filepath.Join(src, "sub", "results", "out.pdb"), "x")
	writeFile(t, filepath.Join(src, "sub", "keep.txt"), "x")

	if err := NewStager(nil).Stage(src, dst); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	for _, path := range []string{
		filepath.Join(dst, ".git"),
		filepath.Join(dst, "work"),
		filepath.Join(dst, "sub", "results"),
	} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s should not exist, stat err = %v", path, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "sub", "keep.txt")); err != nil {
		t.Errorf("keep.txt missing: %v", err)
	}
}

func TestStageMergesIntoExistingDestination(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(dst, "existing.txt"), "pre")
	writeFile(t, filepath.Join(dst, "main.nf"), "old")
	writeFile(t, filepath.Join(src, "main.nf"), "new")

	if err := NewStager(nil).Stage(src, dst); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(dst, "existing.txt"))
	if string(got) != "pre" {
		t.Errorf("existing.txt clobbered: %q", got)
	}
	got, _ = os.ReadFile(filepath.Join(dst, "main.nf"))
	if string(got) != "new" {
		t.Errorf("main.nf = %q, want overwrite", got)
	}
}

func TestStageToleratesDanglingSymlink(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "keep.txt"), "x")
	if err := os.Symlink(filepath.Join(src, "gone"), filepath.Join(src, "dangling")); err != nil {
		t.Skipf("symlink: %v", err)
	}

	if err := NewStager(nil).Stage(src, dst); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "dangling")); !os.IsNotExist(err) {
		t.Errorf("dangling link should be skipped, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "keep.txt")); err != nil {
		t.Errorf("keep.txt missing: %v", err)
	}
}

func TestStageFollowsResolvableSymlink(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "target.txt"), "linked content")
	if err := os.Symlink(filepath.Join(src, "target.txt"), filepath.Join(src, "link.txt")); err != nil {
		t.Skipf("symlink: %v", err)
	}

	if err := NewStager(nil).Stage(src, dst); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	info, err := os.Lstat(filepath.Join(dst, "link.txt"))
	if err != nil {
		t.Fatalf("lstat: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Errorf("link.txt staged as symlink, want regular file")
	}
	got, _ := os.ReadFile(filepath.Join(dst, "link.txt"))
	if string(got) != "linked content" {
		t.Errorf("link.txt = %q", got)
	}
}

func TestStageMissingSourceClassified(t *testing.T) {
	err := NewStager(nil).Stage(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if !errors.Is(err, types.ErrStagingFailed) {
		t.Fatalf("err = %v, want ErrStagingFailed", err)
	}
}

func TestMeasureSumsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "12345")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "123")

	got, err := Measure(context.Background(), dir)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if got != 8 {
		t.Errorf("Measure = %d, want 8", got)
	}
}

func TestMeasureHonorsDeadline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Measure(ctx, dir)
	if !errors.Is(err, types.ErrSizeTimeout) {
		t.Fatalf("err = %v, want ErrSizeTimeout", err)
	}
}

func TestMeasureMissingDirClassified(t *testing.T) {
	_, err := Measure(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, types.ErrSizeMeasurement) {
		t.Fatalf("err = %v, want ErrSizeMeasurement", err)
	}
}
