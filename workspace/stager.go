// Package workspace stages the task filesystem into the shared work
// directory and measures its size after the run.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/justapithecus/foldrun/types"
)

// DefaultExcludes is the denylist of entry names never copied into the
// shared workspace: tool caches, VCS metadata, prior run outputs, and
// packaged environment directories.
func DefaultExcludes() []string {
	return []string{
		"latch",
		".latch",
		".git",
		"nextflow",
		".nextflow",
		"work",
		"results",
		"miniconda",
		"anaconda3",
		"mambaforge",
	}
}

// Stager copies a filtered snapshot of the task root into the shared
// work directory.
type Stager struct {
	exclude []string
}

// NewStager creates a Stager with the given exclusion list.
// A nil list means DefaultExcludes.
func NewStager(exclude []string) *Stager {
	if exclude == nil {
		exclude = DefaultExcludes()
	}
	return &Stager{exclude: exclude}
}

// Stage copies the tree at src into dst, merging into a pre-existing
// destination. Entries whose name matches the exclusion list are
// skipped at every directory depth. Dangling symlinks are skipped
// rather than treated as errors; resolvable symlinks are followed and
// their targets copied.
func (s *Stager) Stage(src, dst string) error {
	if err := s.copyTree(src, dst); err != nil {
		return types.NewRunError(types.ErrStagingFailed, "stage", err)
	}
	return nil
}

func (s *Stager) copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", src, err)
	}

	for _, entry := range entries {
		if slices.Contains(s.exclude, entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Stat follows symlinks so linked content is copied in place of
		// the link. A stat failure on a symlink means the link dangles.
		info, err := os.Stat(srcPath)
		if err != nil {
			if entry.Type()&os.ModeSymlink != 0 && os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %s: %w", srcPath, err)
		}

		if info.IsDir() {
			if err := s.copyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(srcPath, dstPath, info.Mode()); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies src to dst, overwriting any existing file.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return out.Close()
}
