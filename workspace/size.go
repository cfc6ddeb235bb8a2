package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/justapithecus/foldrun/types"
)

// DefaultMeasureTimeout bounds how long a post-run size measurement may
// take. Prediction runs can leave millions of files behind, and the
// measurement must never hold up final reporting.
const DefaultMeasureTimeout = 5 * time.Minute

// Measure walks dir and returns the total size in bytes of all regular
// files beneath it. The walk honors ctx: once the context is done the
// walk stops and Measure returns types.ErrSizeTimeout for a deadline,
// or types.ErrSizeMeasurement for any other failure. Symlinks are not
// followed.
func Measure(ctx context.Context, dir string) (int64, error) {
	var total int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return 0, types.NewRunError(types.ErrSizeTimeout, "measure", err)
		}
		return 0, types.NewRunError(types.ErrSizeMeasurement, "measure", err)
	}

	return total, nil
}
