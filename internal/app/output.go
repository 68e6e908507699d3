package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/netbom/internal/ctxlog"
)

// writeOutput writes data to path. An empty path or "-" writes to
// stdout. When path cannot be opened for writing the data goes to stdout
// instead and an *ExitError with code 1 is returned.
func writeOutput(ctx context.Context, path string, data []byte, stdout io.Writer) error {
	logger := ctxlog.FromContext(ctx)

	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Debug("Output file not writable, falling back to stdout.", "path", path, "error", err)
		if _, werr := stdout.Write(data); werr != nil {
			return werr
		}
		return &ExitError{
			Code:    1,
			Message: fmt.Sprintf("can't open output file for writing: %s", path),
			Err:     err,
		}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Debug("Output written.", "path", path, "bytes", len(data))
	return nil
}
