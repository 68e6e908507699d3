package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/OpenTraceLab/netbom/internal/config"
	"github.com/OpenTraceLab/netbom/internal/ctxlog"
	"github.com/OpenTraceLab/netbom/pkg/export"
)

// DefaultBatchPattern matches S-expression netlists anywhere below root.
const DefaultBatchPattern = "**/*.net"

// BatchResult records the outcome for one input file.
type BatchResult struct {
	Input  string
	Output string
	Err    error
}

// Batch renders every file below root matching pattern next to its
// input. A netlist dialect is rendered when cfg.Dialect is set, otherwise
// a bill of materials in cfg.Format (CSV when empty). Files named like an
// earlier output of the same writer are skipped. Failures are collected
// and the remaining files are still processed.
func Batch(ctx context.Context, root, pattern string, cfg config.Config) ([]BatchResult, error) {
	logger := ctxlog.FromContext(ctx)

	if pattern == "" {
		pattern = DefaultBatchPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var w export.Writer
	var err error
	if cfg.Dialect != "" {
		w, err = netlistWriter(cfg)
	} else {
		if cfg.Format == "" {
			cfg.Format = export.FormatCSV
		}
		w, err = reportWriter(cfg, "")
	}
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", root, err)
	}
	logger.Debug("Batch inputs found.", "root", root, "pattern", pattern, "count", len(matches))

	results := make([]BatchResult, 0, len(matches))
	var errs []error
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		input := filepath.Join(root, filepath.FromSlash(m))
		if isBatchOutput(input, w) {
			logger.Debug("Skipping earlier batch output.", "path", input)
			continue
		}
		res := BatchResult{Input: input, Output: batchOutputPath(input, w)}

		var data []byte
		if w.Netlist != nil {
			data, res.Err = renderNetlist(ctx, input, w)
		} else {
			data, res.Err = renderBOM(ctx, input, w, cfg)
		}
		if res.Err == nil {
			res.Err = os.WriteFile(res.Output, data, 0o644)
		}

		if res.Err != nil {
			logger.Error("Batch item failed.", "input", input, "error", res.Err)
			errs = append(errs, res.Err)
		} else {
			logger.Info("Batch item rendered.", "input", input, "output", res.Output)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// batchOutputPath swaps the input extension for the writer's. When that
// would overwrite the input, the format name is added to the file name.
func batchOutputPath(input string, w export.Writer) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	out := base + w.Extension
	if out == input {
		out = base + "-" + w.Name + w.Extension
	}
	return out
}

// isBatchOutput reports whether path is named like a renamed batch output
// of w, as produced by batchOutputPath.
func isBatchOutput(path string, w export.Writer) bool {
	return strings.HasSuffix(filepath.Base(path), "-"+w.Name+w.Extension)
}
