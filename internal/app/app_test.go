package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/netbom/internal/config"
	"github.com/OpenTraceLab/netbom/internal/ctxlog"
	"github.com/OpenTraceLab/netbom/pkg/bom"
)

const demoNet = "../../testdata/netlists/demo.net"

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := NewLogger("debug", "text", io.Discard)
	return ctxlog.WithLogger(context.Background(), logger)
}

func copyDemo(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(demoNet)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("warn", "json", &buf).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger("warn", "json", &buf).Warn("shown", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger("bogus", "text", &buf).Info("fallback")
	assert.Contains(t, buf.String(), "msg=fallback")
	assert.True(t, NewLogger("DEBUG", "text", &buf).Enabled(context.Background(), slog.LevelDebug))
}

func TestRenderBOMToFile(t *testing.T) {
	ctx := testContext(t)
	out := filepath.Join(t.TempDir(), "bom.csv")

	var stdout bytes.Buffer
	require.NoError(t, RenderBOM(ctx, demoNet, out, config.Default(), &stdout))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 10, "4 header rows, column row and 5 groups")
	assert.Equal(t, `"Source:","/home/hw/demo/demo.kicad_sch"`, lines[0])
	assert.Equal(t, `"Component Count:","6"`, lines[3])
	assert.True(t, strings.HasPrefix(lines[7], `"3","2","R1, R2","10k"`), lines[7])
}

func TestRenderBOMFormatFromExtension(t *testing.T) {
	ctx := testContext(t)
	out := filepath.Join(t.TempDir(), "bom.html")

	require.NoError(t, RenderBOM(ctx, demoNet, out, config.Default(), io.Discard))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<td>R1, R2</td>")
}

func TestRenderBOMStdoutFallback(t *testing.T) {
	ctx := testContext(t)
	out := filepath.Join(t.TempDir(), "missing-dir", "bom.csv")

	var stdout bytes.Buffer
	err := RenderBOM(ctx, demoNet, out, config.Default(), &stdout)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, out)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, stdout.String(), `"Reference(s)"`, "output must still reach stdout")
}

func TestRenderBOMDash(t *testing.T) {
	var stdout bytes.Buffer
	cfg := config.Default()
	cfg.Format = "tsv"
	require.NoError(t, RenderBOM(testContext(t), demoNet, "-", cfg, &stdout))
	assert.True(t, strings.HasPrefix(stdout.String(), "Source:\t"))
}

func TestRenderBOMErrorsWriteNothing(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "bom.csv")

	cfg := config.Default()
	cfg.Coverage = "reject"
	err := RenderBOM(ctx, demoNet, out, cfg, io.Discard)
	require.ErrorIs(t, err, bom.ErrUncoveredColumn)
	assert.NoFileExists(t, out)

	cfg = config.Default()
	cfg.GroupBy = "value"
	err = RenderBOM(ctx, demoNet, out, cfg, io.Discard)
	var conflict *bom.FieldConflictError
	require.True(t, errors.As(err, &conflict), "expected FieldConflictError, got %v", err)
	assert.NoFileExists(t, out)

	cfg = config.Default()
	cfg.Format = "pads"
	err = RenderBOM(ctx, demoNet, out, cfg, io.Discard)
	assert.ErrorContains(t, err, "netlist dialect")

	err = RenderBOM(ctx, filepath.Join(dir, "nope.net"), out, config.Default(), io.Discard)
	assert.ErrorContains(t, err, "failed to open file")
}

func TestRenderNetlist(t *testing.T) {
	ctx := testContext(t)
	out := filepath.Join(t.TempDir(), "demo.asc")

	cfg := config.Default()
	cfg.Dialect = "pads"
	require.NoError(t, RenderNetlist(ctx, demoNet, out, cfg, io.Discard))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "*PADS-PCB*\n*PART*\nC1 "))
	assert.Contains(t, string(data), "TP1 ")
	assert.NotContains(t, string(data), "#PWR01")

	cfg.Dialect = ""
	assert.ErrorContains(t, RenderNetlist(ctx, demoNet, out, cfg, io.Discard), "no netlist dialect")
	cfg.Dialect = "csv"
	assert.ErrorContains(t, RenderNetlist(ctx, demoNet, out, cfg, io.Discard), "not a netlist dialect")
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(testContext(t), demoNet, config.Default())
	require.NoError(t, err)

	assert.Equal(t, "E", s.Version)
	assert.Equal(t, 8, s.Components)
	assert.Equal(t, 6, s.BOMParts)
	assert.Equal(t, 1, s.DNP)
	assert.Equal(t, 3, s.LibParts)
	assert.Equal(t, 4, s.Nets)
	assert.Equal(t, 3, s.RoutedNets)
	assert.Equal(t, "value+footprint+dnp", s.Predicate)
	require.Len(t, s.Groups, 5)
	assert.Equal(t, []string{"R1", "R2"}, s.Groups[2].Refs)
}

func TestBatch(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	a := copyDemo(t, root, "a.net")
	b := copyDemo(t, root, "sub/deeper/b.net")
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "broken.net"), []byte("(export"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	results, err := Batch(ctx, root, "", config.Default())
	require.Error(t, err, "broken input must be reported")
	assert.Equal(t, 1, strings.Count(err.Error(), "broken.net"), "path named once: %v", err)
	require.Len(t, results, 3)

	assert.FileExists(t, strings.TrimSuffix(a, ".net")+".csv")
	assert.FileExists(t, strings.TrimSuffix(b, ".net")+".csv")

	cfg := config.Default()
	cfg.Dialect = "orcadpcb2"
	results, err = Batch(ctx, root, "*.net", cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "a-orcadpcb2.net"), results[0].Output)

	// Renamed outputs are not picked up again as inputs.
	results, err = Batch(ctx, root, "*.net", cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, a, results[0].Input)

	_, err = Batch(ctx, root, "[", config.Default())
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestBatchRerun(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	a := copyDemo(t, root, "a.net")
	copyDemo(t, root, "sub/b.net")

	cfg := config.Default()
	cfg.Dialect = "orcadpcb2"
	for run := 1; run <= 2; run++ {
		results, err := Batch(ctx, root, "", cfg)
		require.NoError(t, err, "run %d", run)
		require.Len(t, results, 2, "run %d", run)
		assert.Equal(t, a, results[0].Input, "run %d", run)
	}
	assert.FileExists(t, filepath.Join(root, "sub", "b-orcadpcb2.net"))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := copyDemo(t, dir, "demo.net")

	ctx, cancel := context.WithTimeout(testContext(t), 10*time.Second)
	defer cancel()

	renders := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(context.Context) error {
			renders <- struct{}{}
			return nil
		})
	}()

	select {
	case <-renders:
	case <-ctx.Done():
		t.Fatal("initial render did not happen")
	}

	// The watcher is registered before the initial render, so this write
	// is observed.
	require.NoError(t, os.WriteFile(path, []byte("(export)"), 0o644))
	select {
	case <-renders:
	case <-ctx.Done():
		t.Fatal("change did not trigger a render")
	}

	cancel()
	assert.NoError(t, <-done)
}
