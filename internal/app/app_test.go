package app

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avscaffold/internal/fsops"
	"avscaffold/internal/manifest"
	"avscaffold/internal/parser"
	"avscaffold/internal/safety"
)

func testOptions(t *testing.T) (Options, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return Options{
		OutDir:   t.TempDir(),
		DirPerm:  0o755,
		FilePerm: 0o644,
		Logger:   slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Stdout:   &out,
	}, &out
}

func TestRunBuiltin(t *testing.T) {
	o, out := testOptions(t)
	m := manifest.AlgorithmVisualizer()

	res, err := Run(o)
	require.NoError(t, err)
	assert.Equal(t, fsops.Result{DirsCreated: m.Len(), FilesCreated: len(m.Files())}, res)
	assert.Empty(t, out.String(), "успешный запуск ничего не печатает")

	root := filepath.Join(o.OutDir, "algorithm_visualizer")
	assert.FileExists(t, filepath.Join(root, "main.cpp"))
	assert.FileExists(t, filepath.Join(root, "algorithms", "graph", "floyd_warshall.cpp"))
	assert.DirExists(t, filepath.Join(root, "assets"))

	res, err = Run(o)
	require.NoError(t, err)
	assert.Equal(t, fsops.Result{DirsExisting: m.Len(), FilesExisting: len(m.Files())}, res)
}

func TestRunRootOverride(t *testing.T) {
	o, _ := testOptions(t)
	o.Root = "viz"

	_, err := Run(o)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(o.OutDir, "viz", "tests", "test_visualizer.cpp"))
	assert.NoDirExists(t, filepath.Join(o.OutDir, "algorithm_visualizer"))

	o.Root = "a/b"
	_, err = Run(o)
	assert.ErrorIs(t, err, safety.ErrInvalidName)
}

func TestRunManifestFile(t *testing.T) {
	o, _ := testOptions(t)
	src := "mini/\n├── main.cpp\n└── assets/\n"
	o.ManifestPath = filepath.Join(t.TempDir(), "struct")
	require.NoError(t, os.WriteFile(o.ManifestPath, []byte(src), 0o644))

	res, err := Run(o)
	require.NoError(t, err)
	assert.Equal(t, fsops.Result{DirsCreated: 2, FilesCreated: 1}, res)
	assert.FileExists(t, filepath.Join(o.OutDir, "mini", "main.cpp"))
	assert.DirExists(t, filepath.Join(o.OutDir, "mini", "assets"))
}

func TestRunManifestStdin(t *testing.T) {
	o, _ := testOptions(t)
	o.ManifestPath = "-"
	o.Stdin = strings.NewReader("mini\n`-- src/\n    `-- a.h\n")

	_, err := Run(o)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(o.OutDir, "mini", "src", "a.h"))
}

func TestRunRootOnlyManifest(t *testing.T) {
	o, _ := testOptions(t)
	o.ManifestPath = "-"
	o.Stdin = strings.NewReader("proj/\n")

	res, err := Run(o)
	require.NoError(t, err)
	assert.Equal(t, fsops.Result{DirsCreated: 1}, res)
	assert.DirExists(t, filepath.Join(o.OutDir, "proj"))
}

func TestRunDotRootManifest(t *testing.T) {
	o, _ := testOptions(t)
	o.ManifestPath = "-"
	o.Stdin = strings.NewReader(".\n└── main.cpp\n")

	_, err := Run(o)
	assert.ErrorIs(t, err, parser.ErrUnnamedRoot)

	o.Stdin = strings.NewReader(".\n└── main.cpp\n")
	o.Root = "named"
	_, err = Run(o)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(o.OutDir, "named", "main.cpp"))
}

func TestRunMissingManifestFile(t *testing.T) {
	o, _ := testOptions(t)
	o.ManifestPath = filepath.Join(t.TempDir(), "nope")

	_, err := Run(o)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRunPartialFailure(t *testing.T) {
	o, _ := testOptions(t)
	root := filepath.Join(o.OutDir, "algorithm_visualizer")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "common"), nil, 0o644))

	res, err := Run(o)
	require.Error(t, err)
	var pe *fs.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, filepath.Join(root, "common"), pe.Path)
	assert.Equal(t, 1, strings.Count(err.Error(), root), err.Error())
	assert.Equal(t, 2, res.FilesCreated)
	assert.FileExists(t, filepath.Join(root, "CMakeLists.txt"))
	assert.NoDirExists(t, filepath.Join(root, "visualizer"))
}

func TestRunDryRun(t *testing.T) {
	o, out := testOptions(t)
	o.DryRun = true

	_, err := Run(o)
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(o.OutDir, "algorithm_visualizer"))
	assert.Contains(t, out.String(), "touch "+filepath.Join(o.OutDir, "algorithm_visualizer", "visualizer", "ui.h"))
}

func TestPrintTree(t *testing.T) {
	o, out := testOptions(t)
	require.NoError(t, PrintTree(o))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "algorithm_visualizer/\n"))
	assert.Contains(t, s, "├── data_structures/\n")
	assert.Contains(t, s, "19 directories, 86 files")
}

func TestPrintPlan(t *testing.T) {
	o, out := testOptions(t)
	require.NoError(t, PrintPlan(o))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "mkdir -p algorithm_visualizer", lines[0])
	assert.Equal(t, "touch algorithm_visualizer/tests/test_visualizer.cpp", lines[len(lines)-1])
	assert.NoDirExists(t, filepath.Join(o.OutDir, "algorithm_visualizer"))
}
