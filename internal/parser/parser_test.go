package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avscaffold/internal/manifest"
	"avscaffold/internal/safety"
)

func TestParseUnicodeTree(t *testing.T) {
	src := `
demo/
├── main.cpp
├── common/
│   └── edge.h
├── data_structures
│   ├── trees/
│   │   ├── avl_tree.cpp
│   │   └── avl_tree.h
│   └── lists/
│       └── skip_list.h
└── assets/

5 directories, 5 files
`
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Root())
	assert.Equal(t, []manifest.Entry{
		{Dir: "", Files: []string{"main.cpp"}},
		{Dir: "common", Files: []string{"edge.h"}},
		{Dir: "data_structures/trees", Files: []string{"avl_tree.cpp", "avl_tree.h"}},
		{Dir: "data_structures/lists", Files: []string{"skip_list.h"}},
		{Dir: "assets"},
	}, m.Entries())
}

func TestParseASCIITree(t *testing.T) {
	src := "proj\n" +
		"|-- CMakeLists.txt\n" +
		"|-- src\n" +
		"|   `-- main.cpp\n" +
		"`-- tests/\n" +
		"    `-- test_visualizer.cpp\n"

	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "proj", m.Root())
	assert.Equal(t, []string{"CMakeLists.txt", "src/main.cpp", "tests/test_visualizer.cpp"}, m.Files())
}

func TestParseRootOnly(t *testing.T) {
	m, err := Parse(strings.NewReader("proj/\n"))
	require.NoError(t, err)
	assert.Equal(t, "proj", m.Root())
	assert.Equal(t, []manifest.Entry{{Dir: ""}}, m.Entries())
}

func TestParseRootWithoutFilesComesFirst(t *testing.T) {
	m, err := Parse(strings.NewReader("proj/\n└── src/\n    └── a.h\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "src"}, m.Dirs())
}

func TestParseDotRoot(t *testing.T) {
	src := ".\n├── main.cpp\n└── assets/\n\n1 directory, 1 file\n"

	_, err := Parse(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrUnnamedRoot)

	m, err := ParseRoot(strings.NewReader(src), "viz")
	require.NoError(t, err)
	assert.Equal(t, "viz", m.Root())
	assert.Equal(t, []string{"main.cpp"}, m.Files())
	assert.Equal(t, []string{"", "assets"}, m.Dirs())

	_, err = ParseRoot(strings.NewReader(src), "a/b")
	assert.ErrorIs(t, err, safety.ErrInvalidName)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "\n\n"},
		{"bad root", "../up\n"},
		{"not a tree line", "root/\njust text\n"},
		{"too deep", "root/\n│   └── orphan.h\n"},
		{"dotdot name", "root/\n└── ..\n"},
		{"duplicate file", "root/\n├── a.h\n└── a.h\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestParseBadNameWrapsSentinel(t *testing.T) {
	_, err := Parse(strings.NewReader("root/\n└── ..\n"))
	assert.ErrorIs(t, err, safety.ErrInvalidName)
}

func TestFormatBuiltinRoundTrip(t *testing.T) {
	want := manifest.AlgorithmVisualizer()

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, want))

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.Root(), got.Root())
	assert.Equal(t, want.Entries(), got.Entries())
}

func TestFormatOutput(t *testing.T) {
	m, err := manifest.New("p",
		manifest.Entry{Dir: "", Files: []string{"main.cpp"}},
		manifest.Entry{Dir: "a/b", Files: []string{"x.h"}},
		manifest.Entry{Dir: "c"},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, m))

	want := `p/
├── main.cpp
├── a/
│   └── b/
│       └── x.h
└── c/

3 directories, 1 file
`
	assert.Equal(t, want, buf.String())
}

func TestCountDepth(t *testing.T) {
	assert.Equal(t, 0, countDepth(""))
	assert.Equal(t, 1, countDepth("│   "))
	assert.Equal(t, 1, countDepth("    "))
	assert.Equal(t, 2, countDepth("│   │   "))
	assert.Equal(t, 2, countDepth("|       "))
}
