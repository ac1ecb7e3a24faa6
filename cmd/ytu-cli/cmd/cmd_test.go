package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(fs)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const soloCatalog = `
paths:
  - id: solo
    title: Solo Path
    curve: perpendicular
    nodes:
      - { id: a, title: A }
      - { id: b, title: B }
    connections:
      - { from: a, to: b }
`

func TestVersion(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Equal(t, "ytu-cli v"+version+"\n", out)
}

func TestCatalogValidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "good.yaml", []byte(soloCatalog), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("paths:\n  - id: x\n    bogus: 1\n"), 0o644))

	out, err := run(t, fs, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded catalog is valid")
	assert.Contains(t, out, "Paths: 3")
	assert.Contains(t, out, "Dashboard: Anime Student (level 7)")

	out, err = run(t, fs, "catalog", "validate", "--catalog", "good.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "good.yaml is valid")
	assert.NotContains(t, out, "Dashboard")

	out, err = run(t, fs, "catalog", "validate", "-c", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "Catalog validation failed")
}

func TestCatalogList(t *testing.T) {
	fs := afero.NewMemMapFs()
	out, err := run(t, fs, "catalog", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[2], "frontend"))

	require.NoError(t, afero.WriteFile(fs, "solo.yaml", []byte(soloCatalog), 0o644))
	out, err = run(t, fs, "catalog", "list", "-c", "solo.yaml", "--format", "json")
	require.NoError(t, err)
	var doc struct {
		Paths []struct {
			ID          string `json:"id"`
			Curve       string `json:"curve"`
			Nodes       int    `json:"nodes"`
			Connections int    `json:"connections"`
			Duration    string `json:"duration"`
		} `json:"paths"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, 1, doc.Count)
	assert.Equal(t, "solo", doc.Paths[0].ID)
	assert.Equal(t, "perpendicular", doc.Paths[0].Curve)
	assert.Equal(t, 2, doc.Paths[0].Nodes)
	assert.Equal(t, 1, doc.Paths[0].Connections)
	assert.Equal(t, "2s", doc.Paths[0].Duration)

	_, err = run(t, fs, "catalog", "list", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestEvents(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "events")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog.reloaded")
	assert.Contains(t, out, "live.session")

	out, err = run(t, afero.NewMemMapFs(), "events", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "catalog.reloaded"`)
}

func TestGraphDOT(t *testing.T) {
	fs := afero.NewMemMapFs()
	out, err := run(t, fs, "graph", "frontend")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph"), out)
	assert.Contains(t, out, "html-css")

	_, err = run(t, fs, "graph", "gamedev", "-o", "g.dot")
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, "g.dot")
	require.NoError(t, err)
	assert.Contains(t, string(data), "unity")

	_, err = run(t, fs, "graph", "missing")
	assert.ErrorContains(t, err, "available: [frontend gamedev anime]")
}

func TestExport(t *testing.T) {
	fs := afero.NewMemMapFs()
	out, err := run(t, fs, "export", "--out", "dist")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 6 files to dist")

	for _, name := range []string{"index.html", "courses.html", "dashboard.html"} {
		ok, err := afero.Exists(fs, filepath.Join("dist", name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
	anime, err := afero.ReadFile(fs, filepath.Join("dist", "learning-paths", "anime.html"))
	require.NoError(t, err)
	assert.Contains(t, string(anime), "<!doctype html>")
	assert.Contains(t, string(anime), "url(#beam-anime-1)")
}

const modulesSource = `package app

import (
	"github.com/nfrund/ytu/internal/module"
	"github.com/nfrund/ytu/internal/modules/pages"
)

// NewModules creates and returns the list of all active modules.
func NewModules() []module.Module {
	return []module.Module{
		pages.New(),
	}
}
`

func TestNewModule(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, modulesFile, []byte(modulesSource), 0o644))

	out, err := run(t, fs, "new-module", "--name", "quizzes")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered quizzes.New()")

	mod, err := afero.ReadFile(fs, "internal/modules/quizzes/module.go")
	require.NoError(t, err)
	assert.Contains(t, string(mod), `g.GET("/quizzes", h.Get)`)
	handler, err := afero.ReadFile(fs, "internal/modules/quizzes/handler.go")
	require.NoError(t, err)
	assert.Contains(t, string(handler), `view.Page("Quizzes", "", body)`)

	modules, err := afero.ReadFile(fs, modulesFile)
	require.NoError(t, err)
	assert.Contains(t, string(modules), `"github.com/nfrund/ytu/internal/modules/quizzes"`)
	assert.Contains(t, string(modules), "\t\tpages.New(),\n\t\tquizzes.New(),\n\t}")

	_, err = run(t, fs, "new-module", "--name", "quizzes")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, fs, "new-module", "--name", "Bad-Name")
	assert.ErrorContains(t, err, "lowercase Go package name")
}

func TestInsertElement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"own line", "x := []int{\n\t1,\n}", "x := []int{\n\t1,\n\t2,\n}"},
		{"empty inline", "x := []int{}", "x := []int{2}"},
		{"inline", "x := []int{1}", "x := []int{1, 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertElement([]byte(tt.src), strings.LastIndex(tt.src, "}"), "2")
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNewModule_FallsBackToInstructions(t *testing.T) {
	fs := afero.NewMemMapFs()
	out, err := run(t, fs, "new-module", "-n", "notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Automatic registration failed")
	assert.Contains(t, out, "notes.New(),")
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "version", "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown log level")
}
