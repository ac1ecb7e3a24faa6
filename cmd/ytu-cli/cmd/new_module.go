package cmd

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/go/ast/astutil"
)

const (
	modulePath  = "github.com/nfrund/ytu"
	modulesFile = "internal/app/modules.go"
)

var moduleNameRE = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

func newModuleCmd(c *cli) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "new-module",
		Short: "Scaffold a new application module",
		Long: `Creates a new module with a module definition and a page-rendering handler,
and registers it in internal/app/modules.go. Run it from the repository root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !moduleNameRE.MatchString(name) {
				return fmt.Errorf("module name %q must be a lowercase Go package name: --name=<module-name>", name)
			}
			if err := generateModule(c.fs, name); err != nil {
				return fmt.Errorf("failed to generate module: %w", err)
			}
			if err := updateModulesFile(c.fs, name); err != nil {
				printNextSteps(cmd.OutOrStdout(), name, err)
				return nil
			}
			printSuccessMessage(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the new module (e.g., 'quizzes')")
	return cmd
}

type templateData struct {
	Name       string
	PascalName string
	Module     string
}

func generateModule(fs afero.Fs, name string) error {
	caser := cases.Title(language.English)
	data := templateData{
		Name:       name,
		PascalName: caser.String(name),
		Module:     modulePath,
	}

	moduleDir := filepath.Join("internal", "modules", name)
	if exists, _ := afero.DirExists(fs, moduleDir); exists {
		return fmt.Errorf("%s already exists", moduleDir)
	}
	if err := fs.MkdirAll(moduleDir, 0o755); err != nil {
		return fmt.Errorf("failed to create module directory: %w", err)
	}

	if err := generateFile(fs, filepath.Join(moduleDir, "module.go"), moduleTemplate, data); err != nil {
		return err
	}
	return generateFile(fs, filepath.Join(moduleDir, "handler.go"), handlerTemplate, data)
}

func generateFile(fs afero.Fs, path, tmpl string, data templateData) error {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}
	return afero.WriteFile(fs, path, src, 0o644)
}

// updateModulesFile appends <name>.New() on its own line to the slice
// returned by NewModules and imports the new package.
func updateModulesFile(fs afero.Fs, name string) error {
	src, err := afero.ReadFile(fs, modulesFile)
	if err != nil {
		return err
	}
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, modulesFile, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", modulesFile, err)
	}

	lit := modulesLiteral(node)
	if lit == nil {
		return fmt.Errorf("no NewModules slice literal found in %s", modulesFile)
	}
	src = insertElement(src, fset.Position(lit.Rbrace).Offset, name+".New()")

	fset = token.NewFileSet()
	node, err = parser.ParseFile(fset, modulesFile, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse updated %s: %w", modulesFile, err)
	}
	astutil.AddImport(fset, node, fmt.Sprintf("%s/internal/modules/%s", modulePath, name))

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return fmt.Errorf("failed to format AST: %w", err)
	}
	return afero.WriteFile(fs, modulesFile, buf.Bytes(), 0o644)
}

// modulesLiteral finds the composite literal returned by NewModules.
func modulesLiteral(file *ast.File) *ast.CompositeLit {
	var found *ast.CompositeLit
	ast.Inspect(file, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "NewModules" || fn.Body == nil {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok || len(ret.Results) == 0 {
				return found == nil
			}
			if lit, ok := ret.Results[0].(*ast.CompositeLit); ok {
				found = lit
			}
			return false
		})
		return false
	})
	return found
}

// insertElement adds elem before the closing brace at rbrace. A brace on its
// own line gets the element on a new line above it.
func insertElement(src []byte, rbrace int, elem string) []byte {
	lineStart := bytes.LastIndexByte(src[:rbrace], '\n') + 1
	indent := src[lineStart:rbrace]

	var ins []byte
	at := rbrace
	if len(bytes.TrimSpace(indent)) == 0 {
		ins = append(append(append(ins, indent...), '\t'), elem+",\n"...)
		at = lineStart
	} else {
		prev := bytes.TrimRight(src[:rbrace], " \t")
		if prev[len(prev)-1] != '{' && prev[len(prev)-1] != ',' {
			ins = append(ins, ", "...)
		}
		ins = append(ins, elem...)
	}

	out := make([]byte, 0, len(src)+len(ins))
	out = append(out, src[:at]...)
	out = append(out, ins...)
	return append(out, src[at:]...)
}

func printSuccessMessage(w io.Writer, name string) {
	fmt.Fprintf(w, "✅ Successfully created module '%s' in internal/modules/%s/\n", name, name)
	fmt.Fprintf(w, "✅ Registered %s.New() in %s\n", name, modulesFile)
	fmt.Fprintf(w, "\nVisit /%s once the server restarts.\n", name)
}

func printNextSteps(w io.Writer, name string, cause error) {
	fmt.Fprintf(w, "✅ Successfully created module '%s' in internal/modules/%s/\n", name, name)
	fmt.Fprintf(w, "⚠️  Automatic registration failed: %v\n\n", cause)
	fmt.Fprintf(w, "Register the module in '%s':\n\n", modulesFile)
	fmt.Fprintf(w, "import \"%s/internal/modules/%s\"\n\n", modulePath, name)
	fmt.Fprintln(w, "// Add to the NewModules function's return slice:")
	fmt.Fprintf(w, "%s.New(),\n", name)
}

const moduleTemplate = `// Package {{.Name}} serves the /{{.Name}} page.
package {{.Name}}

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"{{.Module}}/internal/module"
	"{{.Module}}/internal/registry"
)

// Module implements module.Module.
type Module struct {
	module.BaseModule
}

// New creates a new instance of the module.
func New() *Module {
	return &Module{}
}

// Name returns the module's unique identifier.
func (m *Module) Name() string {
	return "{{.Name}}"
}

// Boot registers the module's routes.
func (m *Module) Boot(_ context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting {{.Name}} module")
	h := NewHandler(registry.MustGet(reg, registry.RendererKey))
	g.GET("/{{.Name}}", h.Get)
	return nil
}
`

const handlerTemplate = `package {{.Name}}

import (
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"{{.Module}}/internal/rendering"
	"{{.Module}}/internal/view"
)

// Handler manages the HTTP requests for the {{.Name}} module.
type Handler struct {
	renderer rendering.Renderer
}

// NewHandler creates a new handler.
func NewHandler(renderer rendering.Renderer) *Handler {
	return &Handler{renderer: renderer}
}

// Get renders the main page for the {{.Name}} module.
func (h *Handler) Get(c echo.Context) error {
	body := g.Section(g.Class("p-8"),
		g.H1(g.Class("text-2xl font-bold"), cmp.Text("{{.PascalName}}")),
		g.P(cmp.Text("Hello from the {{.Name}} module!")),
	)
	return h.renderer.RenderPage(c, http.StatusOK, view.Page("{{.PascalName}}", "", body))
}
`
