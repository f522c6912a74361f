package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
)

// GoImport is one entry of an import block.
type GoImport struct {
	Name string `yaml:"name"` // optional alias
	Path string `yaml:"path"`
}

// PackageName returns the identifier the import is referenced by: the alias, or the
// last path element with a major version suffix skipped.
func (gi GoImport) PackageName() string {
	if gi.Name != "" {
		return gi.Name
	}
	parts := strings.Split(gi.Path, "/")
	last := parts[len(parts)-1]
	if majorVersion.MatchString(last) && len(parts) > 1 {
		last = parts[len(parts)-2]
	}
	if i := strings.Index(last, "."); i > 0 {
		last = last[:i] // gopkg.in/yaml.v3
	}
	return strings.ReplaceAll(last, "-", "_")
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// -------------------------
// Class runtime import inference
// -------------------------

// inferClassImport fills c.Imports.Class when the catalog doesn't set it: from an
// import already used by the output package, else from the generator's own module.
func inferClassImport(c *Catalog, outPath string) {
	if strings.TrimSpace(c.Imports.Class) != "" {
		return
	}
	outDir := filepath.Dir(outPath)
	if gi, ok := findImportByAliasOrSuffix(scanPackageImports(outDir), "class", "/class"); ok {
		c.Imports.Class = gi.Path
		return
	}
	c.Imports.Class = inferRuntimeImportFromGeneratorModule("class")
}

// inferRuntimeImportFromGeneratorModule computes the import path of a runtime package
// from the go.mod of the module that contains this generator.
func inferRuntimeImportFromGeneratorModule(runtimePkgRel string) string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		die("cannot infer class runtime import: runtime.Caller failed")
	}
	genDir := filepath.Dir(thisFile)

	modRoot, modPath, err := findModule(genDir)
	if err != nil {
		die("cannot infer class runtime import: cannot find go.mod for generator module: " + err.Error())
	}

	if strings.TrimSpace(runtimePkgRel) == "" {
		runtimePkgRel = "class"
	}

	runtimeAbs := filepath.Join(modRoot, filepath.FromSlash(runtimePkgRel))
	if !dirExists(runtimeAbs) {
		die("cannot infer class runtime import: expected runtime package dir at " + filepath.ToSlash(runtimeAbs))
	}

	return modPath + "/" + filepath.ToSlash(runtimePkgRel)
}

// -------------------------
// go.mod helpers
// -------------------------

// findModule walks up from startDir to the nearest go.mod and returns its directory
// and module path.
func findModule(startDir string) (modRoot string, modPath string, err error) {
	for dir := startDir; ; dir = filepath.Dir(dir) {
		gomod := filepath.Join(dir, "go.mod")
		if fileExists(gomod) {
			b, err := os.ReadFile(gomod)
			if err != nil {
				return "", "", err
			}
			mod, err := modulePath(b)
			if err != nil {
				return "", "", fmt.Errorf("go.mod %s at %s", err, filepath.ToSlash(gomod))
			}
			return dir, mod, nil
		}
		if filepath.Dir(dir) == dir {
			return "", "", fmt.Errorf("could not find go.mod starting from %s", filepath.ToSlash(startDir))
		}
	}
}

// modulePath returns the path of the module directive. Only a line whose first field is
// exactly "module" counts.
func modulePath(gomod []byte) (string, error) {
	for _, ln := range strings.Split(string(gomod), "\n") {
		fields := strings.Fields(ln)
		if len(fields) == 0 || fields[0] != "module" {
			continue
		}
		if len(fields) < 2 || strings.Trim(fields[1], `"`) == "" {
			return "", errors.New("has empty module path")
		}
		return strings.Trim(fields[1], `"`), nil
	}
	return "", errors.New("missing module directive")
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// -------------------------
// Scan imports of the output package
// -------------------------

// scanPackageImports reads imports from all non-generated .go files in pkgDir
// (excluding *_test.go and *.gen.go), keeping aliases.
func scanPackageImports(pkgDir string) []GoImport {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return nil
	}

	var out []GoImport
	fset := token.NewFileSet()

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		// generated outputs must not feed back into inference
		if strings.HasSuffix(name, ".gen.go") || strings.HasSuffix(name, "_gen.go") {
			continue
		}

		full := filepath.Join(pkgDir, name)
		src, rerr := os.ReadFile(full)
		if rerr != nil {
			continue
		}
		f, perr := parser.ParseFile(fset, full, src, parser.ImportsOnly)
		if perr != nil {
			continue
		}
		out = append(out, importsOf(f)...)
	}

	return dedupeAndSortImports(out)
}

// findImportByAliasOrSuffix prefers an alias match, then a path suffix match.
func findImportByAliasOrSuffix(imports []GoImport, preferAlias, preferSuffix string) (GoImport, bool) {
	if preferAlias != "" {
		for _, gi := range imports {
			if gi.Name == preferAlias {
				return gi, true
			}
		}
	}
	if preferSuffix != "" {
		for _, gi := range imports {
			if strings.HasSuffix(gi.Path, preferSuffix) {
				return gi, true
			}
		}
	}
	return GoImport{}, false
}

func dedupeAndSortImports(imps []GoImport) []GoImport {
	seen := map[GoImport]bool{}
	out := make([]GoImport, 0, len(imps))
	for _, gi := range imps {
		if seen[gi] {
			continue
		}
		seen[gi] = true
		out = append(out, gi)
	}
	sortImports(out)
	return out
}

func sortImports(imps []GoImport) {
	sort.Slice(imps, func(i, j int) bool {
		if imps[i].Path == imps[j].Path {
			return imps[i].Name < imps[j].Name
		}
		return imps[i].Path < imps[j].Path
	})
}

// -------------------------
// Import preservation from an existing generated file
// -------------------------

func readImportsFromExistingOut(outPath string) []GoImport {
	if strings.TrimSpace(outPath) == "" || !fileExists(outPath) {
		return nil
	}
	src, err := os.ReadFile(outPath)
	if err != nil {
		return nil
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, outPath, src, parser.ImportsOnly)
	if err != nil {
		return nil
	}

	return importsOf(f)
}

// importsOf lists the imports of a parsed file in source order, keeping aliases.
func importsOf(f *ast.File) []GoImport {
	out := make([]GoImport, 0, len(f.Imports))
	for _, imp := range f.Imports {
		gi := GoImport{Path: strings.Trim(imp.Path.Value, `"`)}
		if imp.Name != nil {
			gi.Name = imp.Name.Name
		}
		out = append(out, gi)
	}
	return out
}

// referencedImports keeps the imports whose package name is still used by a
// constructor, interface type or static expression of the catalog.
func referencedImports(imps []GoImport, classes []ClassSpec) []GoImport {
	var exprs []string
	for _, cl := range classes {
		exprs = append(exprs, cl.Constructor, cl.InterfaceType)
		for _, s := range cl.Statics {
			exprs = append(exprs, s.GoExpr())
		}
	}
	joined := strings.Join(exprs, "\n")

	var out []GoImport
	for _, gi := range imps {
		pattern := `(^|[^A-Za-z0-9_.])` + regexp.QuoteMeta(gi.PackageName()) + `\.`
		if regexp.MustCompile(pattern).MatchString(joined) {
			out = append(out, gi)
		}
	}
	return out
}

// mergeImports unions required and preserved imports. A preserved import that reuses
// the package name of a required one is dropped.
func mergeImports(required []GoImport, preserved []GoImport) []GoImport {
	seen := map[GoImport]bool{}
	names := map[string]bool{}
	var out []GoImport

	for _, gi := range required {
		if seen[gi] {
			continue
		}
		seen[gi] = true
		names[gi.PackageName()] = true
		out = append(out, gi)
	}
	for _, gi := range preserved {
		if seen[gi] || names[gi.PackageName()] {
			continue
		}
		seen[gi] = true
		names[gi.PackageName()] = true
		out = append(out, gi)
	}

	sortImports(out)
	return out
}
