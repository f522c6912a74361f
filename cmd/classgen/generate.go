package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// genCatalog reads the catalog at catalogPath and writes the registration file to
// outPath. Problems are reported through die/must panics.
func genCatalog(catalogPath, outPath string) {
	raw := mustRead(catalogPath)

	var c Catalog
	must(yaml.Unmarshal(raw, &c))

	applyCatalogDefaults(&c)
	validateCatalog(&c)
	inferClassImport(&c, outPath)

	ordered := orderClasses(c.Classes)

	names := make([]string, 0, len(ordered))
	for _, cl := range ordered {
		names = append(names, cl.Name)
	}
	sort.Strings(names)

	classImport := GoImport{Path: c.Imports.Class}
	if classImport.PackageName() != "class" {
		classImport.Name = "class"
	}
	required := append([]GoImport{classImport}, c.Imports.Extra...)
	preserved := referencedImports(readImportsFromExistingOut(outPath), ordered)

	data := map[string]any{
		"C":           c,
		"Classes":     ordered,
		"Names":       names,
		"CatalogPath": filepath.ToSlash(catalogPath),
		"CatalogHash": sha256Hex(raw),
		"Imports":     mergeImports(required, preserved),
	}

	src := mustExecTemplate(catalogTpl, data)
	writeFormatted(outPath, src)
}

// classExpr renders the class.Definition expression for one class.
func classExpr(cl ClassSpec) string {
	var b strings.Builder
	switch cl.Kind {
	case kindAbstract:
		fmt.Fprintf(&b, "class.Abstract(%s)", quote(cl.Name))
	case kindInterface:
		if cl.InterfaceType != "" {
			fmt.Fprintf(&b, "class.Interface[%s](%s)", cl.InterfaceType, quote(cl.Name))
		} else {
			fmt.Fprintf(&b, "class.InterfaceNamed(%s)", quote(cl.Name))
		}
	default:
		fmt.Fprintf(&b, "class.Concrete(%s, %s)", quote(cl.Name), cl.Constructor)
	}

	if cl.Parent != "" {
		fmt.Fprintf(&b, ".\nExtends(%s)", quote(cl.Parent))
	}
	if len(cl.Implements) > 0 {
		quoted := make([]string, len(cl.Implements))
		for i, name := range cl.Implements {
			quoted[i] = quote(name)
		}
		fmt.Fprintf(&b, ".\nImplementing(%s)", strings.Join(quoted, ", "))
	}
	for _, s := range cl.Statics {
		fmt.Fprintf(&b, ".\nWithStatic(%s, %s)", quote(s.Name), s.GoExpr())
	}
	return b.String()
}

// -------------------------
// Misc helpers
// -------------------------

func quote(s string) string { return strconv.Quote(s) }

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func mustRead(path string) []byte {
	b, err := os.ReadFile(path)
	must(err)
	return b
}

func mustExecTemplate(tpl *template.Template, data any) []byte {
	var sb strings.Builder
	must(tpl.Execute(&sb, data))
	return []byte(sb.String())
}

func writeFormatted(out string, src []byte) {
	fmtSrc, err := format.Source(src)
	if err != nil {
		_ = os.WriteFile(out, src, 0o644)
		die("gofmt/format failed: " + err.Error())
	}
	must(os.WriteFile(out, fmtSrc, 0o644))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func die(msg string) {
	panic(msg)
}

// panicMessage turns a recovered die/must value into text.
func panicMessage(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// -------------------------
// Template
// -------------------------

var catalogTpl = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"classExpr": classExpr,
	"quote":     quote,
}).Parse(`// Code generated by classgen. DO NOT EDIT.
// Catalog: {{.CatalogPath}}
// Catalog-SHA256: {{.CatalogHash}}

package {{.C.Package}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}{{quote .Path}}
{{- end}}
)

// {{.C.Function}} defines the catalog's classes on r, parents first.
func {{.C.Function}}(r *class.Registry) error {
	return r.Define(
{{- range .Classes}}
		{{classExpr .}},
{{- end}}
	)
}

// {{.C.NamesVar}} lists the classes defined by {{.C.Function}}.
var {{.C.NamesVar}} = []string{
{{- range .Names}}
	{{quote .}},
{{- end}}
}
`))
