package main

import (
	"go/token"
	"sort"
	"strings"
)

// Catalog is the YAML input of classgen.
type Catalog struct {
	Package string `yaml:"package"`

	// Function is the name of the generated registration func (default "RegisterClasses").
	Function string `yaml:"function"`

	// NamesVar is the name of the generated class name list (default "ClassNames").
	NamesVar string `yaml:"namesVar"`

	Imports CatalogImports `yaml:"imports"`
	Classes []ClassSpec    `yaml:"classes"`
}

// CatalogImports controls the generated import block.
type CatalogImports struct {
	// Optional: override the inferred import path of the class runtime package.
	Class string `yaml:"class"`

	// Extra imports needed by constructor, interface or static expressions.
	Extra []GoImport `yaml:"extra"`
}

// Class kinds accepted in a catalog.
const (
	kindConcrete  = "concrete"
	kindAbstract  = "abstract"
	kindInterface = "interface"
)

// ClassSpec describes one class.
type ClassSpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // "concrete" | "abstract" | "interface"

	// Constructor is a Go expression for the constructor func, e.g. "NewBasicCart".
	Constructor string `yaml:"constructor"`

	Parent     string   `yaml:"parent"`
	Implements []string `yaml:"implements"`

	// InterfaceType binds an interface class to a Go interface type, e.g. "Priced".
	InterfaceType string `yaml:"interfaceType"`

	Statics []StaticSpec `yaml:"statics"`
}

// StaticSpec is a class-level property. Expr is emitted verbatim; when it is empty
// Value is emitted as a quoted string.
type StaticSpec struct {
	Name  string `yaml:"name"`
	Expr  string `yaml:"expr"`
	Value string `yaml:"value"`
}

// GoExpr returns the Go source for the static value.
func (s StaticSpec) GoExpr() string {
	if strings.TrimSpace(s.Expr) != "" {
		return s.Expr
	}
	return quote(s.Value)
}

func applyCatalogDefaults(c *Catalog) {
	if c == nil {
		return
	}
	if c.Function == "" {
		c.Function = "RegisterClasses"
	}
	if c.NamesVar == "" {
		c.NamesVar = "ClassNames"
	}
	for i := range c.Classes {
		if c.Classes[i].Kind == "" {
			c.Classes[i].Kind = kindConcrete
		}
	}
}

func validateCatalog(c *Catalog) {
	if !token.IsIdentifier(c.Package) {
		die("package must be a valid identifier")
	}
	if !token.IsIdentifier(c.Function) {
		die("function must be a valid identifier")
	}
	if !token.IsIdentifier(c.NamesVar) {
		die("namesVar must be a valid identifier")
	}
	if c.Function == c.NamesVar {
		die("function and namesVar must differ")
	}
	if len(c.Classes) == 0 {
		die("catalog has no classes")
	}
	for _, imp := range c.Imports.Extra {
		if strings.TrimSpace(imp.Path) == "" {
			die("imports.extra entry missing path")
		}
	}

	seen := map[string]bool{}
	for _, cl := range c.Classes {
		if strings.TrimSpace(cl.Name) == "" {
			die("class missing name")
		}
		if seen[cl.Name] {
			die("duplicate class: " + cl.Name)
		}
		seen[cl.Name] = true
		validateClass(cl)
	}
}

func validateClass(cl ClassSpec) {
	switch cl.Kind {
	case kindConcrete:
		if strings.TrimSpace(cl.Constructor) == "" {
			die("concrete class " + cl.Name + " missing constructor")
		}
	case kindAbstract:
		if cl.Constructor != "" {
			die("abstract class " + cl.Name + " cannot have a constructor")
		}
	case kindInterface:
		if cl.Constructor != "" {
			die("interface " + cl.Name + " cannot have a constructor")
		}
		if cl.Parent != "" {
			die("interface " + cl.Name + " extends through implements, not parent")
		}
	default:
		die("class " + cl.Name + " has invalid kind " + quote(cl.Kind))
	}
	if cl.InterfaceType != "" && cl.Kind != kindInterface {
		die("class " + cl.Name + ": interfaceType is only allowed on interfaces")
	}
	if cl.Parent == cl.Name {
		die("class " + cl.Name + " cannot extend itself")
	}

	statics := map[string]bool{}
	for _, s := range cl.Statics {
		if strings.TrimSpace(s.Name) == "" {
			die("class " + cl.Name + ": static missing name")
		}
		if statics[s.Name] {
			die("class " + cl.Name + ": duplicate static " + s.Name)
		}
		statics[s.Name] = true
	}
}

// orderClasses returns the classes so that every parent and implemented interface
// declared in the catalog comes before its users. Ties are broken by name so the
// output is stable. References to classes outside the catalog are not ordered.
func orderClasses(classes []ClassSpec) []ClassSpec {
	byName := make(map[string]ClassSpec, len(classes))
	for _, cl := range classes {
		byName[cl.Name] = cl
	}

	pending := map[string]int{}
	users := map[string][]string{}
	for _, cl := range classes {
		pending[cl.Name] += 0
		for _, dep := range dependencies(cl) {
			if _, ok := byName[dep]; !ok {
				continue
			}
			pending[cl.Name]++
			users[dep] = append(users[dep], cl.Name)
		}
	}

	var ready []string
	for name, n := range pending {
		if n == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	out := make([]ClassSpec, 0, len(classes))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		out = append(out, byName[name])

		for _, u := range users[name] {
			pending[u]--
			if pending[u] == 0 {
				ready = append(ready, u)
			}
		}
		sort.Strings(ready)
	}

	if len(out) != len(classes) {
		var stuck []string
		for name, n := range pending {
			if n > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		die("cycle in class hierarchy: " + strings.Join(stuck, ", "))
	}
	return out
}

func dependencies(cl ClassSpec) []string {
	var deps []string
	if cl.Parent != "" {
		deps = append(deps, cl.Parent)
	}
	return append(deps, cl.Implements...)
}
