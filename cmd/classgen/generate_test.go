package main

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestGenCatalog_WritesParentsFirst(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeGoMod(p)
	catalog := p.write("catalog.yaml", shopCatalog)

	genCatalog(catalog, p.out("classes.gen.go"))
	out := p.read("classes.gen.go")

	if !strings.HasPrefix(out, "// Code generated by classgen. DO NOT EDIT.") {
		t.Fatalf("missing generated header:\n%s", out)
	}
	if !strings.Contains(out, "// Catalog-SHA256: "+sha256Hex([]byte(shopCatalog))) {
		t.Fatalf("missing catalog hash:\n%s", out)
	}
	assertHasImport(t, out, "example.com/proj/class")
	if strings.Contains(out, `class "example.com/proj/class"`) {
		t.Fatalf("class import should not be aliased:\n%s", out)
	}

	assertContainsInOrder(t, out,
		"package shop",
		"func RegisterClasses(r *class.Registry) error {",
		`class.Abstract("shop.Cart")`,
		`WithStatic("table", "carts")`,
		`class.Interface[Priced]("shop.Priced")`,
		`class.Concrete("shop.BasicCart", NewBasicCart)`,
		`Extends("shop.Cart")`,
		`Implementing("shop.Priced")`,
		`class.Concrete("shop.PromoCart", NewPromoCart)`,
		`Extends("shop.BasicCart")`,
		`WithStatic("table", "promo_carts")`,
		`WithStatic("discount", 0.1)`,
		"var ClassNames = []string{",
		`"shop.BasicCart"`,
		`"shop.Cart"`,
		`"shop.Priced"`,
		`"shop.PromoCart"`,
	)
}

func TestGenCatalog_AliasesClassImportAndAddsExtras(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeGoMod(p)
	catalog := p.write("catalog.yaml", `package: models
function: Register
namesVar: Names
imports:
  class: example.com/proj/runtime/classes
  extra:
    - path: time
classes:
  - name: models.Session
    constructor: NewSession
    statics:
      - name: ttl
        expr: 5 * time.Minute
`)

	genCatalog(catalog, p.out("models.gen.go"))
	out := p.read("models.gen.go")

	if !strings.Contains(out, `class "example.com/proj/runtime/classes"`) {
		t.Fatalf("expected aliased class import:\n%s", out)
	}
	assertHasImport(t, out, "time")
	assertContainsInOrder(t, out,
		"func Register(r *class.Registry) error {",
		`class.Concrete("models.Session", NewSession)`,
		`WithStatic("ttl", 5`,
		"time.Minute)",
		"var Names = []string{",
	)
}

func TestGenCatalog_PreservesOnlyReferencedImports(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeGoMod(p)
	writeClassSource(p)
	p.write("classes.gen.go", `package shop

import (
	"strings"
	"example.com/proj/pricing"
)
`)
	catalog := p.write("catalog.yaml", `package: shop
classes:
  - name: shop.Cart
    constructor: pricing.NewCart
`)

	genCatalog(catalog, p.out("classes.gen.go"))
	out := p.read("classes.gen.go")

	assertHasImport(t, out, "example.com/proj/class")
	assertHasImport(t, out, "example.com/proj/pricing")
	assertNotHasImport(t, out, "strings")
	assertContainsInOrder(t, out, `class.Concrete("shop.Cart", pricing.NewCart)`)
}

func TestGenCatalog_IsDeterministic(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeGoMod(p)
	catalog := p.write("catalog.yaml", shopCatalog)

	genCatalog(catalog, p.out("classes.gen.go"))
	first := p.read("classes.gen.go")
	genCatalog(catalog, p.out("classes.gen.go"))
	second := p.read("classes.gen.go")

	if first != second {
		t.Fatalf("output changed between runs:\n%s\n---\n%s", first, second)
	}
}

func TestGenCatalog_Failures(t *testing.T) {
	t.Parallel()

	t.Run("missing_catalog", func(t *testing.T) {
		t.Parallel()
		p := newPkg(t)
		assertPanicContains(t, func() { genCatalog(p.out("nope.yaml"), p.out("x.gen.go")) }, "no such file")
	})

	t.Run("bad_yaml", func(t *testing.T) {
		t.Parallel()
		p := newPkg(t)
		catalog := p.write("catalog.yaml", "package: [")
		assertPanicContains(t, func() { genCatalog(catalog, p.out("x.gen.go")) }, "yaml")
	})

	t.Run("invalid_catalog", func(t *testing.T) {
		t.Parallel()
		p := newPkg(t)
		catalog := p.write("catalog.yaml", "package: shop\n")
		assertPanicContains(t, func() { genCatalog(catalog, p.out("x.gen.go")) }, "catalog has no classes")
	})

	t.Run("unformattable_output_is_still_written", func(t *testing.T) {
		t.Parallel()
		p := newPkg(t)
		writeGoMod(p)
		catalog := p.write("catalog.yaml", `package: shop
imports:
  class: example.com/proj/class
classes:
  - name: shop.Cart
    constructor: "NewCart}"
`)
		out := p.out("x.gen.go")
		assertPanicContains(t, func() { genCatalog(catalog, out) }, "gofmt/format failed")
		if _, err := os.Stat(out); err != nil {
			t.Fatalf("expected unformatted output on disk: %v", err)
		}
	})
}

func TestClassExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ClassSpec
		want string
	}{
		{
			name: "concrete",
			in:   ClassSpec{Name: "a.B", Kind: kindConcrete, Constructor: "NewB"},
			want: `class.Concrete("a.B", NewB)`,
		},
		{
			name: "abstract_with_parent",
			in:   ClassSpec{Name: "a.B", Kind: kindAbstract, Parent: "a.A"},
			want: "class.Abstract(\"a.B\").\nExtends(\"a.A\")",
		},
		{
			name: "named_interface",
			in:   ClassSpec{Name: "a.I", Kind: kindInterface, Implements: []string{"a.J", "a.K"}},
			want: "class.InterfaceNamed(\"a.I\").\nImplementing(\"a.J\", \"a.K\")",
		},
		{
			name: "typed_interface_with_statics",
			in: ClassSpec{
				Name: "a.I", Kind: kindInterface, InterfaceType: "fmt.Stringer",
				Statics: []StaticSpec{{Name: "n", Expr: "1"}, {Name: "s", Value: "x"}},
			},
			want: "class.Interface[fmt.Stringer](\"a.I\").\nWithStatic(\"n\", 1).\nWithStatic(\"s\", \"x\")",
		},
	}

	for _, tt := range tests {
		if got := classExpr(tt.in); got != tt.want {
			t.Fatalf("%s: classExpr=%q want %q", tt.name, got, tt.want)
		}
	}
}

func TestMustAndPanicMessage(t *testing.T) {
	t.Parallel()

	must(nil)
	assertPanicContains(t, func() { must(errors.New("boom")) }, "boom")
	assertPanicContains(t, func() { die("bad") }, "bad")

	if got := panicMessage(42); got != "42" {
		t.Fatalf("panicMessage(42)=%q", got)
	}
}

func TestWriteFormatted_WriteError(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	assertPanicContains(t, func() {
		writeFormatted(p.out("missing/dir/x.go"), []byte("package p\n"))
	}, "no such file")
}
