package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

type pkgHarness struct {
	t   *testing.T
	dir string
}

func newPkg(t *testing.T) *pkgHarness {
	t.Helper()
	return &pkgHarness{t: t, dir: t.TempDir()}
}

func (p *pkgHarness) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, rel)
	mustWriteFile(p.t, path, content)
	return path
}

func (p *pkgHarness) out(rel string) string {
	return filepath.Join(p.dir, rel)
}

func (p *pkgHarness) read(rel string) string {
	p.t.Helper()
	return mustReadString(p.t, filepath.Join(p.dir, rel))
}

const shopCatalog = `package: shop
imports:
  class: example.com/proj/class
classes:
  - name: shop.PromoCart
    constructor: NewPromoCart
    parent: shop.BasicCart
    statics:
      - name: table
        value: promo_carts
      - name: discount
        expr: "0.1"
  - name: shop.BasicCart
    constructor: NewBasicCart
    parent: shop.Cart
    implements: [shop.Priced]
  - name: shop.Cart
    kind: abstract
    statics:
      - name: table
        value: carts
  - name: shop.Priced
    kind: interface
    interfaceType: Priced
`

func writeClassSource(p *pkgHarness) {
	p.write("shop.go", `package shop
import class "example.com/proj/class"
var _ = class.New`)
}

func writeGoMod(p *pkgHarness) {
	p.write("go.mod", "module example.com/proj\n\ngo 1.22\n")
}

func assertHasImport(t TB, out, imp string) {
	t.Helper()
	if !strings.Contains(out, `"`+imp+`"`) {
		t.Fatalf("expected import %q", imp)
	}
}

func assertNotHasImport(t TB, out, imp string) {
	t.Helper()
	if strings.Contains(out, `"`+imp+`"`) {
		t.Fatalf("did not expect import %q", imp)
	}
}

func assertPanicContains(t TB, fn func(), wantSubstr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", wantSubstr)
		}
		msg := panicMessage(r)
		if !strings.Contains(msg, wantSubstr) {
			t.Fatalf("panic=%q want contains %q", msg, wantSubstr)
		}
	}()
	fn()
}

func mustWriteFile(t TB, path, content string) {
	t.Helper()
	mustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdirAll(t TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustReadString(t TB, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func assertContainsInOrder(t TB, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(s[pos:], p)
		if i < 0 {
			t.Fatalf("expected to find %q after pos=%d", p, pos)
		}
		pos += i + len(p)
	}
}

type fatalTB struct {
	testing.TB
}

func (f fatalTB) Helper() {}

func (f fatalTB) Cleanup(func()) {}

func (f fatalTB) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// TestHelpers_CoverFatalBranches checks the helpers fail when they should.
func TestHelpers_CoverFatalBranches(t *testing.T) {
	t.Parallel()

	tb := fatalTB{}

	assertPanicContains(t, func() { assertHasImport(tb, `import "fmt"`, "strings") }, `expected import "strings"`)
	assertPanicContains(t, func() { assertNotHasImport(tb, `import "fmt"`, "fmt") }, `did not expect import "fmt"`)
	assertPanicContains(t, func() { assertContainsInOrder(tb, "b a", "a", "b") }, `expected to find "b"`)
	assertPanicContains(t, func() { mustReadString(tb, filepath.Join(t.TempDir(), "missing")) }, "read ")
}
