package class_test

import (
	"errors"
	"sync/atomic"

	"github.com/sghaida/classhelper/class"
)

// Test fixtures: a tiny logging/cart hierarchy.
//
//	app.Writer        interface (bound to Writer)
//	app.Logger        concrete   NewLogger()
//	app.JSONLogger    concrete   NewJSONLogger()        extends app.Logger, implements app.Writer
//	app.Mailer        concrete   NewMailer()
//	app.Base          abstract   statics: table=base version=1
//	app.Cart          concrete   NewCart(currency, items...) extends app.Base, statics: table=carts version=1
//	app.Pair          concrete   NewPair(name, n)

type Writer interface {
	Write(msg string) string
}

type Logger struct {
	class.Object
	Prefix string
}

func NewLogger() *Logger { return &Logger{Prefix: "plain"} }

type JSONLogger struct {
	class.Object
}

func NewJSONLogger() *JSONLogger { return &JSONLogger{} }

func (l *JSONLogger) Write(msg string) string { return `{"msg":"` + msg + `"}` }

type Mailer struct{ Host string }

func NewMailer() *Mailer { return &Mailer{Host: "localhost"} }

type Cart struct {
	class.Object
	Currency string
	Items    []string
}

func NewCart(currency string, items ...string) *Cart {
	return &Cart{Currency: currency, Items: items}
}

type Pair struct {
	Name string
	N    int
}

func NewPair(name string, n int) *Pair { return &Pair{Name: name, N: n} }

var errBoom = errors.New("boom")

func newTestRegistry() *class.Registry {
	return class.New().MustDefine(
		class.Interface[Writer]("app.Writer"),
		class.Concrete("app.Logger", NewLogger),
		class.Concrete("app.JSONLogger", NewJSONLogger).
			Extends("app.Logger").
			Implementing("app.Writer"),
		class.Concrete("app.Mailer", NewMailer),
		class.Abstract("app.Base").
			WithStatic("table", "base").
			WithStatic("version", 1),
		class.Concrete("app.Cart", NewCart).
			Extends("app.Base").
			WithStatic("table", "carts").
			WithStatic("version", 1),
		class.Concrete("app.Pair", NewPair),
	)
}

// counted returns a concrete definition whose constructor increments calls.
func counted(name string, calls *atomic.Int32) class.Definition {
	return class.Concrete(name, func() *Pair {
		calls.Add(1)
		return &Pair{Name: name}
	})
}
