package class

import (
	"errors"
	"strconv"
)

var (
	// ErrConstructorPanic is wrapped by ConstructorError when a constructor panics.
	ErrConstructorPanic = errors.New("class: panic during construction")

	// ErrNilInstance is wrapped by ConstructorError when a constructor returns nil or a
	// nil pointer.
	ErrNilInstance = errors.New("class: constructor returned nil")

	// ErrNilRegistry is returned by the generic helpers when given a nil registry.
	ErrNilRegistry = errors.New("class: nil registry")
)

// UnknownClassError is returned when a class name is not defined and no loader
// could define it.
type UnknownClassError struct{ Name string }

// Error implements the error interface.
func (e UnknownClassError) Error() string {
	// Example: class: unknown class "shop.Cart"
	return "class: unknown class " + strconv.Quote(e.Name)
}

// DuplicateClassError is returned when Define is called for a name that already exists.
type DuplicateClassError struct{ Name string }

// Error implements the error interface.
func (e DuplicateClassError) Error() string {
	return "class: class " + strconv.Quote(e.Name) + " already defined"
}

// InvalidDefinitionError is returned when a Definition fails validation.
type InvalidDefinitionError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e InvalidDefinitionError) Error() string {
	// Example: class: invalid definition "shop.Cart": constructor must be a func
	return "class: invalid definition " + strconv.Quote(e.Name) + ": " + e.Reason
}

// NotInstantiableError is returned by Create for abstract classes and interfaces.
type NotInstantiableError struct {
	Name string
	Kind Kind
}

// Error implements the error interface.
func (e NotInstantiableError) Error() string {
	return "class: cannot instantiate " + e.Kind.String() + " " + strconv.Quote(e.Name)
}

// ArgumentCountError is returned when the number of constructor arguments does not
// match the constructor signature.
type ArgumentCountError struct {
	Class    string
	Want     int
	Got      int
	Variadic bool
}

// Error implements the error interface.
func (e ArgumentCountError) Error() string {
	// Example: class: constructor of "shop.Cart" expects 2 arguments, got 1
	want := strconv.Itoa(e.Want)
	if e.Variadic {
		want = "at least " + want
	}
	return "class: constructor of " + strconv.Quote(e.Class) + " expects " + want +
		" arguments, got " + strconv.Itoa(e.Got)
}

// ArgumentTypeError is returned when a constructor argument is not assignable to the
// corresponding parameter.
type ArgumentTypeError struct {
	Class string
	Index int
	Want  string
	Got   string
}

// Error implements the error interface.
func (e ArgumentTypeError) Error() string {
	// Example: class: argument 0 of "shop.Cart" constructor: want string, got int
	return "class: argument " + strconv.Itoa(e.Index) + " of " + strconv.Quote(e.Class) +
		" constructor: want " + e.Want + ", got " + e.Got
}

// ConstructorError wraps an error returned (or a panic raised) by a constructor.
type ConstructorError struct {
	Class string
	Err   error
}

// Error implements the error interface.
func (e ConstructorError) Error() string {
	return "class: constructing " + strconv.Quote(e.Class) + ": " + e.Err.Error()
}

// Unwrap returns the underlying constructor error.
func (e ConstructorError) Unwrap() error { return e.Err }

// TypeMismatchError is returned by the generic helpers when the constructed instance is
// not of the requested Go type. This happens when a forced override replaces a class
// with an unrelated one.
type TypeMismatchError struct {
	Class string
	Want  string
	Got   string
}

// Error implements the error interface.
func (e TypeMismatchError) Error() string {
	return "class: instance of " + strconv.Quote(e.Class) + " has type " + e.Got + ", want " + e.Want
}

// LoaderError wraps an error returned by a Loader.
type LoaderError struct {
	Class string
	Err   error
}

// Error implements the error interface.
func (e LoaderError) Error() string {
	return "class: loading " + strconv.Quote(e.Class) + ": " + e.Err.Error()
}

// Unwrap returns the underlying loader error.
func (e LoaderError) Unwrap() error { return e.Err }
