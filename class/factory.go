package class

import (
	"fmt"
	"reflect"
)

// Create constructs a new instance of name, or of its override if one is registered.
//
// args are passed positionally to the class constructor. Create fails when the class
// is unknown (after consulting loaders), is abstract or an interface, or when the
// arguments don't fit the constructor. Errors returned or panics raised by the
// constructor come back as ConstructorError.
//
// Instances embedding Object are bound to the registry and to the resolved class name.
// A constructor returning nil or a nil pointer fails with ErrNilInstance.
func (r *Registry) Create(name string, args ...any) (any, error) {
	v, _, err := r.create(name, args)
	return v, err
}

// MustCreate is Create that panics on error.
func (r *Registry) MustCreate(name string, args ...any) any {
	v, err := r.Create(name, args...)
	if err != nil {
		panic(err)
	}
	return v
}

func (r *Registry) create(name string, args []any) (any, string, error) {
	resolved := r.ResolveOverride(name)
	v, err := r.construct(resolved, args)
	r.metrics.ObserveCreate(name, resolved, err)
	if err != nil {
		r.log.Debug().
			Str("class", name).
			Str("resolved", resolved).
			Err(err).
			Msg("create failed")
		return nil, resolved, err
	}
	return v, resolved, nil
}

func (r *Registry) construct(name string, args []any) (any, error) {
	info, err := r.load(name)
	if err != nil {
		return nil, err
	}
	if info.def.Kind != KindConcrete || info.ctor == nil {
		return nil, NotInstantiableError{Name: name, Kind: info.def.Kind}
	}
	v, err := info.ctor.call(name, args)
	if err != nil {
		return nil, err
	}
	if isNil(v) {
		return nil, ConstructorError{Class: name, Err: ErrNilInstance}
	}
	if b, ok := v.(binder); ok {
		b.bindClass(r, name)
	}
	return v, nil
}

// call checks args against the constructor signature and invokes it.
func (c *constructor) call(class string, args []any) (out any, err error) {
	n := c.typ.NumIn()
	variadic := c.typ.IsVariadic()
	switch {
	case variadic && len(args) < n-1:
		return nil, ArgumentCountError{Class: class, Want: n - 1, Got: len(args), Variadic: true}
	case !variadic && len(args) != n:
		return nil, ArgumentCountError{Class: class, Want: n, Got: len(args)}
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if variadic && i >= n-1 {
			pt = c.typ.In(n - 1).Elem()
		} else {
			pt = c.typ.In(i)
		}
		v, ok := argValue(a, pt)
		if !ok {
			return nil, ArgumentTypeError{Class: class, Index: i, Want: pt.String(), Got: typeName(a)}
		}
		in[i] = v
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = ConstructorError{Class: class, Err: fmt.Errorf("%w: %v", ErrConstructorPanic, rec)}
		}
	}()

	results := c.fn.Call(in)
	if c.returnsErr && !results[1].IsNil() {
		return nil, ConstructorError{Class: class, Err: results[1].Interface().(error)}
	}
	return results[0].Interface(), nil
}

func argValue(a any, pt reflect.Type) (reflect.Value, bool) {
	if a == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return reflect.Zero(pt), true
		default:
			return reflect.Value{}, false
		}
	}
	v := reflect.ValueOf(a)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, false
	}
	return v, true
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// isNil reports whether v is nil or a nil pointer. Nil maps, slices and the like are
// usable values and don't count.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func assertAs[T any](class string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, TypeMismatchError{Class: class, Want: typeOf[T]().String(), Got: typeName(v)}
	}
	return t, nil
}

// Make is Create with the result asserted to T.
//
// It returns TypeMismatchError when the instance is not a T, which happens when a
// forced override points name at an unrelated class.
func Make[T any](r *Registry, name string, args ...any) (T, error) {
	var zero T
	if r == nil {
		return zero, ErrNilRegistry
	}
	v, resolved, err := r.create(name, args)
	if err != nil {
		return zero, err
	}
	return assertAs[T](resolved, v)
}

// CreateFor creates an instance of the class whose constructor returns T, honoring
// overrides registered for that class.
func CreateFor[T any](r *Registry, args ...any) (T, error) {
	var zero T
	if r == nil {
		return zero, ErrNilRegistry
	}
	name, ok := r.classForType(typeOf[T]())
	if !ok {
		return zero, UnknownClassError{Name: typeOf[T]().String()}
	}
	return Make[T](r, name, args...)
}

func (r *Registry) classForType(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[t]
	return name, ok
}
