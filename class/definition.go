package class

import (
	"maps"
	"reflect"
	"strconv"
	"strings"
)

// Kind tells whether a class can be instantiated.
type Kind int

const (
	// KindConcrete classes have a constructor and can be created.
	KindConcrete Kind = iota
	// KindAbstract classes take part in the hierarchy but cannot be created.
	KindAbstract
	// KindInterface classes can only be implemented. They may be bound to a Go interface.
	KindInterface
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindConcrete:
		return "class"
	case KindAbstract:
		return "abstract class"
	case KindInterface:
		return "interface"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Definition describes a class before it is defined on a Registry.
//
// Definitions are plain values; the chaining helpers return modified copies.
type Definition struct {
	Name       string
	Parent     string
	Implements []string
	Kind       Kind

	// Constructor is a func returning T or (T, error). Required for concrete classes.
	Constructor any

	// Statics holds the class-level properties declared on this class.
	Statics map[string]any

	// Interface is the Go interface type bound to an interface class (optional).
	Interface reflect.Type
}

// Concrete returns a definition for an instantiable class.
func Concrete(name string, ctor any) Definition {
	return Definition{Name: name, Kind: KindConcrete, Constructor: ctor}
}

// Abstract returns a definition for a class that cannot be instantiated.
func Abstract(name string) Definition {
	return Definition{Name: name, Kind: KindAbstract}
}

// Interface returns an interface class bound to the Go interface I.
//
// Classes whose constructor result implements I are treated as implementing the
// interface class even when they don't list it in Implements.
func Interface[I any](name string) Definition {
	return Definition{
		Name:      name,
		Kind:      KindInterface,
		Interface: reflect.TypeOf((*I)(nil)).Elem(),
	}
}

// InterfaceNamed returns an interface class that is not bound to a Go type.
func InterfaceNamed(name string) Definition {
	return Definition{Name: name, Kind: KindInterface}
}

// Extends sets the parent class.
func (d Definition) Extends(parent string) Definition {
	d.Parent = parent
	return d
}

// Implementing appends implemented interface classes. For interfaces it lists the
// interfaces being extended.
func (d Definition) Implementing(names ...string) Definition {
	d.Implements = append(append([]string(nil), d.Implements...), names...)
	return d
}

// WithStatic declares a class-level property on the definition.
func (d Definition) WithStatic(name string, value any) Definition {
	statics := make(map[string]any, len(d.Statics)+1)
	maps.Copy(statics, d.Statics)
	statics[name] = value
	d.Statics = statics
	return d
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructor is the reflected form of a Definition.Constructor.
type constructor struct {
	fn         reflect.Value
	typ        reflect.Type
	out        reflect.Type
	returnsErr bool
}

func inspectConstructor(name string, ctor any) (*constructor, error) {
	fn := reflect.ValueOf(ctor)
	if fn.Kind() != reflect.Func {
		return nil, InvalidDefinitionError{Name: name, Reason: "constructor must be a func, got " + fn.Kind().String()}
	}
	if fn.IsNil() {
		return nil, InvalidDefinitionError{Name: name, Reason: "constructor is a nil func"}
	}
	typ := fn.Type()
	switch {
	case typ.NumOut() == 1 && typ.Out(0) != errorType:
	case typ.NumOut() == 2 && typ.Out(1) == errorType && typ.Out(0) != errorType:
	default:
		return nil, InvalidDefinitionError{Name: name, Reason: "constructor must return T or (T, error)"}
	}
	return &constructor{
		fn:         fn,
		typ:        typ,
		out:        typ.Out(0),
		returnsErr: typ.NumOut() == 2,
	}, nil
}

// validate checks the parts of a definition that don't depend on other classes.
func (d Definition) validate() (*constructor, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, InvalidDefinitionError{Name: d.Name, Reason: "name is empty"}
	}
	switch d.Kind {
	case KindConcrete:
		if d.Constructor == nil {
			return nil, InvalidDefinitionError{Name: d.Name, Reason: "concrete class needs a constructor"}
		}
		if d.Interface != nil {
			return nil, InvalidDefinitionError{Name: d.Name, Reason: "only interfaces can bind a Go interface"}
		}
	case KindAbstract:
		if d.Interface != nil {
			return nil, InvalidDefinitionError{Name: d.Name, Reason: "only interfaces can bind a Go interface"}
		}
	case KindInterface:
		if d.Parent != "" {
			return nil, InvalidDefinitionError{Name: d.Name, Reason: "interfaces extend through Implements, not Parent"}
		}
		if d.Constructor != nil {
			return nil, InvalidDefinitionError{Name: d.Name, Reason: "interfaces cannot have a constructor"}
		}
		if d.Interface != nil && d.Interface.Kind() != reflect.Interface {
			return nil, InvalidDefinitionError{Name: d.Name, Reason: "bound type " + d.Interface.String() + " is not an interface"}
		}
	default:
		return nil, InvalidDefinitionError{Name: d.Name, Reason: "unknown kind " + d.Kind.String()}
	}
	if d.Parent == d.Name {
		return nil, InvalidDefinitionError{Name: d.Name, Reason: "class cannot extend itself"}
	}
	if d.Constructor == nil {
		return nil, nil
	}
	return inspectConstructor(d.Name, d.Constructor)
}

// clone returns a copy that shares no slices or maps with d.
func (d Definition) clone() Definition {
	d.Implements = append([]string(nil), d.Implements...)
	if d.Statics != nil {
		d.Statics = maps.Clone(d.Statics)
	}
	return d
}
