package class

// Object is an embeddable base for instances created through a Registry.
//
// Create binds embedded Objects to the registry and to the class that was actually
// constructed, so Class reports the override rather than the requested name:
//
//	type PromoCart struct {
//		class.Object
//		Currency string
//	}
//
// The constructor must return a pointer for the binding to apply.
type Object struct {
	reg   *Registry
	class string
}

type binder interface {
	bindClass(r *Registry, name string)
}

type boundClasser interface {
	boundClass() (string, bool)
}

func (o *Object) bindClass(r *Registry, name string) {
	o.reg = r
	o.class = name
}

func (o *Object) boundClass() (string, bool) {
	return o.class, o.class != ""
}

// Class returns the name of the class this instance was created as, or "" when it
// wasn't created by a Registry.
func (o *Object) Class() string { return o.class }

// String returns the class name.
func (o *Object) String() string { return o.class }

// Registry returns the registry that created the instance.
func (o *Object) Registry() *Registry { return o.reg }

// ParentClass returns the parent of the instance's class.
func (o *Object) ParentClass() (string, bool) {
	if o.reg == nil {
		return "", false
	}
	return o.reg.ParentOf(o.class)
}

// IsA reports whether the instance's class is target or extends or implements it.
func (o *Object) IsA(target string) bool {
	if o.reg == nil {
		return false
	}
	return o.reg.IsSubclassOf(o.class, target)
}
