package class

import "reflect"

// ParentOf returns the immediate parent of name. ok is false for root classes,
// interfaces and unknown names.
func (r *Registry) ParentOf(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.classes[name]
	if !ok || info.def.Parent == "" {
		return "", false
	}
	return info.def.Parent, true
}

// Ancestors returns the parent chain of name, nearest first.
func (r *Registry) Ancestors(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for info, ok := r.classes[name]; ok && info.def.Parent != ""; info, ok = r.classes[info.def.Parent] {
		out = append(out, info.def.Parent)
	}
	return out
}

// IsSubclassOf reports whether class name is target, extends it or implements it.
// Both names must be defined.
func (r *Registry) IsSubclassOf(name, target string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSubclass(name, target)
}

// isSubclass walks parents and implemented interfaces breadth first. r.mu must be held.
func (r *Registry) isSubclass(name, target string) bool {
	want, ok := r.classes[target]
	if !ok {
		return false
	}
	info, ok := r.classes[name]
	if !ok {
		return false
	}
	if want.def.Interface != nil && info.ctor != nil && info.ctor.out.Implements(want.def.Interface) {
		return true
	}

	seen := map[string]bool{}
	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		c, ok := r.classes[cur]
		if !ok {
			continue
		}
		if c.def.Parent != "" {
			queue = append(queue, c.def.Parent)
		}
		queue = append(queue, c.def.Implements...)
	}
	return false
}

// ClassOf returns the class of an instance: the class it was bound to by Create when
// it embeds Object, otherwise the first class defined with a constructor returning
// the instance's Go type.
func (r *Registry) ClassOf(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if b, ok := v.(boundClasser); ok && !isNil(v) {
		if name, ok := b.boundClass(); ok {
			return name, true
		}
	}
	return r.classForType(reflect.TypeOf(v))
}

// IsA reports whether v is an instance of target or of a class extending or
// implementing it. When target is an interface bound to a Go interface, any v whose
// type implements it qualifies.
func (r *Registry) IsA(v any, target string) bool {
	if v == nil {
		return false
	}
	r.mu.RLock()
	want, ok := r.classes[target]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if want.def.Interface != nil && reflect.TypeOf(v).Implements(want.def.Interface) {
		return true
	}
	name, ok := r.ClassOf(v)
	if !ok {
		return false
	}
	return r.IsSubclassOf(name, target)
}
