package class

import (
	"slices"
	"sync"
	"sync/atomic"
)

// singletonEntry guards the first construction of one singleton key.
type singletonEntry struct {
	mu    sync.Mutex
	ready atomic.Bool
	value any
	class string // resolved class the value was constructed as
}

// Singleton returns the memoized instance for name, creating it with Create(name) on
// first use.
//
// The store is keyed by the requested name, not the resolved one. Once populated, an
// entry is never replaced, so overrides registered later don't affect it. Concurrent
// first calls construct once; the others wait and get the same instance. A failed
// construction leaves the key empty.
//
// A constructor must not request its own singleton: that call blocks forever.
func (r *Registry) Singleton(name string) (any, error) {
	v, _, err := r.singleton(name)
	return v, err
}

// singleton is Singleton that also returns the class the instance was constructed as.
func (r *Registry) singleton(name string) (any, string, error) {
	e := r.singletonEntry(name)
	if e.ready.Load() {
		r.metrics.ObserveSingleton(name, false)
		return e.value, e.class, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready.Load() {
		r.metrics.ObserveSingleton(name, false)
		return e.value, e.class, nil
	}

	v, resolved, err := r.create(name, nil)
	if err != nil {
		return nil, "", err
	}
	e.value = v
	e.class = resolved
	e.ready.Store(true)
	r.metrics.ObserveSingleton(name, true)
	r.log.Debug().
		Str("class", name).
		Str("resolved", resolved).
		Msg("singleton constructed")
	return v, resolved, nil
}

// MustSingleton is Singleton that panics on error.
func (r *Registry) MustSingleton(name string) any {
	v, err := r.Singleton(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Singletons returns the populated singleton keys in sorted order.
func (r *Registry) Singletons() []string {
	r.singletonsMu.Lock()
	out := make([]string, 0, len(r.singletons))
	for k, e := range r.singletons {
		if e.ready.Load() {
			out = append(out, k)
		}
	}
	r.singletonsMu.Unlock()
	slices.Sort(out)
	return out
}

func (r *Registry) singletonEntry(name string) *singletonEntry {
	r.singletonsMu.Lock()
	defer r.singletonsMu.Unlock()
	e, ok := r.singletons[name]
	if !ok {
		e = &singletonEntry{}
		r.singletons[name] = e
	}
	return e
}

// SingletonAs is Singleton with the result asserted to T.
func SingletonAs[T any](r *Registry, name string) (T, error) {
	var zero T
	if r == nil {
		return zero, ErrNilRegistry
	}
	v, err := r.Singleton(name)
	if err != nil {
		return zero, err
	}
	return assertAs[T](name, v)
}

// SingletonFor returns the singleton of the class whose constructor returns T.
func SingletonFor[T any](r *Registry) (T, error) {
	var zero T
	if r == nil {
		return zero, ErrNilRegistry
	}
	name, ok := r.classForType(typeOf[T]())
	if !ok {
		return zero, UnknownClassError{Name: typeOf[T]().String()}
	}
	return SingletonAs[T](r, name)
}
