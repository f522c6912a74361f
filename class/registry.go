package class

import (
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// classInfo is a defined class: its definition plus the reflected constructor.
type classInfo struct {
	def  Definition
	ctor *constructor
}

// Registry holds class definitions, the override mapping and the singleton store.
//
// A Registry is safe for concurrent use. Constructors and loaders are called without
// the registry lock held, so they may call back into the registry.
type Registry struct {
	id      string
	log     zerolog.Logger
	metrics Metrics
	loaders []Loader

	mu        sync.RWMutex
	classes   map[string]*classInfo
	byType    map[reflect.Type]string
	overrides map[string]string

	singletonsMu sync.Mutex
	singletons   map[string]*singletonEntry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug events. The default logger discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics sets the metrics sink. The default is NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithLoader appends a loader consulted when Create meets an undefined class.
func WithLoader(l Loader) Option {
	return func(r *Registry) {
		if l != nil {
			r.loaders = append(r.loaders, l)
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:         uuid.NewString(),
		log:        zerolog.Nop(),
		metrics:    NoopMetrics{},
		classes:    map[string]*classInfo{},
		byType:     map[reflect.Type]string{},
		overrides:  map[string]string{},
		singletons: map[string]*singletonEntry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.log = r.log.With().Str("registry", r.id).Logger()
	return r
}

// ID returns the registry's unique identifier, as attached to its log events.
func (r *Registry) ID() string { return r.id }

// Define adds class definitions in order.
//
// It stops at the first invalid definition and returns its error; definitions before
// it stay defined. A parent or implemented interface must be defined before the
// class that references it (earlier in the same call is fine).
func (r *Registry) Define(defs ...Definition) error {
	for _, d := range defs {
		if err := r.define(d); err != nil {
			return err
		}
	}
	return nil
}

// MustDefine is Define that panics on error. It returns r for chaining.
func (r *Registry) MustDefine(defs ...Definition) *Registry {
	if err := r.Define(defs...); err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) define(d Definition) error {
	ctor, err := d.validate()
	if err != nil {
		return err
	}
	d = d.clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[d.Name]; ok {
		return DuplicateClassError{Name: d.Name}
	}
	if d.Parent != "" {
		parent, ok := r.classes[d.Parent]
		if !ok {
			return UnknownClassError{Name: d.Parent}
		}
		if parent.def.Kind == KindInterface {
			return InvalidDefinitionError{Name: d.Name, Reason: "cannot extend interface " + d.Parent}
		}
	}
	for _, name := range d.Implements {
		iface, ok := r.classes[name]
		if !ok {
			return UnknownClassError{Name: name}
		}
		if iface.def.Kind != KindInterface {
			return InvalidDefinitionError{Name: d.Name, Reason: name + " is not an interface"}
		}
	}

	r.classes[d.Name] = &classInfo{def: d, ctor: ctor}
	if ctor != nil {
		// first class defined for a Go type wins ClassOf lookups
		if _, taken := r.byType[ctor.out]; !taken {
			r.byType[ctor.out] = d.Name
		}
	}

	r.log.Debug().
		Str("class", d.Name).
		Str("kind", d.Kind.String()).
		Str("parent", d.Parent).
		Msg("class defined")
	return nil
}

// Exists reports whether name is an already defined class or interface.
// Loaders are not consulted.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Lookup returns a copy of the definition for name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.classes[name]
	if !ok {
		return Definition{}, false
	}
	return info.def.clone(), true
}

// Classes returns the defined class names in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	names := lo.Keys(r.classes)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

func (r *Registry) class(name string) (*classInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.classes[name]
	return info, ok
}

// load returns the class, asking the loaders for it when it is not defined yet.
func (r *Registry) load(name string) (*classInfo, error) {
	if info, ok := r.class(name); ok {
		return info, nil
	}
	for _, l := range r.loaders {
		if err := l.Load(r, name); err != nil {
			return nil, LoaderError{Class: name, Err: err}
		}
		if info, ok := r.class(name); ok {
			r.log.Debug().Str("class", name).Msg("class loaded")
			return info, nil
		}
	}
	return nil, UnknownClassError{Name: name}
}
