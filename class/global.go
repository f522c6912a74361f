package class

import "sync"

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, creating an empty one on first use.
//
// Prefer passing an explicit *Registry; the default exists for code that wants a single
// shared class table.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// InitDefault installs r as the process-wide registry. Only the first call to
// InitDefault or Default has any effect; it reports whether r was installed.
func InitDefault(r *Registry) bool {
	installed := false
	defaultOnce.Do(func() {
		defaultRegistry = r
		installed = true
	})
	return installed
}

// Define defines classes on the default registry.
func Define(defs ...Definition) error { return Default().Define(defs...) }

// Exists reports whether name is defined on the default registry.
func Exists(name string) bool { return Default().Exists(name) }

// RegisterOverride registers an override on the default registry.
func RegisterOverride(original, replacement string, force bool) bool {
	return Default().RegisterOverride(original, replacement, force)
}

// ResolveOverride resolves name through the default registry's overrides.
func ResolveOverride(name string) string { return Default().ResolveOverride(name) }

// Create constructs name through the default registry.
func Create(name string, args ...any) (any, error) { return Default().Create(name, args...) }

// Singleton returns the default registry's singleton for name.
func Singleton(name string) (any, error) { return Default().Singleton(name) }

// StaticLookup reads a class-level property through the default registry.
func StaticLookup(name, prop string, def any) any { return Default().StaticLookup(name, prop, def) }
