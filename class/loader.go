package class

// Loader defines classes on demand.
//
// Create (and so Singleton) consults loaders, in registration order, when asked for a
// class that is not defined. A loader that doesn't know the name returns nil without
// defining anything. Exists and RegisterOverride never consult loaders.
type Loader interface {
	Load(r *Registry, name string) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(r *Registry, name string) error

// Load implements Loader.
func (f LoaderFunc) Load(r *Registry, name string) error { return f(r, name) }

// CatalogLoader returns a loader that defines a whole catalog the first time any of
// names is requested. The catalog usually is a generated RegisterClasses function.
func CatalogLoader(catalog func(*Registry) error, names ...string) Loader {
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}
	return LoaderFunc(func(r *Registry, name string) error {
		if _, ok := known[name]; !ok {
			return nil
		}
		if r.Exists(name) {
			return nil
		}
		return catalog(r)
	})
}
