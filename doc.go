// Package classhelper is a runtime class registry for Go.
//
// Classes are named, defined once on a registry and instantiated by name. A class
// may extend a parent, implement interface classes and declare class-level
// properties. Overrides redirect a class name to a replacement for every later
// Create; singletons are memoized per requested name.
//
// Layout:
//   - class: the registry, factory, overrides, singletons, statics and introspection
//   - cmd/classgen: generates RegisterClasses from a YAML catalog
//   - internal/config, internal/logging, internal/metrics: the ambient stack
//   - internal/container: samber/do composition root wiring the registry from config
//   - examples/shop: a generated catalog used end to end
package classhelper
