// Package class provides a small class registry for Go: named class definitions,
// override-aware construction, memoized singletons and class-level property lookup.
//
// A class is a named Definition held by a Registry. It has an optional parent,
// optional implemented interface classes, a kind (concrete, abstract, interface),
// a Go constructor and a table of class-level ("static") properties.
//
// The registry supports:
//
//   - RegisterOverride: redirect future construction of one class to another.
//     Without force, the replacement must be compatible with the current singleton
//     of the original class (which may be constructed as part of the check).
//   - Create / Make / CreateFor: construct through the override mapping with
//     positional constructor arguments.
//   - Singleton / SingletonAs / SingletonFor: at most one instance per class name
//     for the lifetime of the registry.
//   - StaticLookup: read a class-level property only if the class itself declares
//     it with a value distinct from its parent's.
//
// Construction errors are returned. Registration failures are reported as false.
// Lookups fall back to defaults.
//
// Quick start
//
//	reg := class.New()
//	reg.MustDefine(
//		class.Abstract("shop.Cart"),
//		class.Concrete("shop.BasicCart", NewBasicCart).Extends("shop.Cart"),
//		class.Concrete("shop.PromoCart", NewPromoCart).Extends("shop.BasicCart"),
//	)
//	reg.RegisterOverride("shop.BasicCart", "shop.PromoCart", true)
//	cart, err := class.Make[*PromoCart](reg, "shop.BasicCart", "EUR")
//
// Import
//
//	"github.com/sghaida/classhelper/class"
package class
