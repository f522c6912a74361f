// Command classgen generates class registration code for the class package.
//
// A catalog lists classes with their kind, constructor, parent, implemented
// interfaces and class-level properties:
//
//	package: shop
//	classes:
//	  - name: shop.Priced
//	    kind: interface
//	    interfaceType: Priced
//	  - name: shop.Cart
//	    kind: abstract
//	    statics:
//	      - name: table
//	        value: carts
//	  - name: shop.BasicCart
//	    constructor: NewBasicCart
//	    parent: shop.Cart
//	    implements: [shop.Priced]
//
// Running
//
//	classgen generate --catalog catalog.yaml --out classes.gen.go
//
// writes a file with RegisterClasses(r *class.Registry) error and a ClassNames list.
// Classes are emitted parents first, so Define never sees an unknown parent. The
// header records the catalog's SHA-256.
//
// The class package import is taken from the catalog's imports.class, else from an
// import already used by the output package, else from the module classgen itself
// lives in. Imports of an earlier generated file are kept while a catalog
// expression still references them.
package main
