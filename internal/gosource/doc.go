// Package gosource builds Source Model trees from Go packages.
//
// Each loaded package becomes one tree rooted at a Package node. Named types
// become Type nodes holding their struct fields or interface methods;
// methods with a receiver are attached to the receiver's type. Function
// literals inside method bodies become anonymous units named the way the gc
// compiler names closures ("func1", nested "1"). Parameters become local
// variables. Package-level functions and variables have no enclosing type
// and are not modelled.
//
// Types are rendered in the source style the normalizer reads: slices as
// "T[]", variadics as "T...", named types qualified by package name, and
// pointers erased.
package gosource
