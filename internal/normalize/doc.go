// Package normalize computes canonical names and signatures for symbol trees
// so that Source and IR trees can be compared by equality.
//
// Two signature encodings are understood: source style, as written in code
// ("(int, List<? extends T>, String...)"), and JVM descriptors
// ("(I[Ljava/lang/String;)V"). Both collapse to the same canonical form:
//
//   - generic arguments, wildcards and variance markers are erased
//   - declared type variables become the simple name of their bound, or Object
//   - package qualifiers are dropped and nested separators become '.'
//   - varargs become arrays; primitives and boxed types stay distinct
//   - return types are not part of a callable's canonical signature
//
// Tokens outside both encodings yield an opaque canonical value that only
// equals itself, and ErrOpaqueSignature.
package normalize
