// Package treefile reads and writes Symbol Trees as YAML documents.
//
// A document names its compilation unit and holds one nested root node:
//
//	unit: Foo.java
//	root:
//	  kind: package
//	  name: pkg
//	  children:
//	    - kind: type
//	      name: Foo
//	      span: 1-30
//	      children:
//	        - kind: method
//	          name: bar
//	          signature: (int)
//
// Qualified names default to the parent's qualified name plus the node name,
// arities default to the parameter count of the signature and ordinals are
// assigned in declaration order.
package treefile
