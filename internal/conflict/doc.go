// Package conflict flags records that compete for the same Source node.
package conflict
