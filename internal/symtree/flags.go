package symtree

import (
	"fmt"
	"strings"
)

// Flags is a bit set of declaration attributes.
type Flags uint8

const (
	FlagSynthetic Flags = 1 << iota
	FlagBridge
	FlagStatic
	FlagAbstract
	FlagVarargs
	FlagGeneratedAccessor
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagSynthetic, "synthetic"},
	{FlagBridge, "bridge"},
	{FlagStatic, "static"},
	{FlagAbstract, "abstract"},
	{FlagVarargs, "varargs"},
	{FlagGeneratedAccessor, "accessor"},
}

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Names returns the set flag names in a fixed order.
func (fl Flags) Names() []string {
	var names []string

	for _, fn := range flagNames {
		if fl.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}

	return names
}

// String returns the flag names joined with '|'.
func (fl Flags) String() string {
	return strings.Join(fl.Names(), "|")
}

// ParseFlags converts flag names to a bit set.
func ParseFlags(names []string) (Flags, error) {
	var fl Flags

outer:
	for _, name := range names {
		for _, fn := range flagNames {
			if fn.name == name {
				fl |= fn.flag

				continue outer
			}
		}

		return 0, fmt.Errorf("unknown flag %q", name)
	}

	return fl, nil
}
