package common

import "path"

// UnknownStr is the textual form of an out-of-range enum value.
const UnknownStr = "unknown"

// PkgAlias returns the last element of an import path, which names the
// package in qualified symbol names. Returns "" if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}
