package utils

import (
	"path/filepath"
	"strings"
)

// SafeExt returns the lowercased file extension of name, or "" when the
// extension is missing or contains path characters an object key must not.
func SafeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
