// FILE: lixenwraith/siteconfig/path.go
package siteconfig

import (
	"path"
	"strings"
)

// NormalizePath canonicalizes "." and ".." segments and collapses repeated
// separators without touching the filesystem. ".." above the root of an
// absolute path is dropped. A trailing separator on the input is kept.
// The empty string is returned unchanged.
func NormalizePath(s string) string {
	if s == "" {
		return s
	}

	cleaned := path.Clean(s)
	if strings.HasSuffix(s, "/") && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return cleaned
}
