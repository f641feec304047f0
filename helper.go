// File: lixenwraith/siteconfig/helper.go
package siteconfig

import "strings"

// copyStringMap returns a shallow copy of m.
func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// envVarName builds an environment variable name from a section and key:
// upper-cased, joined by an underscore, any character outside [A-Z0-9_]
// replaced by an underscore.
func envVarName(section, key string) string {
	name := strings.ToUpper(section + "_" + key)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		isLetter := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if isLetter || isDigit || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
