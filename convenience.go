// File: lixenwraith/siteconfig/convenience.go
package siteconfig

import (
	"fmt"
	"strings"
)

// Quick builds the configuration at path, taking the script path from the
// SCRIPT_NAME environment variable.
func Quick(path string) (*Config, error) {
	return NewBuilder().
		WithFile(path).
		WithScriptPathFromEnv().
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(path string) *Config {
	cfg, err := Quick(path)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return cfg
}

// Debug returns a formatted listing of every resolved value, the special
// variables, and any unresolved references.
func (c *Config) Debug() string {
	if err := c.ready(); err != nil {
		return fmt.Sprintf("Configuration Debug Info: %v\n", err)
	}

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("File: %s\n", c.filePath))
	b.WriteString("Special variables:\n")
	b.WriteString(fmt.Sprintf("  %s: %s\n", VarDirOfFile, c.vars.DirOfFile))
	b.WriteString(fmt.Sprintf("  %s: %s\n", VarConfigFile, c.vars.ConfigFile))
	b.WriteString(fmt.Sprintf("  %s: %s\n", VarThisFile, c.vars.ConfigFile))
	b.WriteString(fmt.Sprintf("  %s: %s\n", VarAppURL, c.vars.AppURL))

	for _, sec := range c.doc.Sections() {
		b.WriteString(fmt.Sprintf("[%s]\n", sec.Name))
		for _, p := range sec.Pairs {
			b.WriteString(fmt.Sprintf("  %s = %s\n", p.Key, p.Value))
		}
	}

	if len(c.report.Unresolved) > 0 {
		b.WriteString("Unresolved references:\n")
		for _, ref := range c.report.Unresolved {
			b.WriteString(fmt.Sprintf("  %s\n", ref))
		}
	}

	return b.String()
}
