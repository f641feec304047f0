// FILE: lixenwraith/siteconfig/materialize.go
package siteconfig

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Namespace is a process-wide name/value space that resolved sections can be
// projected into for code that expects ambient variables.
type Namespace interface {
	// Define binds name to value.
	Define(name, value string) error
	// Lookup returns the value bound to name.
	Lookup(name string) (string, bool)
}

// ConstantNamespace binds each name at most once. Defining a name again with
// the same value is a no-op; a different value fails with ErrAlreadyDefined.
type ConstantNamespace struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConstantNamespace creates an empty constant namespace.
func NewConstantNamespace() *ConstantNamespace {
	return &ConstantNamespace{values: make(map[string]string)}
}

// Define implements Namespace.
func (n *ConstantNamespace) Define(name, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if existing, ok := n.values[name]; ok {
		if existing == value {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyDefined, name)
	}
	n.values[name] = value
	return nil
}

// Lookup implements Namespace.
func (n *ConstantNamespace) Lookup(name string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.values[name]
	return v, ok
}

// Snapshot returns a copy of every binding.
func (n *ConstantNamespace) Snapshot() map[string]string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return copyStringMap(n.values)
}

// GlobalNamespace binds names with last-write-wins semantics.
type GlobalNamespace struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewGlobalNamespace creates an empty global namespace.
func NewGlobalNamespace() *GlobalNamespace {
	return &GlobalNamespace{values: make(map[string]string)}
}

// Define implements Namespace.
func (n *GlobalNamespace) Define(name, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.values[name] = value
	return nil
}

// Lookup implements Namespace.
func (n *GlobalNamespace) Lookup(name string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.values[name]
	return v, ok
}

// Snapshot returns a copy of every binding.
func (n *GlobalNamespace) Snapshot() map[string]string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return copyStringMap(n.values)
}

// EnvNamespace binds names as process environment variables.
type EnvNamespace struct {
	// Prefix is prepended to every variable name
	Prefix string
}

// Define implements Namespace.
func (n EnvNamespace) Define(name, value string) error {
	if err := os.Setenv(n.Prefix+name, value); err != nil {
		return fmt.Errorf("failed to set environment variable '%s': %w", n.Prefix+name, err)
	}
	return nil
}

// Lookup implements Namespace.
func (n EnvNamespace) Lookup(name string) (string, bool) {
	return os.LookupEnv(n.Prefix + name)
}

// Process-wide default namespaces used when a nil Namespace is passed.
var (
	Constants = NewConstantNamespace()
	Globals   = NewGlobalNamespace()
)

// MaterializeConstants defines every pair of the section in ns twice: as
// KEY and as SECTION-KEY, both upper-cased. A nil ns means Constants.
// Materialization stops at the first failing definition.
func (c *Config) MaterializeConstants(section string, ns Namespace) error {
	sec, err := c.section(section)
	if err != nil {
		return err
	}
	if ns == nil {
		ns = Constants
	}

	for _, p := range sec.Pairs {
		if err := ns.Define(strings.ToUpper(p.Key), p.Value); err != nil {
			return fmt.Errorf("section %q: %w", section, err)
		}
		if err := ns.Define(strings.ToUpper(section+"-"+p.Key), p.Value); err != nil {
			return fmt.Errorf("section %q: %w", section, err)
		}
	}
	return nil
}

// MaterializeGlobals defines every pair of the section in ns under its plain
// key name. A nil ns means Globals.
func (c *Config) MaterializeGlobals(section string, ns Namespace) error {
	sec, err := c.section(section)
	if err != nil {
		return err
	}
	if ns == nil {
		ns = Globals
	}

	for _, p := range sec.Pairs {
		if err := ns.Define(p.Key, p.Value); err != nil {
			return fmt.Errorf("section %q: %w", section, err)
		}
	}
	return nil
}
