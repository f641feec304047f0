// FILE: lixenwraith/siteconfig/config.go
package siteconfig

import (
	"fmt"

	"go.uber.org/zap"
)

// LoadOptions configures how a configuration is built
type LoadOptions struct {
	// ScriptPath is the request script path used to derive _APPURL_.
	// Empty yields "/".
	ScriptPath string

	// Unresolved decides the fate of references with no value in scope
	Unresolved UnresolvedPolicy

	// Logger receives load and resolution events. Nil disables logging.
	Logger *zap.Logger
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Unresolved: UnresolvedKeep,
	}
}

func (o LoadOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Config is the resolved, read-only configuration table.
// It is immutable once built and safe for concurrent reads.
// A nil or zero Config rejects every query with ErrUninitialized.
type Config struct {
	doc         *Document
	filePath    string
	vars        SpecialVars
	report      Report
	initialized bool
}

// New loads and resolves the file at path with default options.
func New(path string) (*Config, error) {
	return NewWithOptions(path, DefaultLoadOptions())
}

// NewWithOptions loads and resolves the file at path.
// Construction either fully succeeds or returns a nil Config.
func NewWithOptions(path string, opts LoadOptions) (*Config, error) {
	logger := opts.logger()

	raw, err := LoadRaw(path)
	if err != nil {
		buildErrorsTotal.Inc()
		logger.Error("config load failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}
	logger.Debug("config file loaded", zap.String("file", path), zap.Int("sections", raw.Len()))

	return FromDocument(raw, path, opts)
}

// FromDocument resolves an already loaded raw document. configFile is the
// location the special variables are derived from; it is not read.
func FromDocument(raw *Document, configFile string, opts LoadOptions) (*Config, error) {
	logger := opts.logger()

	if raw == nil || raw.Len() == 0 {
		buildErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: %s", ErrEmptyConfig, configFile)
	}

	vars := BuildSpecialVars(configFile, opts.ScriptPath)
	resolved, report, err := Resolve(raw, vars, ResolveOptions{
		Unresolved: opts.Unresolved,
		Logger:     logger,
	})
	unresolvedTotal.Add(float64(len(report.Unresolved)))
	if err != nil {
		buildErrorsTotal.Inc()
		logger.Error("config resolution failed", zap.String("file", configFile), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve config '%s': %w", configFile, err)
	}

	buildsTotal.Inc()
	logger.Debug("config built",
		zap.String("file", configFile),
		zap.Strings("sections", resolved.Names()),
	)

	return &Config{
		doc:         resolved,
		filePath:    configFile,
		vars:        vars,
		report:      *report,
		initialized: true,
	}, nil
}

// ready reports whether queries are allowed
func (c *Config) ready() error {
	if c == nil || !c.initialized || c.doc == nil {
		return ErrUninitialized
	}
	return nil
}

// section returns the live section for internal read-only use
func (c *Config) section(name string) (*Section, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	sec, ok := c.doc.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return sec, nil
}

// Section returns a copy of the named section's resolved values.
func (c *Config) Section(name string) (map[string]string, error) {
	sec, err := c.section(name)
	if err != nil {
		return nil, err
	}
	return sec.Map(), nil
}

// SectionNames returns the section names in document order.
func (c *Config) SectionNames() ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if c.doc.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyConfig, c.filePath)
	}
	return c.doc.Names(), nil
}

// Full returns a copy of the whole resolved configuration.
func (c *Config) Full() (map[string]map[string]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.doc.Map(), nil
}

// Document returns an ordered deep copy of the resolved configuration.
func (c *Config) Document() (*Document, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.doc.Clone(), nil
}

// Value returns a single resolved value.
func (c *Config) Value(section, key string) (string, error) {
	sec, err := c.section(section)
	if err != nil {
		return "", err
	}
	v, ok := sec.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %q in section %q", ErrUnknownKey, key, section)
	}
	return v, nil
}

// Get returns a resolved value and whether it exists.
func (c *Config) Get(section, key string) (string, bool) {
	v, err := c.Value(section, key)
	return v, err == nil
}

// FilePath returns the configuration file the values were resolved from.
func (c *Config) FilePath() string {
	if c == nil {
		return ""
	}
	return c.filePath
}

// SpecialVars returns the special variables used during resolution.
func (c *Config) SpecialVars() SpecialVars {
	if c == nil {
		return SpecialVars{}
	}
	return c.vars
}

// Unresolved returns the references left without a value during resolution.
func (c *Config) Unresolved() []UnresolvedRef {
	if c == nil {
		return nil
	}
	out := make([]UnresolvedRef, len(c.report.Unresolved))
	copy(out, c.report.Unresolved)
	return out
}
