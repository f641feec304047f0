// File: lixenwraith/siteconfig/builder.go
package siteconfig

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ScriptPathEnv is the environment variable WithScriptPathFromEnv reads
const ScriptPathEnv = "SCRIPT_NAME"

// ValidatorFunc checks a fully built Config and returns an error to reject it.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations
type Builder struct {
	opts       LoadOptions
	file       string
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		opts:       DefaultLoadOptions(),
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithScriptPath sets the request script path _APPURL_ is derived from
func (b *Builder) WithScriptPath(path string) *Builder {
	b.opts.ScriptPath = path
	return b
}

// WithScriptPathFromEnv takes the script path from SCRIPT_NAME, if set
func (b *Builder) WithScriptPathFromEnv() *Builder {
	b.opts.ScriptPath = os.Getenv(ScriptPathEnv)
	return b
}

// WithLogger sets the logger for load and resolution events
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithUnresolvedPolicy sets how unresolved references are handled
func (b *Builder) WithUnresolvedPolicy(policy UnresolvedPolicy) *Builder {
	b.opts.Unresolved = policy
	return b
}

// WithArgs sets the command-line arguments consulted by file discovery
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithValidator adds a validation function that runs at the end of the build process.
// Validators run in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads, resolves and validates the configuration
func (b *Builder) Build() (*Config, error) {
	if b.file == "" {
		return nil, fmt.Errorf("%w: no config file specified", ErrConfigNotFound)
	}

	cfg, err := NewWithOptions(b.file, b.opts)
	if err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	b.opts.logger().Info("config ready",
		zap.String("file", cfg.FilePath()),
		zap.String("app_url", cfg.SpecialVars().AppURL),
		zap.Int("unresolved", len(cfg.Unresolved())),
	)
	return cfg, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}
