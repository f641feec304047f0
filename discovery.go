// FILE: lixenwraith/siteconfig/discovery.go
package siteconfig

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Where a discovered configuration file came from
const (
	FoundByFlag   = "flag"
	FoundByEnv    = "env"
	FoundBySearch = "search"
)

// FileDiscoveryOptions configures the lookup of a site configuration file
type FileDiscoveryOptions struct {
	// Name is the file's base name without extension
	Name string

	// Extensions are tried in order. Only extensions DetectFormat accepts are used.
	Extensions []string

	// Paths are searched before the current and XDG directories
	Paths []string

	// EnvVar names an environment variable holding an explicit path
	EnvVar string

	// CLIFlag names a command-line flag holding an explicit path
	CLIFlag string

	UseXDG        bool
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns defaults for an application name: site.ini
// style lookup of NAME.ini then NAME.xml, NAME_CONFIG and --config.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".ini", ".xml"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// discovery is the outcome of a file lookup
type discovery struct {
	path    string
	foundBy string
	format  Format
}

// WithFileDiscovery locates the configuration file. Precedence: CLI flag,
// environment variable, then the first existing file in the search paths.
// An explicit path with an unsupported extension is still taken so Build
// reports ErrUnsupportedFormat. Finding nothing leaves the file unset and
// Build reports ErrConfigNotFound.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	logger := b.opts.logger()

	found, ok := discoverFile(opts, b.args)
	if !ok {
		logger.Debug("no config file discovered",
			zap.String("name", opts.Name),
			zap.Strings("extensions", opts.Extensions),
		)
		return b
	}

	if found.format == "" {
		logger.Warn("discovered config file has an unsupported extension",
			zap.String("file", found.path),
			zap.String("found_by", found.foundBy),
		)
	} else {
		logger.Info("config file discovered",
			zap.String("file", found.path),
			zap.String("found_by", found.foundBy),
			zap.String("format", string(found.format)),
		)
	}
	b.file = found.path
	return b
}

// discoverFile returns the first configuration file found
func discoverFile(opts FileDiscoveryOptions, args []string) (discovery, bool) {
	if path := flagValue(args, opts.CLIFlag); path != "" {
		return explicit(path, FoundByFlag), true
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return explicit(path, FoundByEnv), true
		}
	}

	// Candidate names, restricted to formats the loader can read
	var names []string
	formats := make(map[string]Format)
	for _, ext := range opts.Extensions {
		name := opts.Name + ext
		format, err := DetectFormat(name)
		if err != nil {
			continue
		}
		names = append(names, name)
		formats[name] = format
	}
	if len(names) == 0 {
		return discovery{}, false
	}

	for _, dir := range searchDirs(opts) {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return discovery{path: path, foundBy: FoundBySearch, format: formats[name]}, true
			}
		}
	}
	return discovery{}, false
}

// explicit describes a caller-named path; format stays empty when unsupported
func explicit(path, foundBy string) discovery {
	format, _ := DetectFormat(path)
	return discovery{path: path, foundBy: foundBy, format: format}
}

// flagValue extracts "--flag value" or "--flag=value" from args
func flagValue(args []string, flag string) string {
	if flag == "" {
		return ""
	}
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v
		}
	}
	return ""
}

// searchDirs lists the directories to probe, in order
func searchDirs(opts FileDiscoveryOptions) []string {
	dirs := append([]string(nil), opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if opts.UseXDG {
		dirs = append(dirs, getXDGConfigPaths(opts.Name)...)
	}
	return dirs
}

// getXDGConfigPaths returns XDG config directories for appName
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName), filepath.Join("/etc", appName))
	}

	return paths
}
