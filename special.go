// FILE: lixenwraith/siteconfig/special.go
package siteconfig

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Reserved special variable names
const (
	VarDirOfFile  = "_DIRNAMEOFFILE_"
	VarConfigFile = "_CONFIGFILE_"
	VarThisFile   = "_THISFILE_"
	VarAppURL     = "_APPURL_"
)

// separatorRun matches two or more consecutive path separators
var separatorRun = regexp.MustCompile(`/{2,}`)

// SpecialVars holds the built-in substitution variables derived from the
// configuration file's location and the request script path.
type SpecialVars struct {
	DirOfFile  string
	ConfigFile string
	AppURL     string
}

// BuildSpecialVars derives the special variables. It consults no ambient state.
func BuildSpecialVars(configFile, scriptPath string) SpecialVars {
	return SpecialVars{
		DirOfFile:  filepath.Dir(configFile),
		ConfigFile: configFile,
		AppURL:     appURL(scriptPath),
	}
}

// Map returns the four reserved variables keyed by name.
func (v SpecialVars) Map() map[string]string {
	return map[string]string{
		VarDirOfFile:  v.DirOfFile,
		VarConfigFile: v.ConfigFile,
		VarThisFile:   v.ConfigFile,
		VarAppURL:     v.AppURL,
	}
}

// appURL strips the script's own filename from its path.
// "/app/index.php" -> "/app", "index.php" -> "/", "" -> "/".
func appURL(scriptPath string) string {
	scriptPath = separatorRun.ReplaceAllString(scriptPath, "/")
	bits := strings.Split(scriptPath, "/")
	if len(bits) > 0 && bits[0] == "" {
		bits = bits[1:]
	}
	if len(bits) > 0 {
		bits = bits[:len(bits)-1]
	}
	if len(bits) == 0 {
		return "/"
	}
	return "/" + strings.Join(bits, "/")
}
