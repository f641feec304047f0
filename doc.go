// File: lixenwraith/siteconfig/doc.go

// Package siteconfig resolves sectioned configuration files into an
// immutable, fully substituted string table.
//
// A configuration file is either INI:
//
//	[MAIN]
//	SITE_ROOT = {_DIRNAMEOFFILE_}/..
//	LIB_DIR   = {SITE_ROOT}/lib
//
//	[cs-project]
//	api_authtoken = SECRET123
//
//	[test]
//	TOKEN = {cs-project/api_authtoken}
//
// or XML with the same two levels, where the root's children are sections and
// their children are keys:
//
//	<config>
//	  <MAIN>
//	    <SITE_ROOT>{_DIRNAMEOFFILE_}/..</SITE_ROOT>
//	  </MAIN>
//	</config>
//
// Features:
//   - Format selected by file extension (.ini or .xml)
//   - {SECTION/KEY} and {KEY} references, plus the special variables
//     {_DIRNAMEOFFILE_}, {_CONFIGFILE_}, {_THISFILE_} and {_APPURL_}
//   - Single forward pass: a value sees only values defined before it
//   - Path-like values canonicalized ("/srv/app/.." becomes "/srv")
//   - Configurable handling of unresolved references
//   - Opt-in projection of a section into constant, global or environment namespaces
//   - Typed section views via Scan, export to TOML, YAML, JSON and dotenv
//   - File watching with atomic swap of rebuilt configurations
//
// Quick Start:
//
//	cfg, err := siteconfig.NewBuilder().
//	    WithFile("/srv/app/conf/site.ini").
//	    WithScriptPath("/app/index.php").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root, _ := cfg.Value("MAIN", "SITE_ROOT")
//	main, _ := cfg.Section("MAIN")
//
// Resolution Precedence (highest to lowest):
//  1. Keys resolved earlier in the same section
//  2. SECTION/KEY and bare KEY entries from earlier values (later bare keys shadow earlier ones)
//  3. Special variables
//
// Thread Safety:
// A built Config is immutable and safe for concurrent reads. Namespaces are
// mutex protected.
package siteconfig
