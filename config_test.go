// FILE: lixenwraith/siteconfig/config_test.go
package siteconfig

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteINI = `[MAIN]
SITE_ROOT = {_DIRNAMEOFFILE_}/..
LIB_DIR = {SITE_ROOT}/lib
BASE_URL = {_APPURL_}

[cs-project]
api_authtoken = SECRET123

[test]
TOKEN = {cs-project/api_authtoken}
`

// newSiteConfig builds siteINI located at <tmp>/app/config.ini
func newSiteConfig(t *testing.T, opts LoadOptions) (*Config, string) {
	t.Helper()
	dir := t.TempDir()
	path := writeConfig(t, dir, filepath.Join("app", "config.ini"), siteINI)
	cfg, err := NewWithOptions(path, opts)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg, dir
}

func TestConfigCreation(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.ini", siteINI)
		cfg, err := New(path)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.FilePath())
		assert.Equal(t, "/", cfg.SpecialVars().AppURL)
		assert.Empty(t, cfg.Unresolved())
	})

	t.Run("WithScriptPath", func(t *testing.T) {
		cfg, _ := newSiteConfig(t, LoadOptions{ScriptPath: "/shop/index.php"})
		v, err := cfg.Value("MAIN", "BASE_URL")
		require.NoError(t, err)
		assert.Equal(t, "/shop", v)
	})

	t.Run("MissingFile", func(t *testing.T) {
		cfg, err := New(filepath.Join(t.TempDir(), "nope.ini"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.Nil(t, cfg)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		cfg, err := New(filepath.Join(t.TempDir(), "site.json"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Nil(t, cfg)
	})

	t.Run("EmptyConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "empty.ini", "; nothing here\n[only_header]\n")
		cfg, err := New(path)
		assert.ErrorIs(t, err, ErrEmptyConfig)
		assert.Nil(t, cfg)
	})

	t.Run("UnresolvedErrorPolicy", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "bad.ini", "[a]\nk = {NOPE}\n")
		cfg, err := NewWithOptions(path, LoadOptions{Unresolved: UnresolvedError})
		assert.ErrorIs(t, err, ErrUnresolvedReference)
		assert.Nil(t, cfg)
	})

	t.Run("FromDocument", func(t *testing.T) {
		raw := NewDocument()
		raw.Set("MAIN", "ROOT", "{_DIRNAMEOFFILE_}/../x")
		cfg, err := FromDocument(raw, "/srv/app/virtual.ini", DefaultLoadOptions())
		require.NoError(t, err)
		v, err := cfg.Value("MAIN", "ROOT")
		require.NoError(t, err)
		assert.Equal(t, "/srv/x", v)

		_, err = FromDocument(nil, "/srv/app/virtual.ini", DefaultLoadOptions())
		assert.ErrorIs(t, err, ErrEmptyConfig)
	})
}

func TestConfigQueries(t *testing.T) {
	cfg, dir := newSiteConfig(t, DefaultLoadOptions())

	t.Run("Section", func(t *testing.T) {
		main, err := cfg.Section("MAIN")
		require.NoError(t, err)
		assert.Equal(t, dir, main["SITE_ROOT"])
		assert.Equal(t, filepath.Join(dir, "lib"), main["LIB_DIR"])

		// Returned maps are copies
		main["SITE_ROOT"] = "mutated"
		v, _ := cfg.Value("MAIN", "SITE_ROOT")
		assert.Equal(t, dir, v)
	})

	t.Run("Token", func(t *testing.T) {
		v, err := cfg.Value("test", "TOKEN")
		require.NoError(t, err)
		assert.Equal(t, "SECRET123", v)
	})

	t.Run("UnknownSection", func(t *testing.T) {
		_, err := cfg.Section("nope")
		assert.ErrorIs(t, err, ErrUnknownSection)
		_, err = cfg.Value("nope", "k")
		assert.ErrorIs(t, err, ErrUnknownSection)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := cfg.Value("MAIN", "nope")
		assert.ErrorIs(t, err, ErrUnknownKey)
		_, ok := cfg.Get("MAIN", "nope")
		assert.False(t, ok)
	})

	t.Run("SectionNamesMatchFull", func(t *testing.T) {
		names, err := cfg.SectionNames()
		require.NoError(t, err)
		assert.Equal(t, []string{"MAIN", "cs-project", "test"}, names)

		full, err := cfg.Full()
		require.NoError(t, err)
		assert.Len(t, full, len(names))
		for _, n := range names {
			assert.Contains(t, full, n)
		}

		doc, err := cfg.Document()
		require.NoError(t, err)
		assert.Equal(t, names, doc.Names())
	})

	t.Run("DocumentIsCopy", func(t *testing.T) {
		doc, err := cfg.Document()
		require.NoError(t, err)
		doc.Set("MAIN", "SITE_ROOT", "changed")
		v, _ := cfg.Value("MAIN", "SITE_ROOT")
		assert.Equal(t, dir, v)
	})
}

func TestUninitializedConfig(t *testing.T) {
	configs := map[string]*Config{
		"Nil":  nil,
		"Zero": {},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			_, err := cfg.Section("MAIN")
			assert.ErrorIs(t, err, ErrUninitialized)
			_, err = cfg.SectionNames()
			assert.ErrorIs(t, err, ErrUninitialized)
			_, err = cfg.Full()
			assert.ErrorIs(t, err, ErrUninitialized)
			_, err = cfg.Value("MAIN", "k")
			assert.ErrorIs(t, err, ErrUninitialized)
			_, err = cfg.Document()
			assert.ErrorIs(t, err, ErrUninitialized)
			assert.ErrorIs(t, cfg.MaterializeConstants("MAIN", NewConstantNamespace()), ErrUninitialized)
			assert.ErrorIs(t, cfg.Dump(nil, ExportJSON), ErrUninitialized)
			assert.Empty(t, cfg.Unresolved())
		})
	}
}

func TestConfigUnresolvedReport(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "site.ini", "[a]\nx = {LATER}\ny = {x}\n[b]\nLATER = 1\n")

	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, []UnresolvedRef{{Section: "a", Key: "x", Token: "LATER"}}, cfg.Unresolved())
	assert.Contains(t, cfg.Debug(), "a/x: {LATER}")
}

func TestConcurrentReads(t *testing.T) {
	cfg, _ := newSiteConfig(t, DefaultLoadOptions())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, err := cfg.Value("test", "TOKEN")
				assert.NoError(t, err)
				assert.Equal(t, "SECRET123", v)
				_, err = cfg.Full()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
