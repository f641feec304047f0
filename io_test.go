// FILE: lixenwraith/siteconfig/io_test.go
package siteconfig

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const exportINI = `[MAIN]
SITE_ROOT = /srv/app
PORT = 8080

[cs-project]
api_authtoken = SECRET123
`

func exportConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := New(writeConfig(t, t.TempDir(), "export.ini", exportINI))
	require.NoError(t, err)
	return cfg
}

func TestDumpFormats(t *testing.T) {
	cfg := exportConfig(t)
	want, err := cfg.Full()
	require.NoError(t, err)

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Dump(&buf, ExportTOML))

		var got map[string]map[string]string
		_, err := toml.Decode(buf.String(), &got)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Dump(&buf, ExportYAML))

		var got map[string]map[string]string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, want, got)

		// Document order and string typing are preserved
		out := buf.String()
		assert.Less(t, strings.Index(out, "MAIN:"), strings.Index(out, "cs-project:"))
		assert.Less(t, strings.Index(out, "SITE_ROOT"), strings.Index(out, "PORT"))
		assert.Contains(t, out, `PORT: "8080"`)
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Dump(&buf, ExportJSON))

		var got map[string]map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, want, got)

		out := buf.String()
		assert.Less(t, strings.Index(out, `"SITE_ROOT"`), strings.Index(out, `"PORT"`))
		assert.Less(t, strings.Index(out, `"MAIN"`), strings.Index(out, `"cs-project"`))
	})

	t.Run("Env", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Dump(&buf, ExportEnv))

		got, err := godotenv.Unmarshal(buf.String())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"MAIN_SITE_ROOT":           "/srv/app",
			"MAIN_PORT":                "8080",
			"CS_PROJECT_API_AUTHTOKEN": "SECRET123",
		}, got)
	})

	t.Run("Invalid", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, cfg.Dump(&buf, ExportFormat("xml")), ErrInvalidExportFormat)
		assert.Zero(t, buf.Len())
	})
}

func TestJSONEmptySectionShape(t *testing.T) {
	raw := NewDocument()
	raw.Set("only", "k", "v")
	cfg, err := FromDocument(raw, "/virtual.ini", DefaultLoadOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf, ExportJSON))
	assert.JSONEq(t, `{"only":{"k":"v"}}`, buf.String())
}

func TestSave(t *testing.T) {
	cfg := exportConfig(t)
	dir := t.TempDir()

	t.Run("InferFromExtension", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "out.yml")
		require.NoError(t, cfg.Save(path, ""))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]map[string]string
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, "SECRET123", got["cs-project"]["api_authtoken"])

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file must not remain")
	})

	t.Run("ExplicitFormat", func(t *testing.T) {
		path := filepath.Join(dir, "out.txt")
		require.NoError(t, cfg.Save(path, ExportJSON))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		err := cfg.Save(filepath.Join(dir, "out.ini"), "")
		assert.ErrorIs(t, err, ErrInvalidExportFormat)
	})
}

func TestParseExportFormat(t *testing.T) {
	tests := map[string]ExportFormat{
		"toml":   ExportTOML,
		".tml":   ExportTOML,
		"YAML":   ExportYAML,
		".yml":   ExportYAML,
		"json":   ExportJSON,
		"env":    ExportEnv,
		"dotenv": ExportEnv,
	}
	for in, want := range tests {
		got, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseExportFormat("ini")
	assert.ErrorIs(t, err, ErrInvalidExportFormat)
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "MAIN_SITE_ROOT", envVarName("MAIN", "SITE_ROOT"))
	assert.Equal(t, "CS_PROJECT_API_AUTHTOKEN", envVarName("cs-project", "api_authtoken"))
	assert.Equal(t, "A_B_C_D", envVarName("a.b", "c d"))
}
