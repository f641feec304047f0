// FILE: lixenwraith/siteconfig/cmd/siteconfig/main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testINI = `[MAIN]
SITE_ROOT = {_DIRNAMEOFFILE_}/..
BASE_URL = {_APPURL_}

[cs-project]
api_authtoken = SECRET123
`

func writeINI(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	confDir := filepath.Join(dir, "conf")
	require.NoError(t, os.MkdirAll(confDir, 0755))
	path := filepath.Join(confDir, "site.ini")
	require.NoError(t, os.WriteFile(path, []byte(testINI), 0644))
	return dir, path
}

func TestRun(t *testing.T) {
	dir, path := writeINI(t)

	t.Run("SingleValue", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"--file", path, "-s", "MAIN", "-k", "SITE_ROOT"}, &out))
		assert.Equal(t, dir+"\n", out.String())
	})

	t.Run("PositionalFile", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{path, "--script", "/shop/index.php", "-s", "MAIN", "-k", "BASE_URL"}, &out))
		assert.Equal(t, "/shop\n", out.String())
	})

	t.Run("Section", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-f", path, "-s", "cs-project"}, &out))
		assert.Equal(t, "api_authtoken = SECRET123\n", out.String())
	})

	t.Run("ExportJSON", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-f", path, "--format", "json"}, &out))
		assert.Contains(t, out.String(), `"api_authtoken": "SECRET123"`)
	})

	t.Run("SaveToFile", func(t *testing.T) {
		target := filepath.Join(dir, "out.env")
		var out bytes.Buffer
		require.NoError(t, run([]string{"-f", path, "--format", "env", "-o", target}, &out))
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), "CS_PROJECT_API_AUTHTOKEN")
		assert.Zero(t, out.Len())
	})

	t.Run("OutputForEveryForm", func(t *testing.T) {
		cases := []struct {
			name string
			args []string
			want string
		}{
			{"Value", []string{"-s", "MAIN", "-k", "SITE_ROOT"}, dir + "\n"},
			{"Section", []string{"-s", "cs-project"}, "api_authtoken = SECRET123\n"},
			{"Debug", []string{"--debug"}, "Configuration Debug Info"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				target := filepath.Join(t.TempDir(), "out.txt")
				var out bytes.Buffer
				args := append([]string{"-f", path, "-o", target}, tc.args...)
				require.NoError(t, run(args, &out))
				assert.Zero(t, out.Len(), "nothing goes to stdout when --output is set")

				data, err := os.ReadFile(target)
				require.NoError(t, err)
				assert.Contains(t, string(data), tc.want)
			})
		}
	})

	t.Run("LogFile", func(t *testing.T) {
		logPath := filepath.Join(dir, "logs", "siteconfig.log")
		var out bytes.Buffer
		require.NoError(t, run([]string{"-f", path, "-v", "--log-file", logPath, "--debug"}, &out))
		assert.Contains(t, out.String(), "Configuration Debug Info")
		assert.FileExists(t, logPath)
	})
}

func TestRunErrors(t *testing.T) {
	_, path := writeINI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"NoFile", nil},
		{"KeyWithoutSection", []string{"-f", path, "-k", "x"}},
		{"BadPolicy", []string{"-f", path, "--unresolved", "ignore"}},
		{"BadFormat", []string{"-f", path, "--format", "ini"}},
		{"UnknownSection", []string{"-f", path, "-s", "nope"}},
		{"UnknownFlag", []string{"--nope"}},
		{"OutputWithWatch", []string{"-f", path, "--watch", "-o", "out.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(tt.args, &out))
		})
	}

	t.Run("Help", func(t *testing.T) {
		var out bytes.Buffer
		assert.NoError(t, run([]string{"--help"}, &out))
	})
}
