// FILE: lixenwraith/siteconfig/path_test.go
package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/a/b/../c", "/a/c"},
		{"/srv/app/conf/..", "/srv/app"},
		{"/../a", "/a"},
		{"a/./b", "a/b"},
		{"a//b", "a/b"},
		{"/srv/lib/", "/srv/lib/"},
		{"/srv/lib/../", "/srv/"},
		{"/", "/"},
		{"SECRET123", "SECRET123"},
		{".", "."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizePath(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizePath(got), "normalization must be idempotent")
		})
	}
}
