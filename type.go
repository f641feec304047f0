// File: lixenwraith/siteconfig/type.go
package siteconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// Int64 parses a resolved value as an int64. Base prefixes like "0x" are honored.
func (c *Config) Int64(section, key string) (int64, error) {
	s, err := c.Value(section, key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s/%s value %q to int64: %w", section, key, s, err)
	}
	return i, nil
}

// Bool parses a resolved value as a boolean. Besides the strconv forms it
// accepts on/off and yes/no, as INI files commonly use them.
func (c *Config) Bool(section, key string) (bool, error) {
	s, err := c.Value(section, key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "none", "":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("cannot convert %s/%s value %q to bool: %w", section, key, s, err)
	}
	return b, nil
}

// Float64 parses a resolved value as a float64.
func (c *Config) Float64(section, key string) (float64, error) {
	s, err := c.Value(section, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s/%s value %q to float64: %w", section, key, s, err)
	}
	return f, nil
}
