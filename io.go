// File: lixenwraith/siteconfig/io.go
package siteconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ExportFormat names a serialization for resolved configuration
type ExportFormat string

const (
	ExportTOML ExportFormat = "toml"
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
	// ExportEnv writes dotenv lines named SECTION_KEY
	ExportEnv ExportFormat = "env"
)

// ParseExportFormat converts a format name. "yml" and "tml" are accepted aliases.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml", "tml":
		return ExportTOML, nil
	case "yaml", "yml":
		return ExportYAML, nil
	case "json":
		return ExportJSON, nil
	case "env", "dotenv":
		return ExportEnv, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidExportFormat, s)
	}
}

// Dump writes the resolved configuration to w in the given format.
func (c *Config) Dump(w io.Writer, format ExportFormat) error {
	if err := c.ready(); err != nil {
		return err
	}
	data, err := c.encode(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes the resolved configuration to path atomically. An empty
// format is inferred from the path's extension.
func (c *Config) Save(path string, format ExportFormat) error {
	if err := c.ready(); err != nil {
		return err
	}
	if format == "" {
		f, err := ParseExportFormat(filepath.Ext(path))
		if err != nil {
			return err
		}
		format = f
	}

	data, err := c.encode(format)
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// encode serializes the resolved document
func (c *Config) encode(format ExportFormat) ([]byte, error) {
	switch format {
	case ExportTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c.doc.Map()); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
		return buf.Bytes(), nil

	case ExportYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c.yamlNode()); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		return buf.Bytes(), nil

	case ExportJSON:
		return c.orderedJSON()

	case ExportEnv:
		env := make(map[string]string)
		for _, sec := range c.doc.Sections() {
			for _, p := range sec.Pairs {
				env[envVarName(sec.Name, p.Key)] = p.Value
			}
		}
		out, err := godotenv.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config data to dotenv: %w", err)
		}
		return []byte(out + "\n"), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}
}

// yamlNode builds a mapping node that keeps document order
func (c *Config) yamlNode() *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range c.doc.Sections() {
		body := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range sec.Pairs {
			body.Content = append(body.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Key},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Value},
			)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: sec.Name},
			body,
		)
	}
	return root
}

// orderedJSON writes sections and keys in document order
func (c *Config) orderedJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, sec := range c.doc.Sections() {
		name, err := json.Marshal(sec.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal section name: %w", err)
		}
		buf.WriteString("  ")
		buf.Write(name)
		buf.WriteString(": {")
		for j, p := range sec.Pairs {
			k, err := json.Marshal(p.Key)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal key: %w", err)
			}
			v, err := json.Marshal(p.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal value: %w", err)
			}
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("\n    ")
			buf.Write(k)
			buf.WriteString(": ")
			buf.Write(v)
		}
		if len(sec.Pairs) > 0 {
			buf.WriteString("\n  ")
		}
		buf.WriteByte('}')
		if i < c.doc.Len()-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op once renamed

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
