// FILE: lixenwraith/siteconfig/loader.go
package siteconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"gopkg.in/ini.v1"
)

// Format identifies a raw configuration file format.
type Format string

const (
	// FormatINI reads [section] headers followed by key = value lines
	FormatINI Format = "ini"
	// FormatXML reads a root element whose children are sections and grandchildren are keys
	FormatXML Format = "xml"
)

// DetectFormat determines the file format from the path's extension.
// It is a pure function of the path string.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ini":
		return FormatINI, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// LoadRaw reads the file at path into an unresolved Document.
// The parser is selected by DetectFormat.
func LoadRaw(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read config file '%s': %w", ErrRead, path, err)
	}

	return LoadRawBytes(data, format, path)
}

// LoadRawBytes parses in-memory content of the given format.
// name is used only in error messages.
func LoadRawBytes(data []byte, format Format, name string) (*Document, error) {
	switch format {
	case FormatINI:
		return parseINI(data, name)
	case FormatXML:
		return parseXML(data, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// parseINI reads a two-level INI document. Keys that appear before the first
// section header land in the parser's implicit DEFAULT section and are rejected.
func parseINI(data []byte, name string) (*Document, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
		IgnoreContinuation:       true,
	}, data)
	if err != nil {
		return nil, &ParseError{Path: name, Message: "invalid INI", Err: err}
	}

	doc := NewDocument()
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection {
			if len(keys) > 0 {
				return nil, &ParseError{
					Path:    name,
					Message: fmt.Sprintf("key %q is not inside a section", keys[0].Name()),
				}
			}
			continue
		}
		for _, k := range keys {
			doc.Set(sec.Name(), k.Name(), k.Value())
		}
	}
	return doc, nil
}

// parseXML reads a two-level XML document. Attributes are ignored and each
// key element's text content, trimmed, becomes the value.
func parseXML(data []byte, name string) (*Document, error) {
	x := etree.NewDocument()
	if err := x.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Path: name, Message: "invalid XML", Err: err}
	}

	root := x.Root()
	if root == nil {
		return nil, &ParseError{Path: name, Message: "no root element"}
	}

	doc := NewDocument()
	for _, sec := range root.ChildElements() {
		keys := sec.ChildElements()
		if len(keys) == 0 && strings.TrimSpace(sec.Text()) != "" {
			return nil, &ParseError{
				Path:    name,
				Message: fmt.Sprintf("key %q is not inside a section", sec.Tag),
			}
		}
		for _, key := range keys {
			if len(key.ChildElements()) > 0 {
				return nil, &ParseError{
					Path:    name,
					Message: fmt.Sprintf("key %s/%s has nested elements", sec.Tag, key.Tag),
				}
			}
			doc.Set(sec.Tag, key.Tag, strings.TrimSpace(key.Text()))
		}
	}
	return doc, nil
}
