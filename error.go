// FILE: lixenwraith/siteconfig/error.go
package siteconfig

import (
	"errors"
	"fmt"
)

// Errors returned by loading, resolution and queries.
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrRead indicates the configuration file exists but could not be read.
	ErrRead = errors.New("config file unreadable")

	// ErrUnsupportedFormat indicates the file extension is neither .ini nor .xml.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrParse indicates a malformed or non-two-level document.
	ErrParse = errors.New("config parse failed")

	// ErrEmptyConfig indicates the document has no sections.
	ErrEmptyConfig = errors.New("no configuration sections defined")

	// ErrUnknownSection indicates a query for a section that is not present.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownKey indicates a query for a key that is not present in its section.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUninitialized indicates a query against a config that was never built.
	ErrUninitialized = errors.New("config not initialized")

	// ErrUnresolvedReference indicates a {TOKEN} with no value in scope.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrAlreadyDefined indicates a constant redefinition with a different value.
	ErrAlreadyDefined = errors.New("constant already defined")

	// ErrInvalidExportFormat indicates an unknown export format name.
	ErrInvalidExportFormat = errors.New("invalid export format")
)

// ParseError describes a structural problem in a configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line is the line number, when known.
	Line int
	// Message describes the problem.
	Message string
	// Err is the underlying parser error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, msg)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, msg)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnresolvedRef identifies a reference token left without a value.
type UnresolvedRef struct {
	Section string
	Key     string
	Token   string
}

// String formats the reference as section/key: {token}.
func (u UnresolvedRef) String() string {
	return fmt.Sprintf("%s/%s: {%s}", u.Section, u.Key, u.Token)
}
