// FILE: lixenwraith/siteconfig/resolver.go
package siteconfig

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// UnresolvedPolicy controls what happens to a {TOKEN} with no value in scope.
type UnresolvedPolicy int

const (
	// UnresolvedKeep leaves the token as literal text and reports it
	UnresolvedKeep UnresolvedPolicy = iota
	// UnresolvedEmpty replaces the token with the empty string and reports it
	UnresolvedEmpty
	// UnresolvedError fails resolution with ErrUnresolvedReference
	UnresolvedError
)

// String returns the policy name.
func (p UnresolvedPolicy) String() string {
	switch p {
	case UnresolvedKeep:
		return "keep"
	case UnresolvedEmpty:
		return "empty"
	case UnresolvedError:
		return "error"
	default:
		return fmt.Sprintf("UnresolvedPolicy(%d)", int(p))
	}
}

// ParseUnresolvedPolicy converts a policy name ("keep", "empty", "error").
func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "":
		return UnresolvedKeep, nil
	case "empty":
		return UnresolvedEmpty, nil
	case "error":
		return UnresolvedError, nil
	default:
		return UnresolvedKeep, fmt.Errorf("unknown unresolved policy %q", s)
	}
}

// ResolveOptions configures a resolution pass.
type ResolveOptions struct {
	Unresolved UnresolvedPolicy
	Logger     *zap.Logger
}

// Report summarizes a resolution pass.
type Report struct {
	// Unresolved lists every reference left without a value, in document order.
	Unresolved []UnresolvedRef
}

// substitutionTable is the lookup grown during resolution. Entries are keyed
// by uppercase token and kept in insertion order.
type substitutionTable struct {
	entries map[string]string
	order   []string
}

func newSubstitutionTable() *substitutionTable {
	return &substitutionTable{entries: make(map[string]string)}
}

// setQualified registers SECTION/KEY. An existing entry is never overwritten.
func (t *substitutionTable) setQualified(token, value string) {
	if _, exists := t.entries[token]; exists {
		return
	}
	t.entries[token] = value
	t.order = append(t.order, token)
}

// setBare registers KEY, shadowing any earlier entry of the same name.
func (t *substitutionTable) setBare(token, value string) {
	if _, exists := t.entries[token]; !exists {
		t.order = append(t.order, token)
	}
	t.entries[token] = value
}

func (t *substitutionTable) get(token string) (string, bool) {
	v, ok := t.entries[token]
	return v, ok
}

// keys returns the tokens in the order they were first registered
func (t *substitutionTable) keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// scope is the lookup visible to a single value.
// Precedence: current section > table > special variables.
type scope struct {
	local   map[string]string
	table   *substitutionTable
	special map[string]string
}

func (s scope) lookup(token string) (string, bool) {
	upper := strings.ToUpper(token)
	if v, ok := s.local[upper]; ok {
		return v, true
	}
	if v, ok := s.table.get(upper); ok {
		return v, true
	}
	// Special variable names are reserved and matched exactly
	if v, ok := s.special[token]; ok {
		return v, true
	}
	return "", false
}

// Resolve substitutes references in every value of raw, walking sections and
// keys in document order. A value can only see values resolved before it plus
// the special variables. The returned report is never nil.
func Resolve(raw *Document, vars SpecialVars, opts ResolveOptions) (*Document, *Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &Report{}
	out := NewDocument()
	if raw == nil {
		return out, report, nil
	}

	table := newSubstitutionTable()
	special := vars.Map()

	for _, sec := range raw.Sections() {
		local := make(map[string]string, len(sec.Pairs))
		resolved := out.Section(sec.Name)
		sectionToken := strings.ToUpper(sec.Name)

		for _, p := range sec.Pairs {
			value, missing := substitute(prepareValue(p.Value), scope{local: local, table: table, special: special}, opts.Unresolved)

			for _, token := range missing {
				ref := UnresolvedRef{Section: sec.Name, Key: p.Key, Token: token}
				report.Unresolved = append(report.Unresolved, ref)
				logger.Warn("unresolved reference",
					zap.String("section", sec.Name),
					zap.String("key", p.Key),
					zap.String("token", token),
					zap.Stringer("policy", opts.Unresolved),
				)
				if opts.Unresolved == UnresolvedError {
					return nil, report, fmt.Errorf("%w: %s", ErrUnresolvedReference, ref)
				}
			}

			if value != "" {
				value = NormalizePath(value)
			}

			keyToken := strings.ToUpper(p.Key)
			table.setQualified(sectionToken+"/"+keyToken, value)
			table.setBare(keyToken, value)
			local[keyToken] = value
			resolved.Set(p.Key, value)
		}
	}

	logger.Debug("references resolved",
		zap.Int("sections", out.Len()),
		zap.Int("tokens", len(table.order)),
		zap.Int("unresolved", len(report.Unresolved)),
	)
	return out, report, nil
}

// prepareValue collapses separator runs and strips the separator after an
// opening brace, so "{/MAIN/ROOT}" and "{MAIN/ROOT}" are the same reference.
func prepareValue(value string) string {
	value = separatorRun.ReplaceAllString(value, "/")
	return strings.ReplaceAll(value, "{/", "{")
}

// substitute performs one non-recursive pass over in, replacing every {TOKEN}
// found in sc. Replacement text is never rescanned. It returns the tokens that
// had no value.
func substitute(in string, sc scope, policy UnresolvedPolicy) (string, []string) {
	if !strings.Contains(in, "{") {
		return in, nil
	}

	var out strings.Builder
	out.Grow(len(in))
	var missing []string

	for i := 0; i < len(in); {
		if in[i] != '{' {
			out.WriteByte(in[i])
			i++
			continue
		}

		end := strings.IndexByte(in[i+1:], '}')
		if end == -1 {
			// Unterminated, the rest is literal
			out.WriteString(in[i:])
			break
		}

		token := in[i+1 : i+1+end]
		if token == "" || strings.ContainsRune(token, '{') {
			// Not a reference at this brace; an inner one may still follow
			out.WriteByte('{')
			i++
			continue
		}

		if val, ok := sc.lookup(token); ok {
			out.WriteString(val)
		} else {
			missing = append(missing, token)
			if policy == UnresolvedKeep {
				out.WriteString(in[i : i+end+2])
			}
		}
		i += end + 2
	}

	return out.String(), missing
}
