// FILE: lixenwraith/siteconfig/document.go
package siteconfig

// Pair is a single key/value entry of a section.
type Pair struct {
	Key   string
	Value string
}

// Section is a named, ordered group of key/value pairs.
type Section struct {
	Name  string
	Pairs []Pair
}

// Get returns the value stored under key.
func (s *Section) Get(key string) (string, bool) {
	for _, p := range s.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Set stores value under key. An existing key keeps its position.
func (s *Section) Set(key, value string) {
	for i := range s.Pairs {
		if s.Pairs[i].Key == key {
			s.Pairs[i].Value = value
			return
		}
	}
	s.Pairs = append(s.Pairs, Pair{Key: key, Value: value})
}

// Keys returns the section's keys in document order.
func (s *Section) Keys() []string {
	keys := make([]string, len(s.Pairs))
	for i, p := range s.Pairs {
		keys[i] = p.Key
	}
	return keys
}

// Map returns a copy of the section as a plain map.
func (s *Section) Map() map[string]string {
	m := make(map[string]string, len(s.Pairs))
	for _, p := range s.Pairs {
		m[p.Key] = p.Value
	}
	return m
}

// clone returns a deep copy of the section
func (s *Section) clone() *Section {
	pairs := make([]Pair, len(s.Pairs))
	copy(pairs, s.Pairs)
	return &Section{Name: s.Name, Pairs: pairs}
}

// Document is an ordered two-level mapping: section name to ordered key/value pairs.
// The same shape holds both raw (as loaded) and resolved values.
type Document struct {
	sections []*Section
	index    map[string]int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// Section returns the named section, creating it at the end of the document if absent.
func (d *Document) Section(name string) *Section {
	if i, ok := d.index[name]; ok {
		return d.sections[i]
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	s := &Section{Name: name}
	d.index[name] = len(d.sections)
	d.sections = append(d.sections, s)
	return s
}

// Lookup returns the named section if present.
func (d *Document) Lookup(name string) (*Section, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.sections[i], true
}

// Set stores a value, creating the section if needed.
func (d *Document) Set(section, key, value string) {
	d.Section(section).Set(key, value)
}

// Sections returns the sections in document order.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Names returns the section names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.sections))
	for i, s := range d.sections {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}

// Map returns a copy of the document as nested plain maps.
func (d *Document) Map() map[string]map[string]string {
	m := make(map[string]map[string]string, len(d.sections))
	for _, s := range d.sections {
		m[s.Name] = s.Map()
	}
	return m
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		sections: make([]*Section, len(d.sections)),
		index:    make(map[string]int, len(d.index)),
	}
	for i, s := range d.sections {
		c.sections[i] = s.clone()
		c.index[s.Name] = i
	}
	return c
}
