// Package manifest reads a YAML description of sections and builds the
// lists for them. Pages listed under a section are handed out one at a
// time through Pager, which makes a manifest usable as a paging backend
// for demos and tests.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/drake/gridsource/source"
)

// Defaults used when a section leaves a field out.
const (
	DefaultCell   = "Cell"
	DefaultHeader = "Header"
	DefaultFooter = "Footer"
)

// ErrNoSections is returned for a manifest without sections.
var ErrNoSections = errors.New("manifest has no sections")

// Manifest is the decoded YAML document.
type Manifest struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Section describes one list.
type Section struct {
	Cell    string        `yaml:"cell"`
	Header  *Decoration   `yaml:"header"`
	Footer  *Decoration   `yaml:"footer"`
	Items   []any         `yaml:"items"`
	Static  []StaticEntry `yaml:"static"`
	Count   *int          `yaml:"count"`
	Loading string        `yaml:"loading"`
	Pages   [][]any       `yaml:"pages"`
}

// StaticEntry is one preset (identifier, item) row.
type StaticEntry struct {
	ID   string `yaml:"id"`
	Item any    `yaml:"item"`
}

// Decoration is a header or footer. In YAML it may be written as plain
// text or as a mapping with id and item.
type Decoration struct {
	ID   string
	Item any
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Decoration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Item = node.Value
		return nil
	}
	var raw struct {
		ID   string `yaml:"id"`
		Item any    `yaml:"item"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	d.ID = raw.ID
	d.Item = raw.Item
	return nil
}

// Decode reads a manifest from r.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks the manifest for values the lists cannot represent.
func (m *Manifest) Validate() error {
	if len(m.Sections) == 0 {
		return ErrNoSections
	}
	for i, s := range m.Sections {
		if s.Count != nil && *s.Count < 0 {
			return fmt.Errorf("section %d: count must not be negative", i+1)
		}
		if len(s.Pages) > 0 && s.Loading == "" {
			return fmt.Errorf("section %d: pages need a loading identifier", i+1)
		}
	}
	return nil
}

// Config returns the list configuration for section s.
func (s Section) Config() source.ListConfig {
	cfg := source.ListConfig{
		Items:                 s.Items,
		NumberOfItems:         s.Count,
		CellIdentifier:        s.Cell,
		LoadingMoreIdentifier: s.Loading,
		Header:                s.Header.entry(DefaultHeader),
		Footer:                s.Footer.entry(DefaultFooter),
	}
	if cfg.CellIdentifier == "" {
		cfg.CellIdentifier = DefaultCell
	}
	for _, e := range s.Static {
		id := e.ID
		if id == "" {
			id = cfg.CellIdentifier
		}
		cfg.StaticItems = append(cfg.StaticItems, source.Entry{Identifier: id, Item: e.Item})
	}
	return cfg
}

func (d *Decoration) entry(defaultID string) *source.Entry {
	if d == nil {
		return nil
	}
	id := d.ID
	if id == "" {
		id = defaultID
	}
	return &source.Entry{Identifier: id, Item: d.Item}
}

// Lists builds one list per section.
func (m *Manifest) Lists() []*source.List {
	lists := make([]*source.List, len(m.Sections))
	for i, s := range m.Sections {
		lists[i] = source.NewList(s.Config())
	}
	return lists
}

// Grouped builds a composite source over every section.
func (m *Manifest) Grouped() *source.Grouped {
	return source.NewGrouped(m.Lists()...)
}

// Pager hands out the pages of each section in order.
type Pager struct {
	pages [][][]any
	next  []int
}

// Pager returns a pager over the manifest's pages.
func (m *Manifest) Pager() *Pager {
	p := &Pager{
		pages: make([][][]any, len(m.Sections)),
		next:  make([]int, len(m.Sections)),
	}
	for i, s := range m.Sections {
		p.pages[i] = s.Pages
	}
	return p
}

// LoadMore returns the next page of section (0-based) and whether it was
// the last one. Pages are handed out in order, so loaded is not consulted.
func (p *Pager) LoadMore(section, loaded int) ([]any, bool, error) {
	if section < 0 || section >= len(p.pages) {
		return nil, false, &source.RangeError{Axis: source.AxisSection, Index: section, Count: len(p.pages)}
	}
	pages := p.pages[section]
	i := p.next[section]
	if i >= len(pages) {
		return nil, true, nil
	}
	p.next[section]++
	return pages[i], i == len(pages)-1, nil
}
