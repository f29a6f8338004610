// Package schema defines the declarative level hierarchy used to structure
// extracted document text, and validates it before any text is processed.
package schema

import (
	"fmt"
	"regexp"
)

// Level describes one level of the document hierarchy (e.g. book, chapter,
// article): how lines opening it are recognized and how its content is named
// in the output.
type Level struct {
	// Name uniquely identifies the level within the schema.
	Name string `json:"name" yaml:"name"`

	// Pattern is a regular expression matched against a whole line. Its
	// first capture group becomes the node title; any further groups are
	// joined and seed the node description.
	Pattern string `json:"pattern" yaml:"pattern"`

	// TitleField names the output key for the captured title.
	TitleField string `json:"title_field" yaml:"title_field"`

	// DescriptionField names the output key for accumulated free text.
	// Empty means the schema-wide default is used.
	DescriptionField string `json:"description_field,omitempty" yaml:"description_field,omitempty"`

	// ParagraphField, when set, marks this level as paragraph-collecting:
	// free text after a blank line is grouped into discrete paragraph
	// entries under this key instead of the description.
	ParagraphField string `json:"paragraph_field,omitempty" yaml:"paragraph_field,omitempty"`

	// SectionsField names the output key under which child nodes nest.
	// Empty for leaf levels; the schema-wide default applies if children
	// appear anyway.
	SectionsField string `json:"sections_field,omitempty" yaml:"sections_field,omitempty"`

	// Parent names the level this one nests under. Empty means the level
	// attaches directly under the document root.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	// Leaf marks levels that never have nested child levels.
	Leaf bool `json:"leaf,omitempty" yaml:"leaf,omitempty"`
}

// Schema is a validated, immutable description of a document hierarchy.
// Levels are kept in declaration order; when more than one pattern matches a
// line, the first declared level wins. A Schema is safe for concurrent use
// once constructed.
type Schema struct {
	rootName         string
	sectionsField    string
	descriptionField string
	levels           []Level
	compiled         []*regexp.Regexp
	index            map[string]int
}

// New validates the given levels and returns an immutable Schema. The level
// order is significant: it is the classifier tie-break order. Returns a
// *ConfigError describing the first violation found.
func New(rootName, sectionsField, descriptionField string, levels []Level) (*Schema, error) {
	if rootName == "" {
		return nil, &ConfigError{Reason: "root name cannot be empty"}
	}
	if sectionsField == "" {
		sectionsField = "sections"
	}
	if descriptionField == "" {
		descriptionField = "description"
	}
	if len(levels) == 0 {
		return nil, &ConfigError{Reason: "at least one level is required"}
	}

	s := &Schema{
		rootName:         rootName,
		sectionsField:    sectionsField,
		descriptionField: descriptionField,
		levels:           make([]Level, len(levels)),
		compiled:         make([]*regexp.Regexp, len(levels)),
		index:            make(map[string]int, len(levels)),
	}
	copy(s.levels, levels)

	for i, lv := range s.levels {
		if lv.Name == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("level %d has no name", i)}
		}
		if _, dup := s.index[lv.Name]; dup {
			return nil, &ConfigError{Level: lv.Name, Reason: "duplicate level name"}
		}
		s.index[lv.Name] = i
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// RootName returns the name of the synthetic top-level container.
func (s *Schema) RootName() string { return s.rootName }

// SectionsField returns the default output key for child nodes.
func (s *Schema) SectionsField() string { return s.sectionsField }

// DescriptionField returns the default output key for free text.
func (s *Schema) DescriptionField() string { return s.descriptionField }

// Len returns the number of declared levels.
func (s *Schema) Len() int { return len(s.levels) }

// At returns the i-th declared level.
func (s *Schema) At(i int) Level { return s.levels[i] }

// Regexp returns the compiled, whole-line-anchored pattern of the i-th level.
func (s *Schema) Regexp(i int) *regexp.Regexp { return s.compiled[i] }

// Lookup returns the level with the given name.
func (s *Schema) Lookup(name string) (Level, bool) {
	i, ok := s.index[name]
	if !ok {
		return Level{}, false
	}
	return s.levels[i], true
}
