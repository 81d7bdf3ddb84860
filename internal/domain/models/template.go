package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// IssueTemplate is one .github/ISSUE_TEMPLATE document: a YAML front matter
// header plus an ordered list of bold-prompt sections.
type IssueTemplate struct {
	Name        string     `yaml:"name"`
	About       string     `yaml:"about,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Title       string     `yaml:"title"`
	Labels      StringList `yaml:"labels"`
	Assignees   StringList `yaml:"assignees,omitempty"`

	// Body state, filled by the parser
	Sections []Section `yaml:"-"`
	RawBody  string    `yaml:"-"`

	// Parse facts, consumed by the linter. A document that is missing the
	// front matter fence (or whose header does not decode) still loads,
	// the same way GitHub falls back to rendering it as plain markdown.
	HasFrontMatter bool  `yaml:"-"`
	HeaderErr      error `yaml:"-"`

	FilePath string `yaml:"-"`
}

// Section is one prompt of the template body: a whole-line **Heading**
// followed by its placeholder prose. The prose before the first heading, if
// any, becomes a section with an empty heading.
type Section struct {
	Heading string
	Prompt  string
}

// GetAbout returns the template description (uses 'description' or 'about')
func (t *IssueTemplate) GetAbout() string {
	if t.Description != "" {
		return t.Description
	}
	return t.About
}

// Headings returns the section headings in document order, skipping the
// unnamed preamble.
func (t *IssueTemplate) Headings() []string {
	headings := make([]string, 0, len(t.Sections))
	for _, s := range t.Sections {
		if s.Heading != "" {
			headings = append(headings, s.Heading)
		}
	}
	return headings
}

// FindSection looks up a section by its exact heading.
func (t *IssueTemplate) FindSection(heading string) (*Section, bool) {
	for i := range t.Sections {
		if t.Sections[i].Heading == heading {
			return &t.Sections[i], true
		}
	}
	return nil, false
}

type TemplateMetadata struct {
	Name     string
	About    string
	FilePath string
}

// StringList accepts the header spellings GitHub allows for labels and
// assignees: a YAML sequence, a single scalar, or a comma-separated scalar.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*s = splitAndClean(strings.Join(items, ","))
		return nil
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*s = splitAndClean(raw)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into a string list", value.Tag)
	}
}

func splitAndClean(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			items = append(items, v)
		}
	}
	return items
}
