package template

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// fence is the front matter delimiter GitHub expects at the very start of a
// markdown issue template.
const fence = "---\n"

var boldHeading = regexp.MustCompile(`^\*\*(.+)\*\*$`)

// Parse decodes a markdown issue template: YAML front matter plus a body of
// bold-prompt sections. Parsing is as lenient as the platform it models: a
// missing fence or an undecodable header degrades the document to plain
// markdown instead of failing, the linter reports those states separately.
func Parse(content, filePath string) *models.IssueTemplate {
	t := &models.IssueTemplate{
		FilePath: filePath,
	}

	body := content
	if strings.HasPrefix(content, fence) {
		parts := strings.SplitN(content, fence, 3)
		if len(parts) >= 3 {
			t.HasFrontMatter = true
			if err := yaml.Unmarshal([]byte(parts[1]), t); err != nil {
				t.HeaderErr = err
			}
			body = parts[2]
		}
	}

	t.RawBody = strings.TrimSpace(body)
	t.Sections = splitSections(t.RawBody)

	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	return t
}

// splitSections cuts the body on whole-line **bold** headings. Prose before
// the first heading becomes a section with an empty heading.
func splitSections(body string) []models.Section {
	if body == "" {
		return nil
	}

	var sections []models.Section
	current := models.Section{}
	var prompt []string

	flush := func() {
		current.Prompt = strings.TrimSpace(strings.Join(prompt, "\n"))
		if current.Heading != "" || current.Prompt != "" {
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if m := boldHeading.FindStringSubmatch(trimmed); m != nil {
			flush()
			current = models.Section{Heading: strings.TrimSpace(m[1])}
			prompt = nil
			continue
		}
		prompt = append(prompt, line)
	}
	flush()

	return sections
}

// Render serializes the template back to its on-disk form. The canonical
// scaffolded documents round-trip byte for byte.
func Render(t *models.IssueTemplate) string {
	var b strings.Builder

	if t.HasFrontMatter {
		b.WriteString("---\n")
		writeHeaderField(&b, "name", t.Name)
		writeHeaderField(&b, "about", t.GetAbout())
		writeHeaderField(&b, "title", t.Title)
		writeHeaderList(&b, "labels", t.Labels)
		writeHeaderList(&b, "assignees", t.Assignees)
		b.WriteString("\n---\n\n")
	}

	b.WriteString(RenderBody(t.Sections))
	return b.String()
}

// RenderBody joins sections back into markdown, one blank line apart.
func RenderBody(sections []models.Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Heading != "" {
			b.WriteString("**" + s.Heading + "**\n")
		}
		b.WriteString(s.Prompt + "\n")
	}
	return b.String()
}

func writeHeaderField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(quoteHeaderValue(value))
	b.WriteString("\n")
}

// writeHeaderList writes the compact spellings GitHub's own generator uses:
// '' for empty, a bare scalar for one entry, a flow sequence otherwise.
func writeHeaderList(b *strings.Builder, key string, values models.StringList) {
	switch len(values) {
	case 0:
		writeHeaderField(b, key, "")
	case 1:
		writeHeaderField(b, key, values[0])
	default:
		b.WriteString(key)
		b.WriteString(": [")
		b.WriteString(strings.Join(values, ", "))
		b.WriteString("]\n")
	}
}

func quoteHeaderValue(value string) string {
	if value == "" {
		return "''"
	}
	if strings.Contains(value, ": ") || strings.ContainsAny(value[:1], "[{&*#?|>%@`\"'-") {
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	}
	return value
}
