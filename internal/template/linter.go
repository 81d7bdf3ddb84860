package template

import (
	"fmt"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/hashicorp/go-multierror"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one structural problem found in a template document.
type Finding struct {
	Severity Severity
	Code     string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s", f.Severity, f.Code, f.Message)
}

// CanonicalBugSections is the heading set the project's bug-report form is
// built around. A template that declares the "Describe the bug" section gets
// held to the full set, in this order.
var CanonicalBugSections = []string{
	"Zyxel device model",
	"Integration version",
	"Describe the bug",
	"Expected behavior",
	"To Reproduce",
	"Screenshots",
}

// Lint runs the structural checks over a parsed template. The checks mirror
// what the hosting platform silently tolerates: a malformed header degrades
// rendering instead of failing it, so the linter is the only place those
// states surface.
func Lint(t *models.IssueTemplate) []Finding {
	var findings []Finding

	add := func(sev Severity, code, format string, args ...interface{}) {
		findings = append(findings, Finding{
			Severity: sev,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	switch {
	case !t.HasFrontMatter:
		add(SeverityError, "header-missing", "no YAML front matter fence, the platform will render the file as a plain issue body")
	case t.HeaderErr != nil:
		add(SeverityError, "header-syntax", "front matter does not parse: %v", t.HeaderErr)
	default:
		if strings.TrimSpace(t.Name) == "" {
			add(SeverityError, "name-missing", "header has no 'name', the template selector will show the file name")
		}
		if len(t.Labels) == 0 {
			add(SeverityError, "labels-empty", "header applies no labels, issues will arrive untagged")
		}
		if strings.TrimSpace(t.GetAbout()) == "" {
			add(SeverityWarning, "about-missing", "header has no 'about' description")
		}
	}

	headings := t.Headings()
	if len(t.Sections) == 0 {
		add(SeverityError, "body-empty", "template body has no sections")
	}

	seen := make(map[string]int)
	for _, h := range headings {
		seen[h]++
	}
	for _, h := range headings {
		if seen[h] > 1 {
			add(SeverityError, "section-duplicate", "section %q appears %d times", h, seen[h])
			seen[h] = 0 // report once
		}
	}

	if declaresCanonicalSet(headings) {
		for _, want := range CanonicalBugSections {
			if _, ok := seen[want]; !ok {
				add(SeverityError, "section-missing", "bug-report template is missing the %q section", want)
			}
		}
		if !inCanonicalOrder(headings) {
			add(SeverityWarning, "section-order", "bug-report sections are out of the canonical order")
		}
	}

	return findings
}

// HasErrors reports whether any finding is error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CollectErrors folds the error-severity findings of several files into one
// multierror, prefixed with the file they came from.
func CollectErrors(byFile map[string][]Finding) error {
	var result *multierror.Error
	for file, findings := range byFile {
		for _, f := range findings {
			if f.Severity == SeverityError {
				result = multierror.Append(result, fmt.Errorf("%s: [%s] %s", file, f.Code, f.Message))
			}
		}
	}
	return result.ErrorOrNil()
}

// declaresCanonicalSet reports whether the template looks like the project's
// bug-report form. 'Describe the bug' is the anchor: companion templates may
// reuse individual headings (the device-model prompt in particular) without
// being held to the whole set.
func declaresCanonicalSet(headings []string) bool {
	for _, h := range headings {
		if h == "Describe the bug" {
			return true
		}
	}
	return false
}

func inCanonicalOrder(headings []string) bool {
	rank := make(map[string]int, len(CanonicalBugSections))
	for i, h := range CanonicalBugSections {
		rank[h] = i
	}

	last := -1
	for _, h := range headings {
		r, ok := rank[h]
		if !ok {
			continue
		}
		if r < last {
			return false
		}
		last = r
	}
	return true
}
