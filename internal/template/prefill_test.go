package template

import (
	"net/url"
	"strings"
	"testing"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefill(t *testing.T) {
	t.Run("should replace placeholder prompts with collected values", func(t *testing.T) {
		tpl := Parse(bugReportDoc, "bug_report.md")

		draft := Prefill(tpl, map[string]string{
			"Zyxel device model":  "NWA50AX, firmware V7.10(ABYW.3), built 2025-06-29",
			"Integration version": "1.2.0",
		})

		assert.Contains(t, draft.Body, "**Zyxel device model**\nNWA50AX, firmware V7.10(ABYW.3), built 2025-06-29")
		assert.Contains(t, draft.Body, "**Integration version**\n1.2.0")
		// Untouched sections keep their prompts for the reporter.
		assert.Contains(t, draft.Body, "**Describe the bug**\nA clear and concise description of what the bug is.")
		assert.Equal(t, []string{"bug"}, draft.Labels)
	})

	t.Run("should ignore empty values and unknown headings", func(t *testing.T) {
		tpl := Parse(bugReportDoc, "bug_report.md")

		draft := Prefill(tpl, map[string]string{
			"Describe the bug": "   ",
			"No such section":  "ignored",
		})

		assert.Contains(t, draft.Body, "**Describe the bug**\nA clear and concise description of what the bug is.")
		assert.NotContains(t, draft.Body, "ignored")
	})

	t.Run("should preserve section order", func(t *testing.T) {
		tpl := Parse(bugReportDoc, "bug_report.md")

		draft := Prefill(tpl, map[string]string{"Screenshots": "none"})

		model := strings.Index(draft.Body, "**Zyxel device model**")
		shots := strings.Index(draft.Body, "**Screenshots**")
		require.Greater(t, shots, model)
		assert.True(t, strings.HasSuffix(strings.TrimRight(draft.Body, "\n"), "none"))
	})
}

func TestNewIssueURL(t *testing.T) {
	t.Run("should build the pre-filled new issue hand-off", func(t *testing.T) {
		tpl := Parse(bugReportDoc, "bug_report.md")
		tpl.Title = "NWA50AX stops reporting clients"
		draft := Prefill(tpl, nil)

		raw := NewIssueURL("ha-zyxel", "ha_zyxel", draft)
		assert.True(t, strings.HasPrefix(raw, "https://github.com/ha-zyxel/ha_zyxel/issues/new?"))

		u, err := url.Parse(raw)
		require.NoError(t, err)
		q := u.Query()
		assert.Equal(t, "NWA50AX stops reporting clients", q.Get("title"))
		assert.Equal(t, "bug", q.Get("labels"))
		assert.Contains(t, q.Get("body"), "**Describe the bug**")
	})

	t.Run("should omit empty title and labels", func(t *testing.T) {
		raw := NewIssueURL("o", "r", &models.IssueDraft{Body: "b"})
		u, err := url.Parse(raw)
		require.NoError(t, err)
		q := u.Query()
		_, hasTitle := q["title"]
		_, hasLabels := q["labels"]
		assert.False(t, hasTitle)
		assert.False(t, hasLabels)
	})
}
