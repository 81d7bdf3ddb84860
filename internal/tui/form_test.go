package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formTemplate() *models.IssueTemplate {
	return &models.IssueTemplate{
		Name: "Bug report / Unsupported device",
		Sections: []models.Section{
			{Heading: "Zyxel device model", Prompt: "e.g. NWA50AX"},
			{Heading: "Integration version", Prompt: "e.g. 1.4.2"},
			{Heading: "Describe the bug", Prompt: "A clear and concise description of what the bug is."},
			{Heading: "To Reproduce", Prompt: "Steps to reproduce the behavior."},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormFields(t *testing.T) {
	t.Run("should use single line inputs for model and version", func(t *testing.T) {
		m := NewForm(formTemplate(), nil)

		require.Len(t, m.fields, 4)
		assert.True(t, m.fields[0].short)
		assert.True(t, m.fields[1].short)
		assert.False(t, m.fields[2].short)
		assert.False(t, m.fields[3].short)
	})

	t.Run("should seed initial values", func(t *testing.T) {
		m := NewForm(formTemplate(), map[string]string{
			"Zyxel device model": "NWA50AX, firmware V6.29(ABYW.2)",
		})

		assert.Equal(t, "NWA50AX, firmware V6.29(ABYW.2)", m.fields[0].value())
	})
}

func TestFormNavigation(t *testing.T) {
	t.Run("should cycle focus with tab", func(t *testing.T) {
		var m tea.Model = NewForm(formTemplate(), nil)

		for i := 0; i < 4; i++ {
			m, _ = m.Update(keyMsg("tab"))
		}

		assert.Equal(t, 0, m.(Model).focus)
	})

	t.Run("should move back with shift tab", func(t *testing.T) {
		var m tea.Model = NewForm(formTemplate(), nil)

		m, _ = m.Update(keyMsg("shift+tab"))

		assert.Equal(t, 3, m.(Model).focus)
	})

	t.Run("should advance from a short field on enter", func(t *testing.T) {
		var m tea.Model = NewForm(formTemplate(), nil)

		m, _ = m.Update(keyMsg("enter"))

		assert.Equal(t, 1, m.(Model).focus)
	})
}

func TestFormSubmission(t *testing.T) {
	t.Run("should collect typed values on submit", func(t *testing.T) {
		form := NewForm(formTemplate(), nil)
		_ = form.Init()
		var m tea.Model = form

		for _, r := range "NWA50AX" {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
		m, _ = m.Update(keyMsg("ctrl+s"))

		final := m.(Model)
		assert.True(t, final.Submitted())
		assert.Equal(t, "NWA50AX", final.Values()["Zyxel device model"])
	})

	t.Run("should omit empty fields from values", func(t *testing.T) {
		m := NewForm(formTemplate(), map[string]string{"Describe the bug": "wifi drops"})

		values := m.Values()

		assert.Equal(t, map[string]string{"Describe the bug": "wifi drops"}, values)
	})

	t.Run("should not submit on escape", func(t *testing.T) {
		var m tea.Model = NewForm(formTemplate(), nil)

		m, _ = m.Update(keyMsg("esc"))

		assert.False(t, m.(Model).Submitted())
	})
}
