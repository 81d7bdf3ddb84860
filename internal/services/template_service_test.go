package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `---
name: Bug report / Unsupported device
about: Report a problem with the integration
title: ''
labels: bug
assignees: ''

---

**Describe the bug**
A clear and concise description of what the bug is.
`

func writeTemplate(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, ".github", "ISSUE_TEMPLATE")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTemplateServiceList(t *testing.T) {
	t.Run("should return empty list when directory is missing", func(t *testing.T) {
		svc := NewTemplateService(WithWorkDir(t.TempDir()))

		templates, err := svc.ListTemplates(context.Background())

		require.NoError(t, err)
		assert.Empty(t, templates)
	})

	t.Run("should list template metadata", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		templates, err := svc.ListTemplates(context.Background())

		require.NoError(t, err)
		require.Len(t, templates, 1)
		assert.Equal(t, "Bug report / Unsupported device", templates[0].Name)
		assert.Equal(t, "Report a problem with the integration", templates[0].About)
		assert.Equal(t, "bug_report.md", templates[0].FilePath)
	})

	t.Run("should skip non markdown files", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		writeTemplate(t, root, "config.yml", "blank_issues_enabled: false")
		svc := NewTemplateService(WithWorkDir(root))

		templates, err := svc.ListTemplates(context.Background())

		require.NoError(t, err)
		assert.Len(t, templates, 1)
	})
}

func TestTemplateServiceGetByName(t *testing.T) {
	t.Run("should resolve by file name without extension", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		tpl, err := svc.GetTemplateByName(context.Background(), "bug_report")

		require.NoError(t, err)
		assert.Equal(t, "Bug report / Unsupported device", tpl.Name)
	})

	t.Run("should resolve by display name case insensitively", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		tpl, err := svc.GetTemplateByName(context.Background(), "bug report / unsupported device")

		require.NoError(t, err)
		assert.Equal(t, "Bug report / Unsupported device", tpl.Name)
	})

	t.Run("should resolve an explicit path", func(t *testing.T) {
		root := t.TempDir()
		path := writeTemplate(t, root, "bug_report.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		tpl, err := svc.GetTemplateByName(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "Bug report / Unsupported device", tpl.Name)
	})

	t.Run("should return typed error when not found", func(t *testing.T) {
		svc := NewTemplateService(WithWorkDir(t.TempDir()))

		_, err := svc.GetTemplateByName(context.Background(), "nope")

		require.Error(t, err)
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domainErrors.TypeTemplate, appErr.Type)
	})
}

func TestTemplateServiceSelect(t *testing.T) {
	t.Run("should default to the templates directory", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		writeTemplate(t, root, "feature_request.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		files, err := svc.SelectTemplates(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("should expand doublestar patterns", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		files, err := svc.SelectTemplates(context.Background(), []string{"**/bug_*.md"})

		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Contains(t, files[0], "bug_report.md")
	})

	t.Run("should deduplicate overlapping patterns", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", sampleTemplate)
		svc := NewTemplateService(WithWorkDir(root))

		files, err := svc.SelectTemplates(context.Background(),
			[]string{"**/*.md", ".github/ISSUE_TEMPLATE/*.md"})

		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("should error when nothing matches", func(t *testing.T) {
		svc := NewTemplateService(WithWorkDir(t.TempDir()))

		_, err := svc.SelectTemplates(context.Background(), nil)

		require.Error(t, err)
	})
}

func TestTemplateServiceInitialize(t *testing.T) {
	t.Run("should scaffold the default templates", func(t *testing.T) {
		root := t.TempDir()
		svc := NewTemplateService(WithWorkDir(root))

		created, skipped, err := svc.InitializeTemplates(context.Background(), false)

		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Contains(t, created, "bug_report.md")
		assert.Contains(t, created, "unsupported_device.md")
		assert.Contains(t, created, "feature_request.md")

		tpl, err := svc.GetTemplateByName(context.Background(), "bug_report")
		require.NoError(t, err)
		assert.Equal(t, "Bug report / Unsupported device", tpl.Name)
		assert.Equal(t, []string{"bug"}, []string(tpl.Labels))
	})

	t.Run("should skip existing files without force", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", "custom content")
		svc := NewTemplateService(WithWorkDir(root))

		created, skipped, err := svc.InitializeTemplates(context.Background(), false)

		require.NoError(t, err)
		assert.Contains(t, skipped, "bug_report.md")
		assert.NotContains(t, created, "bug_report.md")

		data, err := os.ReadFile(filepath.Join(root, ".github", "ISSUE_TEMPLATE", "bug_report.md"))
		require.NoError(t, err)
		assert.Equal(t, "custom content", string(data))
	})

	t.Run("should overwrite with force", func(t *testing.T) {
		root := t.TempDir()
		writeTemplate(t, root, "bug_report.md", "custom content")
		svc := NewTemplateService(WithWorkDir(root))

		created, skipped, err := svc.InitializeTemplates(context.Background(), true)

		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Contains(t, created, "bug_report.md")
	})
}
