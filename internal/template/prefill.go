package template

import (
	"net/url"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// Prefill walks the template sections in order and builds the issue draft the
// platform would show a reporter: sections with a value get the value,
// sections without one keep their placeholder prompt for the human to
// complete. Unknown keys in values are ignored.
func Prefill(t *models.IssueTemplate, values map[string]string) *models.IssueDraft {
	sections := make([]models.Section, 0, len(t.Sections))
	for _, s := range t.Sections {
		filled := s
		if v, ok := values[s.Heading]; ok && strings.TrimSpace(v) != "" {
			filled.Prompt = strings.TrimSpace(v)
		}
		sections = append(sections, filled)
	}

	return &models.IssueDraft{
		Title:     t.Title,
		Body:      RenderBody(sections),
		Labels:    t.Labels,
		Assignees: t.Assignees,
	}
}

// NewIssueURL builds the platform's pre-filled "new issue" hand-off URL for
// the draft. Assignees are not carried, the web form only honors them for
// collaborators.
func NewIssueURL(owner, repo string, draft *models.IssueDraft) string {
	q := url.Values{}
	if draft.Title != "" {
		q.Set("title", draft.Title)
	}
	if len(draft.Labels) > 0 {
		q.Set("labels", strings.Join(draft.Labels, ","))
	}
	q.Set("body", draft.Body)

	return "https://github.com/" + owner + "/" + repo + "/issues/new?" + q.Encode()
}
