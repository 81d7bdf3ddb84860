package github

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
	"golang.org/x/oauth2"
)

var _ ports.VCSClient = (*Client)(nil)

// Narrow slices of go-github, kept as interfaces so tests can mock them.
type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type Client struct {
	issuesService IssuesService
	repoService   RepositoriesService
	usersService  UsersService
	owner         string
	repo          string
}

func NewClient(owner, repo, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{
		issuesService: client.Issues,
		repoService:   client.Repositories,
		usersService:  client.Users,
		owner:         owner,
		repo:          repo,
	}
}

func NewClientWithServices(issues IssuesService, repos RepositoriesService, users UsersService, owner, repo string) *Client {
	return &Client{
		issuesService: issues,
		repoService:   repos,
		usersService:  users,
		owner:         owner,
		repo:          repo,
	}
}

// CreateIssue submits a drafted bug report.
func (c *Client) CreateIssue(ctx context.Context, draft *models.IssueDraft) (*models.Issue, error) {
	request := &github.IssueRequest{
		Title: github.String(draft.Title),
		Body:  github.String(draft.Body),
	}
	if len(draft.Labels) > 0 {
		request.Labels = &draft.Labels
	}
	if len(draft.Assignees) > 0 {
		request.Assignees = &draft.Assignees
	}

	issue, resp, err := c.issuesService.Create(ctx, c.owner, c.repo, request)
	if err != nil {
		return nil, c.classifyError(err, resp, domainErrors.ErrCreateIssue)
	}

	logger.Info(ctx, "issue created", "number", issue.GetNumber(), "url", issue.GetHTMLURL())
	return &models.Issue{
		ID:     int(issue.GetID()),
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
		Labels: draft.Labels,
		Author: issue.GetUser().GetLogin(),
		URL:    issue.GetHTMLURL(),
	}, nil
}

// GetTemplateContent fetches one file from the repository's
// .github/ISSUE_TEMPLATE directory, so reporters can use the canonical
// upstream form without a checkout.
func (c *Client) GetTemplateContent(ctx context.Context, name string) (string, error) {
	if !strings.Contains(name, ".") {
		name += ".md"
	}
	contentPath := path.Join(".github", "ISSUE_TEMPLATE", name)

	file, _, resp, err := c.repoService.GetContents(ctx, c.owner, c.repo, contentPath, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", domainErrors.ErrRemoteTemplateNotFound.WithError(err).WithContext("path", contentPath)
		}
		return "", c.classifyError(err, resp, domainErrors.ErrRemoteTemplateNotFound)
	}
	if file == nil {
		return "", domainErrors.ErrRemoteTemplateNotFound.WithContext("path", contentPath)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", domainErrors.NewAppError(domainErrors.TypeVCS, "failed to decode remote template", err)
	}
	return content, nil
}

// AuthenticatedUser returns the login behind the configured token.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.usersService.Get(ctx, "")
	if err != nil {
		return "", c.classifyError(err, resp, domainErrors.ErrGitHubTokenInvalid)
	}
	return user.GetLogin(), nil
}

// LatestReleaseTag returns the tag of the repository's latest release.
func (c *Client) LatestReleaseTag(ctx context.Context) (string, error) {
	release, resp, err := c.repoService.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return "", c.classifyError(err, resp, domainErrors.ErrRepositoryNotFound)
	}
	return release.GetTagName(), nil
}

// classifyError maps GitHub API failures onto the error taxonomy so the CLI
// can suggest a fix instead of dumping an HTTP status.
func (c *Client) classifyError(err error, resp *github.Response, fallback *domainErrors.AppError) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err)
		case http.StatusForbidden:
			if resp.Rate.Remaining == 0 {
				return domainErrors.ErrGitHubRateLimit.WithError(err)
			}
			return domainErrors.ErrGitHubInsufficientPerms.WithError(err)
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.WithError(err).
				WithContext("repository", c.owner+"/"+c.repo)
		}
	}
	return fallback.WithError(err)
}
