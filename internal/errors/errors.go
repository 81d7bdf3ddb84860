package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeTemplate      ErrorType = "TEMPLATE"
	TypeDevice        ErrorType = "DEVICE"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
	TypeUpdate        ErrorType = "UPDATE"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches derived errors against their sentinel: WithError and WithContext
// return copies, so identity alone is not enough for errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Template errors
var (
	ErrTemplateNotFound = NewAppError(TypeTemplate, "Issue template not found", nil).
				WithSuggestion("List available templates: zyxelmate template list")

	ErrTemplatesDirMissing = NewAppError(TypeTemplate, "Templates directory not found", nil).
				WithSuggestion("Scaffold the default templates: zyxelmate template init")

	ErrTemplateExists = NewAppError(TypeTemplate, "Template file already exists", nil).
				WithSuggestion("Use --force to overwrite existing templates")

	ErrTemplateInvalid = NewAppError(TypeTemplate, "Template failed structural checks", nil).
				WithSuggestion("Run: zyxelmate template lint <file> for details")

	ErrSectionNotFound = NewAppError(TypeTemplate, "Template has no such section heading", nil).
				WithSuggestion("Show the template sections: zyxelmate template show <name>")
)

// Device errors
var (
	ErrDeviceUnreachable = NewAppError(TypeDevice, "Cannot reach the access point over SSH", nil).
				WithSuggestion("Check host and port: zyxelmate config set-device --host <ip>\nVerify SSH is enabled on the device web UI (System > SSH)")

	ErrDeviceAuth = NewAppError(TypeDevice, "SSH authentication failed", nil).
			WithSuggestion("Verify username and password: zyxelmate config set-device --user admin\nThe password can also be set via ZYXELMATE_SSH_PASSWORD")

	ErrCommandTimeout = NewAppError(TypeDevice, "Device command timed out", nil).
				WithSuggestion("The device may be busy, try again or raise command_timeout_seconds in the config")

	ErrCommandFailed = NewAppError(TypeDevice, "Device command failed", nil)

	ErrNoSnapshot = NewAppError(TypeDevice, "No device snapshot available", nil).
			WithSuggestion("Run: zyxelmate status to poll the device first")
)

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "Gemini API key is missing", nil).
				WithSuggestion("Run: zyxelmate config set-ai-key <key>")

	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Configure a token: zyxelmate config set-github --token <token>\nOr export ZYXELMATE_GITHUB_TOKEN")

	ErrRepoNotConfigured = NewAppError(TypeConfiguration, "GitHub repository is not configured", nil).
				WithSuggestion("Set the target repo: zyxelmate config set-github --owner <owner> --repo <repo>")

	ErrPasswordMissing = NewAppError(TypeConfiguration, "Device SSH password is not configured", nil).
				WithSuggestion("Set it with: zyxelmate config set-device --password <pass>\nOr export ZYXELMATE_SSH_PASSWORD")

	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Initialize configuration: zyxelmate config init")
)

// VCS errors
var (
	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository owner/name and access permissions")

	ErrCreateIssue = NewAppError(TypeVCS, "failed to create issue", nil).
			WithSuggestion("Check your GitHub token has 'repo' permissions")

	ErrRemoteTemplateNotFound = NewAppError(TypeVCS, "remote issue template not found", nil).
					WithSuggestion("Verify .github/ISSUE_TEMPLATE exists in the configured repository")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen run: zyxelmate config set-github --token <token>")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs the 'repo' scope.\nRegenerate at: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrInvalidAIOutput = NewAppError(TypeAI, "invalid AI output format", nil).
				WithSuggestion("This is likely a temporary issue, please try again")

	ErrGeminiAPIKeyInvalid = NewAppError(TypeAI, "Gemini API key is invalid", nil).
				WithSuggestion("Get a valid API key at: https://aistudio.google.com/app/apikey\nThen run: zyxelmate config set-ai-key <key>")

	ErrGeminiQuotaExceeded = NewAppError(TypeAI, "Gemini API quota exceeded", nil).
				WithSuggestion("Wait for quota to reset or upgrade your Gemini plan")
)

// Update errors
var (
	ErrUpdateFailed = NewAppError(TypeUpdate, "Failed to check for updates", nil).
		WithSuggestion("See releases at: https://github.com/ha-zyxel/ZyxelMate/releases")
)

// Internal errors
var (
	ErrManifestNotFound = NewAppError(TypeInternal, "ha_zyxel manifest.json not found", nil).
				WithSuggestion("Point zyxelmate at your Home Assistant config dir: zyxelmate config set-device --hass-config <path>")

	ErrCacheCorrupt = NewAppError(TypeInternal, "Cache entry could not be decoded", nil).
			WithSuggestion("Remove the cache dir: rm -rf ~/.zyxelmate/cache")
)
