package i18n

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var embeddedLocales embed.FS

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle. English lives inline as the
// default catalog, the other languages ship embedded (active.es.toml,
// active.fr.toml). A non-empty localesDir loads catalogs from disk instead.
func NewTranslations(defaultLang, localesDir string) (*Translations, error) {
	if defaultLang == "" {
		return nil, fmt.Errorf("language cannot be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesDir == "" {
		entries, err := embeddedLocales.ReadDir("locales")
		if err != nil {
			return nil, fmt.Errorf("error reading embedded locales: %w", err)
		}
		for _, entry := range entries {
			data, err := embeddedLocales.ReadFile("locales/" + entry.Name())
			if err != nil {
				return nil, fmt.Errorf("error reading embedded locale %s: %w", entry.Name(), err)
			}
			if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
				return nil, fmt.Errorf("error loading embedded locale %s: %w", entry.Name(), err)
			}
		}
	} else {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Diagnose your Zyxel access point and file ready-made bug reports"

	[app_description]
	other = "Companion CLI for the ha_zyxel Home Assistant integration. It polls the access point over SSH (status, wireless clients, radios, port stats), toggles the guest SSID, reboots the device, keeps the GitHub issue templates healthy and files pre-filled bug reports."

	[help_command_usage]
	other = "Show help"

	[operation_cancelled]
	other = "Operation cancelled"

	[template_command_usage]
	other = "Manage the GitHub issue templates"

	[template_list_usage]
	other = "List the issue templates in .github/ISSUE_TEMPLATE"

	[template_list_header]
	other = "Available issue templates"

	[template_list_empty]
	other = "No issue templates found.\nScaffold the defaults with: zyxelmate template init"

	[template_show_usage]
	other = "Show a template header and its sections"

	[template_name_required]
	other = "Template name is required.\nUsage: zyxelmate template {{.Command}} <name>"

	[template_lint_usage]
	other = "Check templates for structural problems"

	[template_lint_clean]
	one = "{{.Count}} template is clean"
	other = "{{.Count}} templates are clean"

	[template_lint_failed]
	other = "Lint found problems"

	[template_lint_problems]
	one = "{{.Count}} problem found"
	other = "{{.Count}} problems found"

	[template_lint_watching]
	other = "Watching templates for changes (ctrl+c to stop)..."

	[template_lint_watch_flag]
	other = "Re-lint whenever a watched template changes"

	[template_init_usage]
	other = "Scaffold the default issue templates"

	[template_init_created]
	other = "Created {{.File}}"

	[template_init_skipped]
	other = "Skipped {{.File}} (already exists, use --force to overwrite)"

	[template_init_summary]
	other = "{{.Created}} created, {{.Skipped}} skipped"

	[template_render_usage]
	other = "Render a template as a pre-filled issue form"

	[template_sections_header]
	other = "Sections"

	[report_command_usage]
	other = "File a pre-filled bug report on GitHub"

	[report_collecting]
	other = "Collecting diagnostics from {{.Host}}..."

	[report_device_skipped]
	other = "Skipping device diagnostics (--no-device)"

	[report_drafting]
	other = "Drafting the bug description with {{.Model}}..."

	[report_preview_title]
	other = "Issue preview"

	[report_confirm_prompt]
	other = "Create this issue in {{.Repo}}? (y/N): "

	[report_created]
	other = "Issue created: {{.URL}}"

	[report_dry_run_notice]
	other = "Dry run: the issue was not created"

	[report_url_notice]
	other = "Open this URL to submit the pre-filled report:"

	[report_interactive_hint]
	other = "Fill the remaining sections, ctrl+s to submit, esc to cancel"

	[status_command_usage]
	other = "Show a status snapshot of the access point"

	[status_polling]
	other = "Polling {{.Host}}..."

	[status_watch_notice]
	other = "Refreshing every {{.Seconds}}s (ctrl+c to stop)"

	[status_cached_notice]
	other = "Showing cached snapshot from {{.Age}} ago"

	[clients_command_usage]
	other = "List connected wireless clients"

	[clients_none]
	other = "No wireless clients connected"

	[clients_connected]
	one = "{{.Count}} client connected"
	other = "{{.Count}} clients connected"

	[reboot_command_usage]
	other = "Reboot the access point"

	[reboot_confirm_prompt]
	other = "Reboot {{.Host}}? All wireless clients will disconnect. (y/N): "

	[reboot_sent]
	other = "Reboot command sent, the device should be back in a couple of minutes"

	[guest_command_usage]
	other = "Turn the guest SSID on or off"

	[guest_invalid_state]
	other = "State must be 'on' or 'off', got '{{.State}}'"

	[guest_enabled]
	other = "Guest SSID enabled"

	[guest_disabled]
	other = "Guest SSID disabled"

	[config_command_usage]
	other = "Manage zyxelmate configuration"

	[config_init_usage]
	other = "Interactive first-time setup"

	[config_show_usage]
	other = "Show the current configuration"

	[config_set_lang_usage]
	other = "Change the CLI language"

	[config_set_device_usage]
	other = "Configure the access point connection"

	[config_set_github_usage]
	other = "Configure the GitHub repository and token"

	[config_set_ai_key_usage]
	other = "Set the Gemini API key"

	[config_lang_updated]
	other = "Language changed to {{.Lang}}"

	[config_invalid_language]
	other = "Unsupported language: {{.Lang}}. Available: en, es, fr"

	[config_device_updated]
	other = "Device connection updated ({{.Host}}:{{.Port}})"

	[config_github_updated]
	other = "GitHub repository set to {{.Owner}}/{{.Repo}}"

	[config_ai_key_updated]
	other = "Gemini API key saved"

	[doctor_command_usage]
	other = "Check that zyxelmate is ready to use"

	[doctor_running]
	other = "Running health checks..."

	[doctor_all_good]
	other = "Everything looks good! Ready to report bugs like a pro"

	[doctor_problems]
	one = "{{.Count}} check needs attention"
	other = "{{.Count}} checks need attention"

	[doctor_has_warnings]
	other = "Working, but some optional pieces are missing"

	[doctor_summary]
	other = "Summary"

	[doctor_check_config]
	other = "Configuration file"

	[doctor_check_device]
	other = "Device reachability"

	[doctor_check_ssh_password]
	other = "SSH credentials"

	[doctor_check_manifest]
	other = "Integration manifest"

	[doctor_check_github]
	other = "GitHub repository and token"

	[doctor_check_gemini]
	other = "Gemini API key"

	[doctor_check_templates]
	other = "Issue templates"

	[config_current]
	other = "Current configuration"

	[config_not_set]
	other = "not set"

	[config_from_env]
	other = "set via {{.Env}}"

	[config_invalid_api_key]
	other = "That API key looks too short to be valid"

	[config_invalid_model]
	other = "Model '{{.Model}}' is not supported. Pick one of: {{.Supported}}"

	[init_welcome]
	other = "Let's get zyxelmate set up. Press Enter to keep the value in brackets."

	[init_prompt_language]
	other = "Language (en/es/fr) [{{.Default}}]: "

	[init_prompt_host]
	other = "Access point address [{{.Default}}]: "

	[init_prompt_username]
	other = "SSH username [{{.Default}}]: "

	[init_prompt_password]
	other = "SSH password (empty uses {{.Env}}): "

	[init_prompt_repo]
	other = "GitHub repository (owner/repo) [{{.Default}}]: "

	[init_prompt_token]
	other = "GitHub token (empty uses {{.Env}}): "

	[init_prompt_gemini]
	other = "Gemini API key (empty uses {{.Env}}): "

	[init_invalid_repo]
	other = "Expected owner/repo, got '{{.Value}}'"

	[init_done]
	other = "Setup complete. Configuration saved to {{.Path}}"

	[update_command_usage]
	other = "Check for a new zyxelmate version"

	[update_checking]
	other = "Checking for updates..."

	[update_available]
	other = "New version available: {{.Latest}} (current {{.Current}})"

	[update_command]
	other = "Run {{.Command}} to upgrade"

	[update_up_to_date]
	other = "You're on the latest version ({{.Version}})"

	[update_success]
	other = "Updated to {{.Version}}"

	[update_manual_install]
	other = "This build was not installed with the Go toolchain.\nDownload the latest release from {{.URL}}"

	[update_go_not_found]
	other = "The Go toolchain was not found in PATH"

	[update_error]
	other = "Update failed"

	[factory_already_registered]
	other = "Command factory '{{.FactoryName}}' is already registered"

	[ui_error_try_suggestion]
	other = "Try: "

	[ui_token_usage]
	other = "Token usage"

	[ui_input]
	other = "input"

	[ui_output]
	other = "output"

	[ui_total]
	other = "total"

	[ui_duration]
	other = "duration"

	[completion_command_usage]
	other = "Generate shell completion scripts"

	[completion_unsupported_shell]
	other = "Unsupported shell: {{.Shell}}. Available: bash, zsh, fish"

	[completion_bash_usage]
	other = "Print the bash completion script"

	[completion_zsh_usage]
	other = "Print the zsh completion script"

	[completion_fish_usage]
	other = "Print the fish completion script"

	[completion_install_usage]
	other = "Append the completion hook to your shell config"

	[completion_already_installed]
	other = "Completion is already installed in {{.File}}"

	[completion_installed]
	other = "Completion installed in {{.File}}"

	[completion_restart_shell]
	other = "Restart your shell or run:"

	[label_firmware]
	other = "Firmware"

	[label_build_date]
	other = "Build date"

	[label_uptime]
	other = "Uptime"

	[label_cpu]
	other = "CPU"

	[label_memory]
	other = "Memory"

	[label_clients]
	other = "Clients"

	[label_band24]
	other = "2.4 GHz"

	[label_band5]
	other = "5 GHz"

	[label_ip]
	other = "IP address"

	[label_port]
	other = "Uplink port"

	[label_language]
	other = "Language"

	[label_device]
	other = "Device"

	[label_repository]
	other = "Repository"

	[label_token]
	other = "GitHub token"

	[label_api_key]
	other = "Gemini API key"

	[label_config_file]
	other = "Config file"
	`
