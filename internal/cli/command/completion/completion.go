package completion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `#! /bin/bash

_zyxelmate_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"

    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _zyxelmate_bash_autocomplete zyxelmate
`

const zshCompletionScript = `#compdef zyxelmate

_zyxelmate() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _zyxelmate zyxelmate
`

const fishCompletionScript = `function __zyxelmate_complete
  set -l tokens (commandline -opc)
  $tokens --generate-shell-completion 2>/dev/null
end

complete -c zyxelmate -f -a "(__zyxelmate_complete)"
`

const installInfo = `
# ZyxelMate Shell Completion
if command -v zyxelmate >/dev/null 2>&1; then
	source <(zyxelmate completion %s)
fi
`

func NewCompletionCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "completion",
		Usage: t.GetMessage("completion_command_usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "bash",
				Usage: t.GetMessage("completion_bash_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Print(bashCompletionScript)
					return nil
				},
			},
			{
				Name:  "zsh",
				Usage: t.GetMessage("completion_zsh_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Print(zshCompletionScript)
					return nil
				},
			},
			{
				Name:  "fish",
				Usage: t.GetMessage("completion_fish_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Print(fishCompletionScript)
					return nil
				},
			},
			{
				Name:  "install",
				Usage: t.GetMessage("completion_install_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return installCompletion(t)
				},
			},
		},
	}
}

func installCompletion(t *i18n.Translations) error {
	shell := os.Getenv("SHELL")
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error resolving home directory: %w", err)
	}

	var configFile string
	var shellName string

	switch {
	case strings.Contains(shell, "zsh"):
		configFile = filepath.Join(home, ".zshrc")
		shellName = "zsh"
	case strings.Contains(shell, "bash"):
		configFile = filepath.Join(home, ".bashrc")
		shellName = "bash"
	default:
		return fmt.Errorf("%s", t.GetMessage("completion_unsupported_shell", 0, map[string]interface{}{"Shell": shell}))
	}

	content := fmt.Sprintf(installInfo, shellName)

	fileContent, err := os.ReadFile(configFile)
	if err == nil && strings.Contains(string(fileContent), "# ZyxelMate Shell Completion") {
		fmt.Println(t.GetMessage("completion_already_installed", 0, map[string]interface{}{"File": configFile}))
		fmt.Println(t.GetMessage("completion_restart_shell", 0, nil))
		fmt.Printf("  source %s\n", configFile)
		return nil
	}

	f, err := os.OpenFile(configFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", configFile, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("error writing %s: %w", configFile, err)
	}

	fmt.Println(t.GetMessage("completion_installed", 0, map[string]interface{}{"File": configFile}))
	fmt.Println(t.GetMessage("completion_restart_shell", 0, nil))
	fmt.Printf("  source %s\n", configFile)

	return nil
}
