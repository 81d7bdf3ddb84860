package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
)

func PrintTokenUsage(usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil {
		return
	}
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Print(prefix("📊"))
	fmt.Printf("%s: ", t.GetMessage("ui_token_usage", 0, nil))
	fmt.Printf("%s %d | ", t.GetMessage("ui_input", 0, nil), usage.InputTokens)
	fmt.Printf("%s %d | ", t.GetMessage("ui_output", 0, nil), usage.OutputTokens)
	fmt.Printf("%s %d\n", t.GetMessage("ui_total", 0, nil), usage.TotalTokens)
	if usage.DurationMs > 0 {
		fmt.Printf("%s%s: %dms\n", prefix("⏱️"), t.GetMessage("ui_duration", 0, nil), usage.DurationMs)
	}
}
