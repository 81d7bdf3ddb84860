package gemini

import (
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/google/generative-ai-go/genai"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
	"google.golang.org/api/option"
)

var _ ports.BugDrafter = (*Drafter)(nil)

// generateFunc is the model call, replaceable in tests.
type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// Drafter turns the reporter's one-line hint plus the device diagnostics into
// a usable 'Describe the bug' section.
type Drafter struct {
	client    *genai.Client
	modelName string
	generate  generateFunc
}

func NewDrafter(ctx context.Context, apiKey, modelName string) (*Drafter, error) {
	if apiKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, domainErrors.ErrAIGeneration.WithError(err)
	}

	d := &Drafter{client: client, modelName: modelName}
	model := client.GenerativeModel(modelName)
	d.generate = func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		return model.GenerateContent(ctx, genai.Text(prompt))
	}
	return d, nil
}

func (d *Drafter) Close() error {
	if d.client == nil {
		return nil
	}
	return d.client.Close()
}

func (d *Drafter) DraftDescription(ctx context.Context, hint string, snapshot *models.DeviceSnapshot) (*models.DraftResult, error) {
	prompt := buildDraftPrompt(hint, snapshot)
	logger.Debug(ctx, "requesting bug draft", "model", d.modelName, "prompt_chars", len(prompt))

	start := time.Now()
	resp, err := d.generate(ctx, prompt)
	if err != nil {
		return nil, classifyGenerateError(err)
	}

	text := formatResponse(resp)
	if strings.TrimSpace(text) == "" {
		return nil, domainErrors.ErrInvalidAIOutput
	}

	result := &models.DraftResult{
		Text:  strings.TrimSpace(text),
		Usage: extractUsage(resp, d.modelName),
	}
	if result.Usage != nil {
		result.Usage.DurationMs = time.Since(start).Milliseconds()
	}
	return result, nil
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

func extractUsage(resp *genai.GenerateContentResponse, model string) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		Model:        model,
	}
}

func classifyGenerateError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"), strings.Contains(msg, "PERMISSION_DENIED"):
		return domainErrors.ErrGeminiAPIKeyInvalid.WithError(err)
	case strings.Contains(msg, "429"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return domainErrors.ErrGeminiQuotaExceeded.WithError(err)
	default:
		return domainErrors.ErrAIGeneration.WithError(err)
	}
}

// buildDraftPrompt gives the model the reporter's hint plus a compact
// diagnostics summary. The model only writes the narrative, the hard numbers
// travel in the diagnostics block the report service appends separately.
func buildDraftPrompt(hint string, snapshot *models.DeviceSnapshot) string {
	var b strings.Builder

	b.WriteString("You are helping a user of the ha_zyxel Home Assistant integration write a bug report.\n")
	b.WriteString("Write the 'Describe the bug' section: 2-4 sentences, factual, first person, no markdown headings.\n")
	b.WriteString("Do not invent symptoms that are not in the user's words or the diagnostics.\n\n")

	b.WriteString("User's description of the problem:\n")
	if strings.TrimSpace(hint) == "" {
		b.WriteString("(none given, describe what the diagnostics suggest)\n")
	} else {
		b.WriteString(hint + "\n")
	}

	if snapshot != nil {
		b.WriteString("\nDevice diagnostics:\n")
		fmt.Fprintf(&b, "- Model: %s, firmware %s\n", snapshot.Info.Model, snapshot.Info.Firmware)
		fmt.Fprintf(&b, "- Uptime: %s\n", snapshot.Uptime())
		fmt.Fprintf(&b, "- CPU: %d%% now, %d%% over 5 min\n", snapshot.CPU.Current, snapshot.CPU.Avg5Min)
		fmt.Fprintf(&b, "- Memory: %d%%\n", snapshot.MemoryUsage)
		fmt.Fprintf(&b, "- Wireless clients: %d (%d on 2.4GHz, %d on 5GHz)\n",
			snapshot.ClientCount(), snapshot.Clients24G(), snapshot.Clients5G())
		fmt.Fprintf(&b, "- Uplink: %s\n", snapshot.Port.Status)
	}

	return b.String()
}
