package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
		UsageMetadata: &genai.UsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 60,
			TotalTokenCount:      180,
		},
	}
}

func sampleSnapshot() *models.DeviceSnapshot {
	return &models.DeviceSnapshot{
		Info:          models.DeviceInfo{Model: "NWA50AX", Firmware: "V7.10(ABYW.3)"},
		UptimeSeconds: 3600,
		CPU:           models.CPUStats{Current: 12, Avg5Min: 8},
		MemoryUsage:   53,
		Clients: []models.WifiClient{
			{MAC: "A4:E5:7C:A3:38:8A", Band: "2.4GHz"},
			{MAC: "11:22:33:44:55:66", Band: "5GHz"},
		},
		Port:      models.PortStats{Status: "1000M/Full"},
		FetchedAt: time.Now(),
	}
}

func TestDraftDescription(t *testing.T) {
	t.Run("should return the drafted text with usage", func(t *testing.T) {
		d := &Drafter{modelName: "gemini-2.5-flash"}
		d.generate = func(_ context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			assert.Contains(t, prompt, "clients disappear after a few hours")
			assert.Contains(t, prompt, "NWA50AX")
			assert.Contains(t, prompt, "2 (1 on 2.4GHz, 1 on 5GHz)")
			return textResponse("The integration loses all client entities after a few hours.\n"), nil
		}

		result, err := d.DraftDescription(context.Background(), "clients disappear after a few hours", sampleSnapshot())
		require.NoError(t, err)

		assert.Equal(t, "The integration loses all client entities after a few hours.", result.Text)
		require.NotNil(t, result.Usage)
		assert.Equal(t, 120, result.Usage.InputTokens)
		assert.Equal(t, 180, result.Usage.TotalTokens)
		assert.Equal(t, "gemini-2.5-flash", result.Usage.Model)
	})

	t.Run("should work without a snapshot", func(t *testing.T) {
		d := &Drafter{modelName: "gemini-2.5-flash"}
		d.generate = func(_ context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			assert.NotContains(t, prompt, "Device diagnostics")
			return textResponse("draft"), nil
		}

		result, err := d.DraftDescription(context.Background(), "hint", nil)
		require.NoError(t, err)
		assert.Equal(t, "draft", result.Text)
	})

	t.Run("should reject an empty model response", func(t *testing.T) {
		d := &Drafter{modelName: "m"}
		d.generate = func(context.Context, string) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		}

		_, err := d.DraftDescription(context.Background(), "hint", nil)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrInvalidAIOutput.Message, appErr.Message)
	})

	t.Run("should classify quota errors", func(t *testing.T) {
		d := &Drafter{modelName: "m"}
		d.generate = func(context.Context, string) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")
		}

		_, err := d.DraftDescription(context.Background(), "hint", nil)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrGeminiQuotaExceeded.Message, appErr.Message)
	})
}

func TestNewDrafter(t *testing.T) {
	t.Run("should refuse an empty api key", func(t *testing.T) {
		_, err := NewDrafter(context.Background(), "", "gemini-2.5-flash")

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeConfiguration, appErr.Type)
	})
}
