package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"resumeforge/internal/config"
	"resumeforge/internal/llm/processors"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
)

// GeminiProvider implements the LLM provider interface using Google Gemini.
type GeminiProvider struct {
	client       *genai.Client
	config       *config.Config
	systemPrompt string
	logger       logging.Logger
}

// NewGeminiProvider creates a new Gemini provider instance. The instruction
// prompt is loaded once from the configured path.
func NewGeminiProvider(ctx context.Context, cfg *config.Config) (*GeminiProvider, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured - set LLM_API_KEY or GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.LLM.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	systemPrompt, err := loadSystemPrompt(cfg.LLM.SystemPrompt)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &GeminiProvider{
		client:       client,
		config:       cfg,
		systemPrompt: systemPrompt,
		logger:       logging.GetGlobalLogger(),
	}, nil
}

// GenerateResume sends the assembled prompt to Gemini and returns the raw
// marker-delimited reply.
func (gp *GeminiProvider) GenerateResume(ctx context.Context, req *models.GenerateResumeRequest) (string, error) {
	startTime := time.Now()

	prompt, err := processors.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	gp.logger.Info("Starting resume generation with Gemini", map[string]interface{}{
		"mode":       req.Mode,
		"has_file":   prompt.File != nil,
		"has_photo":  prompt.Photo != nil,
		"account_id": req.Account.ID,
	})

	model := gp.client.GenerativeModel(gp.config.LLM.Model)
	model.SetTemperature(gp.config.LLM.Temperature)
	if gp.config.LLM.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(gp.config.LLM.MaxTokens))
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(gp.systemPrompt)},
	}

	var parts []genai.Part
	if prompt.Photo != nil {
		blob, err := blobPart(prompt.Photo)
		if err != nil {
			return "", fmt.Errorf("invalid profile photo: %w", err)
		}
		parts = append(parts, genai.Text(processors.PhotoContextLabel), blob)
	}
	if prompt.File != nil {
		blob, err := blobPart(prompt.File)
		if err != nil {
			return "", fmt.Errorf("invalid resume file: %w", err)
		}
		parts = append(parts, blob)
	}
	parts = append(parts, genai.Text(prompt.Text))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	gp.logger.Info("Resume generation completed", map[string]interface{}{
		"provider":        "gemini",
		"response_length": len(text),
		"processing_time": time.Since(startTime).String(),
	})

	return text, nil
}

// GenerateCoverLetter sends a cover-letter-only prompt to Gemini and
// returns the raw reply.
func (gp *GeminiProvider) GenerateCoverLetter(ctx context.Context, req *models.GenerateCoverLetterRequest) (string, error) {
	startTime := time.Now()

	prompt, err := processors.BuildCoverLetterPrompt(req)
	if err != nil {
		return "", err
	}

	gp.logger.Info("Starting cover letter generation with Gemini", map[string]interface{}{
		"template_id": req.TemplateID,
		"account_id":  req.Account.ID,
	})

	model := gp.client.GenerativeModel(gp.config.LLM.Model)
	model.SetTemperature(gp.config.LLM.Temperature)
	if gp.config.LLM.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(gp.config.LLM.MaxTokens))
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(gp.systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	gp.logger.Info("Cover letter generation completed", map[string]interface{}{
		"provider":        "gemini",
		"response_length": len(text),
		"processing_time": time.Since(startTime).String(),
	})

	return text, nil
}

// IsHealthy checks if the Gemini provider is healthy and available.
func (gp *GeminiProvider) IsHealthy(ctx context.Context) error {
	if gp.config.LLM.APIKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}

	model := gp.client.GenerativeModel(gp.config.LLM.Model)
	if _, err := model.GenerateContent(ctx, genai.Text("Hello")); err != nil {
		return fmt.Errorf("Gemini API health check failed: %w", err)
	}
	return nil
}

// GetProviderName returns the name of the LLM provider.
func (gp *GeminiProvider) GetProviderName() string {
	return "gemini"
}

// Close releases the underlying client.
func (gp *GeminiProvider) Close() error {
	if gp.client != nil {
		return gp.client.Close()
	}
	return nil
}

// blobPart decodes a base64 attachment into an inline data part.
func blobPart(img *models.ImageData) (genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment data: %w", err)
	}
	return genai.Blob{MIMEType: img.MimeType, Data: data}, nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in Gemini response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in Gemini response")
	}

	return strings.Join(parts, ""), nil
}

// loadSystemPrompt reads the instruction prompt from disk.
func loadSystemPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt from %s: %w", path, err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("system prompt file %s is empty", path)
	}
	return prompt, nil
}
