package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"resumeforge/internal/config"
	"resumeforge/internal/llm/processors"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
)

// ClaudeProvider implements the LLM provider interface using Anthropic's
// Claude. It is the fallback backend; Gemini is the default.
type ClaudeProvider struct {
	client       anthropic.Client
	config       *config.Config
	systemPrompt string
	logger       logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance.
func NewClaudeProvider(cfg *config.Config) (*ClaudeProvider, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	systemPrompt, err := loadSystemPrompt(cfg.LLM.SystemPrompt)
	if err != nil {
		return nil, err
	}

	return &ClaudeProvider{
		client:       client,
		config:       cfg,
		systemPrompt: systemPrompt,
		logger:       logging.GetGlobalLogger(),
	}, nil
}

// GenerateResume sends the assembled prompt to Claude and returns the raw
// marker-delimited reply.
func (cp *ClaudeProvider) GenerateResume(ctx context.Context, req *models.GenerateResumeRequest) (string, error) {
	startTime := time.Now()

	prompt, err := processors.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	cp.logger.Info("Starting resume generation with Claude", map[string]interface{}{
		"mode":       req.Mode,
		"has_file":   prompt.File != nil,
		"has_photo":  prompt.Photo != nil,
		"account_id": req.Account.ID,
	})

	var blocks []anthropic.ContentBlockParamUnion
	if prompt.Photo != nil {
		blocks = append(blocks,
			anthropic.NewTextBlock(processors.PhotoContextLabel),
			anthropic.NewImageBlockBase64(prompt.Photo.MimeType, prompt.Photo.Data),
		)
	}
	if prompt.File != nil {
		blocks = append(blocks, fileBlock(prompt.File))
	}
	blocks = append(blocks, anthropic.NewTextBlock(prompt.Text))

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaude3_7SonnetLatest,
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: cp.systemPrompt},
		},
		Messages: []anthropic.MessageParam{{
			Content: blocks,
			Role:    anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		if textContent.Text != "" {
			responseText += textContent.Text
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	cp.logger.Info("Resume generation completed", map[string]interface{}{
		"provider":        "claude",
		"response_length": len(responseText),
		"processing_time": time.Since(startTime).String(),
	})

	return responseText, nil
}

// GenerateCoverLetter sends a cover-letter-only prompt to Claude and
// returns the raw reply.
func (cp *ClaudeProvider) GenerateCoverLetter(ctx context.Context, req *models.GenerateCoverLetterRequest) (string, error) {
	startTime := time.Now()

	prompt, err := processors.BuildCoverLetterPrompt(req)
	if err != nil {
		return "", err
	}

	cp.logger.Info("Starting cover letter generation with Claude", map[string]interface{}{
		"template_id": req.TemplateID,
		"account_id":  req.Account.ID,
	})

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaude3_7SonnetLatest,
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: cp.systemPrompt},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)},
			Role:    anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		if textContent.Text != "" {
			responseText += textContent.Text
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	cp.logger.Info("Cover letter generation completed", map[string]interface{}{
		"provider":        "claude",
		"response_length": len(responseText),
		"processing_time": time.Since(startTime).String(),
	})

	return responseText, nil
}

// fileBlock picks the content block for an uploaded resume. The image
// block only accepts image mime types, so PDFs go in a document block.
func fileBlock(file *models.ImageData) anthropic.ContentBlockParamUnion {
	if file.MimeType == "application/pdf" {
		return anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: file.Data})
	}
	return anthropic.NewImageBlockBase64(file.MimeType, file.Data)
}

// IsHealthy checks if the Claude provider is healthy and available.
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_7SonnetLatest,
		MaxTokens: 500,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider.
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
