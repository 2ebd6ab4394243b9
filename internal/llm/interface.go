package llm

import (
	"context"

	"resumeforge/pkg/models"
)

// LLMProvider defines the interface for resume generation backends. The
// provider returns the raw marker-delimited reply; decoding into sections
// happens in processors.
type LLMProvider interface {
	// GenerateResume sends the assembled prompt and attachments and
	// returns the model's raw text reply.
	GenerateResume(ctx context.Context, req *models.GenerateResumeRequest) (string, error)

	// GenerateCoverLetter sends a cover-letter-only prompt and returns
	// the model's raw text reply.
	GenerateCoverLetter(ctx context.Context, req *models.GenerateCoverLetterRequest) (string, error)

	// IsHealthy checks if the provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
