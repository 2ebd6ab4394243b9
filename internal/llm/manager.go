package llm

import (
	"context"
	"fmt"
	"sync"

	"resumeforge/internal/config"
	"resumeforge/internal/llm/processors"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// Manager manages LLM providers and their lifecycle, and orchestrates the
// generate and import flows: contract validation, one provider call, one
// decode. There are no retries; a failed generation surfaces to the caller.
type Manager struct {
	config   *config.Config
	factory  *LLMFactory
	provider LLMProvider
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager instance
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:  cfg,
		factory: NewLLMFactory(cfg),
		logger:  logging.GetGlobalLogger(),
	}
}

// Start initializes the LLM manager and creates the provider
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
	})

	provider, err := m.factory.CreateProvider(ctx)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	m.provider = provider

	healthCtx, cancel := context.WithTimeout(ctx, m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(healthCtx); err != nil {
		m.logger.Warn("LLM provider health check failed - generation will be unavailable", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
			"error":    err.Error(),
		})
		m.healthy = false
		// Don't return error - allow server to start without LLM
	} else {
		m.healthy = true
		m.logger.Info("LLM manager started successfully", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
		})
	}

	return nil
}

// Stop shuts down the LLM manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager", nil)
	m.provider = nil
	m.healthy = false
	return nil
}

// SetProvider replaces the active provider. Intended for tests.
func (m *Manager) SetProvider(provider LLMProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = provider
	m.healthy = provider != nil
}

// GenerateResume runs one generation round trip and decodes the reply.
// Input-contract violations are rejected before any network call.
func (m *Manager) GenerateResume(ctx context.Context, req *models.GenerateResumeRequest) (*models.ParsedResponse, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return nil, err
	}

	// Validate the mode's input contract before touching the network.
	if _, err := processors.BuildPrompt(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.config.LLM.Timeout)
	defer cancel()

	raw, err := provider.GenerateResume(ctx, req)
	if err != nil {
		if _, ok := err.(*utils.CustomError); ok {
			return nil, err
		}
		return nil, utils.NewLLMError(err.Error())
	}

	return processors.DecodeResponse(raw), nil
}

// GenerateCoverLetter runs one cover-letter-only round trip and decodes
// the reply into its variants.
func (m *Manager) GenerateCoverLetter(ctx context.Context, req *models.GenerateCoverLetterRequest) (*models.CoverLetterContent, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.config.LLM.Timeout)
	defer cancel()

	raw, err := provider.GenerateCoverLetter(ctx, req)
	if err != nil {
		if _, ok := err.(*utils.CustomError); ok {
			return nil, err
		}
		return nil, utils.NewLLMError(err.Error())
	}

	return processors.DecodeCoverLetter(raw), nil
}

// ImportResume runs a generation round trip and maps the structured JSON
// section into editor-ready resume data.
func (m *Manager) ImportResume(ctx context.Context, req *models.GenerateResumeRequest) (*models.ResumeData, *models.ParsedResponse, error) {
	parsed, err := m.GenerateResume(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if parsed.JSON == nil {
		return nil, parsed, utils.NewLLMError("reply carried no structured resume data")
	}

	return processors.MapResumeJSON(parsed.JSON), parsed, nil
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current LLM provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// CheckHealth performs a health check on the LLM provider
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = (err == nil)
	m.mu.Unlock()

	return err
}

func (m *Manager) activeProvider() (LLMProvider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider == nil {
		return nil, utils.NewLLMError("LLM manager not started or provider not available")
	}
	if !m.healthy {
		return nil, utils.NewLLMError("LLM provider is not available - check API key configuration (set LLM_API_KEY environment variable)")
	}
	return m.provider, nil
}
