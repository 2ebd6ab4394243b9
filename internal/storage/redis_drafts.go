package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// RedisDraftStore keeps autosave drafts in Redis with a sliding TTL. Every
// save rewrites the whole draft under its (account, template bucket) key.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisDraftStore creates a Redis-backed draft store from the Redis config.
func NewRedisDraftStore(cfg *config.Config) *RedisDraftStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisDraftStore{
		client: redis.NewClient(opts),
		ttl:    cfg.Redis.DraftTTL,
		logger: logging.GetGlobalLogger(),
	}
}

// SaveDraft upserts the draft for its (account, template bucket) key. The
// created timestamp of an existing draft is preserved.
func (s *RedisDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	key := s.draftKey(draft.AccountID, draft.TemplateID)

	now := time.Now()
	draft.UpdatedAt = now

	if existing, err := s.GetLatestDraft(ctx, draft.AccountID, draft.TemplateID); err == nil {
		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
	} else {
		if draft.ID == "" {
			draft.ID = utils.GenerateRecordID("draft")
		}
		draft.CreatedAt = now
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save draft", map[string]interface{}{
			"account_id":  draft.AccountID,
			"template_id": draft.TemplateID,
			"error":       err.Error(),
		})
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// GetLatestDraft retrieves the draft for the account's template bucket.
// Returns ErrNotFound when no draft exists.
func (s *RedisDraftStore) GetLatestDraft(ctx context.Context, accountID, templateID string) (*models.Draft, error) {
	payload, err := s.client.Get(ctx, s.draftKey(accountID, templateID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft models.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	draft.AccountID = accountID

	return &draft, nil
}

// DeleteDraft removes the draft for the account's template bucket.
func (s *RedisDraftStore) DeleteDraft(ctx context.Context, accountID, templateID string) error {
	return s.client.Del(ctx, s.draftKey(accountID, templateID)).Err()
}

// IsHealthy checks if Redis is connected and healthy.
func (s *RedisDraftStore) IsHealthy(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisDraftStore) Close() error {
	return s.client.Close()
}

// draftKey generates the Redis key for a draft bucket. An empty templateID
// is the default editing surface and gets its own bucket.
func (s *RedisDraftStore) draftKey(accountID, templateID string) string {
	if templateID == "" {
		templateID = "default"
	}
	return fmt.Sprintf("draft:account:%s:template:%s", accountID, templateID)
}

var _ DraftStore = (*RedisDraftStore)(nil)
