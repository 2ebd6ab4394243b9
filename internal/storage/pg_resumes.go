package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resumeforge/internal/config"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// DB wraps a PostgreSQL connection pool shared by the Postgres-backed stores.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.Database.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// PGResumeStore implements ResumeStore on Postgres. Resume content is
// stored as a JSONB document alongside the queryable columns.
type PGResumeStore struct {
	db *DB
}

// NewPGResumeStore returns a Postgres-backed resume store.
func NewPGResumeStore(db *DB) *PGResumeStore {
	return &PGResumeStore{db: db}
}

// Create inserts a new saved resume.
func (s *PGResumeStore) Create(ctx context.Context, resume *models.SavedResume) error {
	if resume.ID == "" {
		resume.ID = utils.GenerateRecordID("resume")
	}
	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now

	content, err := json.Marshal(resume.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal resume content: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO saved_resumes (id, account_id, template_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		resume.ID, resume.AccountID, resume.TemplateID, resume.Title, content, resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// GetByID returns a saved resume for the owning account.
func (s *PGResumeStore) GetByID(ctx context.Context, accountID, resumeID string) (*models.SavedResume, error) {
	var resume models.SavedResume
	var content []byte

	err := s.db.pool.QueryRow(ctx,
		`SELECT id, account_id, template_id, title, content, created_at, updated_at
		 FROM saved_resumes
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		resumeID, accountID,
	).Scan(&resume.ID, &resume.AccountID, &resume.TemplateID, &resume.Title, &content, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(content, &resume.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume content: %w", err)
	}

	return &resume, nil
}

// ListByAccount lists resume summaries for an account, newest first.
func (s *PGResumeStore) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.SavedResumeSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.pool.Query(ctx,
		`SELECT id, template_id, title, created_at
		 FROM saved_resumes
		 WHERE account_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []models.SavedResumeSummary
	for rows.Next() {
		var summary models.SavedResumeSummary
		if err := rows.Scan(&summary.ID, &summary.TemplateID, &summary.Title, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume summary: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Update rewrites a saved resume owned by the account.
func (s *PGResumeStore) Update(ctx context.Context, resume *models.SavedResume) error {
	resume.UpdatedAt = time.Now()

	content, err := json.Marshal(resume.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal resume content: %w", err)
	}

	tag, err := s.db.pool.Exec(ctx,
		`UPDATE saved_resumes
		 SET template_id = $1, title = $2, content = $3, updated_at = $4
		 WHERE id = $5 AND account_id = $6 AND deleted_at IS NULL`,
		resume.TemplateID, resume.Title, content, resume.UpdatedAt, resume.ID, resume.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes a resume owned by the account.
func (s *PGResumeStore) Delete(ctx context.Context, accountID, resumeID string) error {
	tag, err := s.db.pool.Exec(ctx,
		`UPDATE saved_resumes SET deleted_at = NOW()
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		resumeID, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ResumeStore = (*PGResumeStore)(nil)
