package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// PGCoverLetterStore implements CoverLetterStore on Postgres. The letter
// variants are stored as a JSONB document alongside the queryable columns.
type PGCoverLetterStore struct {
	db *DB
}

// NewPGCoverLetterStore returns a Postgres-backed cover letter store.
func NewPGCoverLetterStore(db *DB) *PGCoverLetterStore {
	return &PGCoverLetterStore{db: db}
}

// Create inserts a new cover letter.
func (s *PGCoverLetterStore) Create(ctx context.Context, letter *models.CoverLetter) error {
	if letter.ID == "" {
		letter.ID = utils.GenerateRecordID("cl")
	}
	letter.CreatedAt = time.Now()

	content, err := json.Marshal(letter.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal cover letter content: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO cover_letters (id, account_id, template_id, title, job_description, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		letter.ID, letter.AccountID, letter.TemplateID, letter.Title, letter.JobDescription, content, letter.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cover letter: %w", err)
	}
	return nil
}

// GetByID returns a cover letter for the owning account.
func (s *PGCoverLetterStore) GetByID(ctx context.Context, accountID, letterID string) (*models.CoverLetter, error) {
	var letter models.CoverLetter
	var content []byte

	err := s.db.pool.QueryRow(ctx,
		`SELECT id, account_id, template_id, title, job_description, content, created_at
		 FROM cover_letters
		 WHERE id = $1 AND account_id = $2`,
		letterID, accountID,
	).Scan(&letter.ID, &letter.AccountID, &letter.TemplateID, &letter.Title, &letter.JobDescription, &content, &letter.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}

	if err := json.Unmarshal(content, &letter.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cover letter content: %w", err)
	}

	return &letter, nil
}

// ListByAccount lists cover letter summaries for an account, newest first.
func (s *PGCoverLetterStore) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.CoverLetterSummary, error) {
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
		`SELECT id, template_id, title, job_description, created_at
		 FROM cover_letters
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	defer rows.Close()

	var out []models.CoverLetterSummary
	for rows.Next() {
		var summary models.CoverLetterSummary
		if err := rows.Scan(&summary.ID, &summary.TemplateID, &summary.Title, &summary.JobDescription, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cover letter summary: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Delete removes a cover letter owned by the account.
func (s *PGCoverLetterStore) Delete(ctx context.Context, accountID, letterID string) error {
	tag, err := s.db.pool.Exec(ctx,
		`DELETE FROM cover_letters WHERE id = $1 AND account_id = $2`,
		letterID, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete cover letter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ CoverLetterStore = (*PGCoverLetterStore)(nil)
