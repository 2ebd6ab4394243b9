package storage

import (
	"context"
	"fmt"
	"time"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// PGActivityStore implements ActivityStore on Postgres.
type PGActivityStore struct {
	db *DB
}

// NewPGActivityStore returns a Postgres-backed activity log store.
func NewPGActivityStore(db *DB) *PGActivityStore {
	return &PGActivityStore{db: db}
}

// Record appends one audit event.
func (s *PGActivityStore) Record(ctx context.Context, entry *models.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = utils.GenerateRecordID("activity")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO activity_logs (id, account_id, action, details, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.AccountID, entry.Action, entry.Details, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListByAccount returns the most recent audit events for an account.
func (s *PGActivityStore) ListByAccount(ctx context.Context, accountID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := s.db.pool.Query(ctx,
		`SELECT id, account_id, action, details, created_at
		 FROM activity_logs
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var out []models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		if err := rows.Scan(&entry.ID, &entry.AccountID, &entry.Action, &entry.Details, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ ActivityStore = (*PGActivityStore)(nil)
