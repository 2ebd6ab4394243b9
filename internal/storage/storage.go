// Package storage persists drafts, saved resumes and the activity log.
// Drafts live in Redis with a TTL; saved resumes and activity records live
// in Postgres. In-memory implementations back tests and database-less runs.
package storage

import (
	"context"
	"errors"

	"resumeforge/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DraftStore persists autosave snapshots keyed by (account, template bucket).
// An empty template bucket is the default editing surface. Saves are upserts;
// last write wins.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *models.Draft) error
	GetLatestDraft(ctx context.Context, accountID, templateID string) (*models.Draft, error)
	DeleteDraft(ctx context.Context, accountID, templateID string) error
	IsHealthy(ctx context.Context) error
	Close() error
}

// ResumeStore persists titled resume records owned by an account.
type ResumeStore interface {
	Create(ctx context.Context, resume *models.SavedResume) error
	GetByID(ctx context.Context, accountID, resumeID string) (*models.SavedResume, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.SavedResumeSummary, error)
	Update(ctx context.Context, resume *models.SavedResume) error
	Delete(ctx context.Context, accountID, resumeID string) error
}

// CoverLetterStore persists generated cover letters owned by an account.
// Deletes are hard deletes; a letter can always be regenerated.
type CoverLetterStore interface {
	Create(ctx context.Context, letter *models.CoverLetter) error
	GetByID(ctx context.Context, accountID, letterID string) (*models.CoverLetter, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.CoverLetterSummary, error)
	Delete(ctx context.Context, accountID, letterID string) error
}

// ActivityStore records audit events. Recording failures must never fail
// the user-facing operation; callers log and continue.
type ActivityStore interface {
	Record(ctx context.Context, entry *models.ActivityLog) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]models.ActivityLog, error)
}
