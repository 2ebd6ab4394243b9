package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// MemoryDraftStore is an in-memory DraftStore for tests and database-less
// runs. Drafts never expire.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*models.Draft
}

// NewMemoryDraftStore returns an empty in-memory draft store.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]*models.Draft)}
}

func draftKey(accountID, templateID string) string {
	if templateID == "" {
		templateID = "default"
	}
	return accountID + ":" + templateID
}

func (s *MemoryDraftStore) SaveDraft(_ context.Context, draft *models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := draftKey(draft.AccountID, draft.TemplateID)
	now := time.Now()
	draft.UpdatedAt = now

	if existing, ok := s.drafts[key]; ok {
		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
	} else {
		if draft.ID == "" {
			draft.ID = utils.GenerateRecordID("draft")
		}
		draft.CreatedAt = now
	}

	stored := *draft
	s.drafts[key] = &stored
	return nil
}

func (s *MemoryDraftStore) GetLatestDraft(_ context.Context, accountID, templateID string) (*models.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[draftKey(accountID, templateID)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *MemoryDraftStore) DeleteDraft(_ context.Context, accountID, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(accountID, templateID))
	return nil
}

func (s *MemoryDraftStore) IsHealthy(_ context.Context) error { return nil }

func (s *MemoryDraftStore) Close() error { return nil }

var _ DraftStore = (*MemoryDraftStore)(nil)

// MemoryResumeStore is an in-memory ResumeStore.
type MemoryResumeStore struct {
	mu      sync.RWMutex
	resumes map[string]*models.SavedResume
}

// NewMemoryResumeStore returns an empty in-memory resume store.
func NewMemoryResumeStore() *MemoryResumeStore {
	return &MemoryResumeStore{resumes: make(map[string]*models.SavedResume)}
}

func (s *MemoryResumeStore) Create(_ context.Context, resume *models.SavedResume) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resume.ID == "" {
		resume.ID = utils.GenerateRecordID("resume")
	}
	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now

	stored := *resume
	s.resumes[resume.ID] = &stored
	return nil
}

func (s *MemoryResumeStore) GetByID(_ context.Context, accountID, resumeID string) (*models.SavedResume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resume, ok := s.resumes[resumeID]
	if !ok || resume.AccountID != accountID {
		return nil, ErrNotFound
	}
	copied := *resume
	return &copied, nil
}

func (s *MemoryResumeStore) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]models.SavedResumeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var all []*models.SavedResume
	for _, resume := range s.resumes {
		if resume.AccountID == accountID {
			all = append(all, resume)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	var out []models.SavedResumeSummary
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, models.SavedResumeSummary{
			ID:         all[i].ID,
			TemplateID: all[i].TemplateID,
			Title:      all[i].Title,
			CreatedAt:  all[i].CreatedAt,
		})
	}
	return out, nil
}

func (s *MemoryResumeStore) Update(_ context.Context, resume *models.SavedResume) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.resumes[resume.ID]
	if !ok || existing.AccountID != resume.AccountID {
		return ErrNotFound
	}

	resume.CreatedAt = existing.CreatedAt
	resume.UpdatedAt = time.Now()
	stored := *resume
	s.resumes[resume.ID] = &stored
	return nil
}

func (s *MemoryResumeStore) Delete(_ context.Context, accountID, resumeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.resumes[resumeID]
	if !ok || existing.AccountID != accountID {
		return ErrNotFound
	}
	delete(s.resumes, resumeID)
	return nil
}

var _ ResumeStore = (*MemoryResumeStore)(nil)

// MemoryCoverLetterStore is an in-memory CoverLetterStore.
type MemoryCoverLetterStore struct {
	mu      sync.RWMutex
	letters map[string]*models.CoverLetter
}

// NewMemoryCoverLetterStore returns an empty in-memory cover letter store.
func NewMemoryCoverLetterStore() *MemoryCoverLetterStore {
	return &MemoryCoverLetterStore{letters: make(map[string]*models.CoverLetter)}
}

func (s *MemoryCoverLetterStore) Create(_ context.Context, letter *models.CoverLetter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if letter.ID == "" {
		letter.ID = utils.GenerateRecordID("cl")
	}
	letter.CreatedAt = time.Now()

	stored := *letter
	s.letters[letter.ID] = &stored
	return nil
}

func (s *MemoryCoverLetterStore) GetByID(_ context.Context, accountID, letterID string) (*models.CoverLetter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	letter, ok := s.letters[letterID]
	if !ok || letter.AccountID != accountID {
		return nil, ErrNotFound
	}
	copied := *letter
	return &copied, nil
}

func (s *MemoryCoverLetterStore) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]models.CoverLetterSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var all []*models.CoverLetter
	for _, letter := range s.letters {
		if letter.AccountID == accountID {
			all = append(all, letter)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	var out []models.CoverLetterSummary
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, models.CoverLetterSummary{
			ID:             all[i].ID,
			TemplateID:     all[i].TemplateID,
			Title:          all[i].Title,
			JobDescription: all[i].JobDescription,
			CreatedAt:      all[i].CreatedAt,
		})
	}
	return out, nil
}

func (s *MemoryCoverLetterStore) Delete(_ context.Context, accountID, letterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.letters[letterID]
	if !ok || existing.AccountID != accountID {
		return ErrNotFound
	}
	delete(s.letters, letterID)
	return nil
}

var _ CoverLetterStore = (*MemoryCoverLetterStore)(nil)

// MemoryActivityStore is an in-memory ActivityStore.
type MemoryActivityStore struct {
	mu      sync.RWMutex
	entries []models.ActivityLog
}

// NewMemoryActivityStore returns an empty in-memory activity store.
func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{}
}

func (s *MemoryActivityStore) Record(_ context.Context, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = utils.GenerateRecordID("activity")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *MemoryActivityStore) ListByAccount(_ context.Context, accountID string, limit int) ([]models.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var out []models.ActivityLog
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].AccountID == accountID {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

var _ ActivityStore = (*MemoryActivityStore)(nil)
