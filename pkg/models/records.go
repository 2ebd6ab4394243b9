package models

import "time"

// Draft is the persisted autosave snapshot of an editing session, keyed by
// (account, template bucket). Last write wins; there is no merge.
type Draft struct {
	ID         string     `json:"id"`
	AccountID  string     `json:"-"`
	TemplateID string     `json:"template_id"`
	Content    ResumeData `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SavedResume is a persisted, titled resume record.
type SavedResume struct {
	ID         string     `json:"id"`
	AccountID  string     `json:"-"`
	TemplateID string     `json:"template_id"`
	Title      string     `json:"title"`
	Content    ResumeData `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SavedResumeSummary is the list-view projection of a SavedResume.
type SavedResumeSummary struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// CoverLetterContent holds the generated variants of one cover letter.
// Raw keeps the untouched reply for diagnostics.
type CoverLetterContent struct {
	Full      string `json:"cover_letter_full"`
	Short     string `json:"cover_letter_short"`
	ColdEmail string `json:"cold_email"`
	Raw       string `json:"raw,omitempty"`
}

// CoverLetter is a persisted generated cover letter with the job
// description it was written against.
type CoverLetter struct {
	ID             string             `json:"id"`
	AccountID      string             `json:"-"`
	TemplateID     string             `json:"template_id,omitempty"`
	Title          string             `json:"title"`
	JobDescription string             `json:"job_description"`
	Content        CoverLetterContent `json:"content"`
	CreatedAt      time.Time          `json:"created_at"`
}

// CoverLetterSummary is the list-view projection of a CoverLetter.
type CoverLetterSummary struct {
	ID             string    `json:"id"`
	TemplateID     string    `json:"template_id,omitempty"`
	Title          string    `json:"title"`
	JobDescription string    `json:"job_description"`
	CreatedAt      time.Time `json:"created_at"`
}

// Audit event actions recorded against the activity log.
const (
	ActionResumeGenerate      = "RESUME_GENERATE"
	ActionResumeParse         = "RESUME_PARSE"
	ActionResumeSave          = "RESUME_SAVE"
	ActionResumeUpdate        = "RESUME_UPDATE"
	ActionResumeDownload      = "RESUME_DOWNLOAD"
	ActionResumeDraftSave     = "RESUME_DRAFT_SAVE"
	ActionCoverLetterGenerate = "COVERLETTER_GENERATE"
)

// ActivityLog records one user-visible action for the audit trail.
type ActivityLog struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
