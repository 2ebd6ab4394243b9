package models

// Generation modes. FormatExisting reworks an uploaded or pasted resume;
// CreateScratch builds one from the structured editor data.
const (
	ModeFormatExisting = "FORMAT_EXISTING"
	ModeCreateScratch  = "CREATE_SCRATCH"
)

// GenerateResumeRequest is the request body for POST /api/v1/resume/generate
// and POST /api/v1/resume/import.
type GenerateResumeRequest struct {
	Mode    string          `json:"mode" validate:"required,generation_mode"`
	Account AccountIdentity `json:"account"`
	Resume  ResumeData      `json:"resume"`

	// FORMAT_EXISTING inputs: at least one must be set; the file wins
	// when both are present.
	ResumeText string     `json:"resume_text,omitempty"`
	File       *ImageData `json:"file,omitempty"`
}

// GenerateCoverLetterRequest is the request body for
// POST /api/v1/cover-letters/generate. Resume optionally grounds the
// letter's achievements in the latest resume data.
type GenerateCoverLetterRequest struct {
	Account        AccountIdentity `json:"account"`
	TemplateID     string          `json:"template_id,omitempty" validate:"omitempty,template_id"`
	Title          string          `json:"title,omitempty" validate:"max=200"`
	JobDescription string          `json:"job_description" validate:"required,min=20,max=20000"`
	Resume         *ResumeData     `json:"resume,omitempty"`
}

// RenderResumeRequest is the request body for POST /api/v1/resume/render.
type RenderResumeRequest struct {
	TemplateID string          `json:"template_id"`
	Account    AccountIdentity `json:"account"`
	Resume     ResumeData      `json:"resume"`
}

// SaveDraftRequest upserts the autosave draft for an account's workspace.
// TemplateID may be empty; empty selects the default bucket.
type SaveDraftRequest struct {
	AccountID  string     `json:"account_id" validate:"required"`
	TemplateID string     `json:"template_id,omitempty"`
	Content    ResumeData `json:"content"`
}

// SaveResumeRequest persists a finished resume payload under a title.
type SaveResumeRequest struct {
	AccountID  string     `json:"account_id" validate:"required"`
	TemplateID string     `json:"template_id" validate:"required,template_id"`
	Title      string     `json:"title" validate:"required,max=200"`
	Content    ResumeData `json:"content"`
}

// UpdateResumeRequest overwrites fields of a saved resume. Nil fields are
// left untouched.
type UpdateResumeRequest struct {
	AccountID  string      `json:"account_id" validate:"required"`
	TemplateID *string     `json:"template_id,omitempty"`
	Title      *string     `json:"title,omitempty"`
	Content    *ResumeData `json:"content,omitempty"`
}
