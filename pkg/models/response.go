package models

import "time"

// ParsedResponse is the decoded form of one raw generation reply. Every
// section is independently optional; Raw always carries the untouched
// original text for diagnostics and fallback display.
type ParsedResponse struct {
	JSON             map[string]interface{} `json:"json,omitempty"`
	GapAndFix        []string               `json:"gap_and_fix,omitempty"`
	ResumeATS        string                 `json:"resume_ats,omitempty"`
	ResumeHuman      string                 `json:"resume_human,omitempty"`
	ResumeTargeted   string                 `json:"resume_targeted,omitempty"`
	ResumePhoto      string                 `json:"resume_photo,omitempty"`
	CoverLetterFull  string                 `json:"cover_letter_full,omitempty"`
	CoverLetterShort string                 `json:"cover_letter_short,omitempty"`
	ColdEmail        string                 `json:"cold_email,omitempty"`
	Raw              string                 `json:"raw"`
}

// GenerateResumeResponse wraps a decoded generation result.
type GenerateResumeResponse struct {
	Success        bool            `json:"success"`
	Result         *ParsedResponse `json:"result,omitempty"`
	Error          string          `json:"error,omitempty"`
	ProcessingTime time.Duration   `json:"processing_time"`
	RequestID      string          `json:"request_id"`
}

// ImportResumeResponse carries the editor-ready mapping of a parsed upload.
type ImportResumeResponse struct {
	Success   bool        `json:"success"`
	Resume    *ResumeData `json:"resume,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TemplateInfo describes one entry of the fixed template catalog.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}
