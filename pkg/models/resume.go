package models

// PersonalDetails holds the contact block of a resume. Every field is
// independently optional; format validation (email/phone shape) is a
// boundary concern, not enforced here.
type PersonalDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Summary   string `json:"summary"`
}

// ExperienceItem is one work-experience entry. The ID is client-generated
// and only used for edit/remove addressing; it carries no semantic meaning.
type ExperienceItem struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// EducationItem is one education entry.
type EducationItem struct {
	ID     string `json:"id"`
	Degree string `json:"degree"`
	School string `json:"school"`
	Dates  string `json:"dates"`
}

// SkillItem groups skills under a category. Items is a comma-joined free
// text list; consumers split on "," at render time. Items containing a
// literal comma are lost by that split — a known boundary of the format.
type SkillItem struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Items    string `json:"items"`
}

// Preference values. Unknown values are tolerated on input; the prompt
// layer treats them as free text.
const (
	PagesOne = "1-page"
	PagesTwo = "2-page"

	ToneConservative = "conservative"
	ToneModern       = "modern"
	ToneBold         = "bold"

	RegionUS = "US"
	RegionEU = "EU"
)

// Preferences holds the generation/layout preferences of a resume.
type Preferences struct {
	Pages  string `json:"pages"`
	Tone   string `json:"tone"`
	Region string `json:"region"`
	Photo  bool   `json:"photo"`
}

// ImageData is an inline binary attachment (profile photo or uploaded
// document) carried as base64 with its declared mime type.
type ImageData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// ResumeData is the normalized, template-agnostic resume model. It is the
// single shape that the editor mutates, the draft coordinator persists and
// the renderer projects into layouts.
type ResumeData struct {
	TargetRole      string           `json:"target_role,omitempty"`
	JobDescription  string           `json:"job_description,omitempty"`
	PersonalDetails PersonalDetails  `json:"personal_details"`
	ExperienceItems []ExperienceItem `json:"experience_items,omitempty"`
	EducationItems  []EducationItem  `json:"education_items,omitempty"`
	SkillItems      []SkillItem      `json:"skill_items,omitempty"`
	Preferences     Preferences      `json:"preferences"`
	ProfileImage    *ImageData       `json:"profile_image,omitempty"`
	TemplateID      string           `json:"template_id,omitempty"`
}

// AccountIdentity carries the signed-in account's display identity, used
// for render-time fallbacks only; authentication lives outside this
// service.
type AccountIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
