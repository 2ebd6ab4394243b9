package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resumeforge/pkg/models"
)

// Template catalog identifiers. The set is closed: the renderer, the
// template listing endpoint and any client selector must agree on these
// exact strings. Unknown identifiers fall back to TemplateClassicPro.
const (
	TemplateClassicPro      = "classic_pro"
	TemplateModernTech      = "modern_tech"
	TemplateCreativeBold    = "creative_bold"
	TemplateExecutiveLead   = "executive_lead"
	TemplateMinimalistClean = "minimalist_clean"
	TemplateCompactGrid     = "compact_grid"
)

// DefaultTemplateID is the layout used when the requested identifier is
// unknown or empty.
const DefaultTemplateID = TemplateClassicPro

// placeholderSummary is rendered when neither a summary nor a job
// description is available; the summary block is never left empty.
const placeholderSummary = "Experienced professional with a proven track record of success in delivering high-quality results. Skilled in adapting to new challenges and utilizing industry best practices to drive efficiency and growth."

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Catalog returns the fixed template catalog in display order.
func Catalog() []models.TemplateInfo {
	return []models.TemplateInfo{
		{ID: TemplateClassicPro, Name: "Classic Pro", Description: "Timeless serif single-column layout", Tag: "Most Popular"},
		{ID: TemplateModernTech, Name: "Modern Tech", Description: "Dark sidebar two-column layout", Tag: "Tech"},
		{ID: TemplateCreativeBold, Name: "Creative Bold", Description: "Banner header with accent color", Tag: "Creative"},
		{ID: TemplateExecutiveLead, Name: "Executive Lead", Description: "Serif executive layout with competency grid", Tag: "Senior"},
		{ID: TemplateMinimalistClean, Name: "Minimalist Clean", Description: "Centered minimal layout", Tag: "Minimal"},
		{ID: TemplateCompactGrid, Name: "Compact Grid", Description: "Dense three-column grid", Tag: "Dense"},
	}
}

// IsKnownTemplate reports whether id names a catalog layout.
func IsKnownTemplate(id string) bool {
	for _, t := range Catalog() {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Renderer projects a ResumeData instance into one of the catalog layouts.
// Rendering is a pure function of its inputs: the same data and identity
// always produce byte-identical output, and the input is never mutated.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses the embedded layout templates and returns a ready Renderer.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, info := range Catalog() {
		name := info.ID + ".html.tmpl"
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", info.ID, err)
		}
		r.templates[info.ID] = tmpl
	}

	return r, nil
}

// Render produces the HTML document for the given template identifier.
// Unknown identifiers render the default layout instead of failing.
func (r *Renderer) Render(data *models.ResumeData, templateID string, account models.AccountIdentity) ([]byte, error) {
	tmpl, ok := r.templates[templateID]
	if !ok {
		tmpl = r.templates[DefaultTemplateID]
	}

	view := buildView(data, account)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}

	return buf.Bytes(), nil
}

// experienceView is one experience entry prepared for layout.
type experienceView struct {
	Role        string
	Company     string
	Dates       string
	Description string
}

// educationView is one education entry prepared for layout.
type educationView struct {
	Degree string
	School string
	Dates  string
}

// skillView is one skill category with its items both as raw text and as
// individually renderable tags.
type skillView struct {
	Category string
	Items    string
	Tags     []string
}

// resumeView is the shared derivation consumed by every layout. All
// fallback rules live here so each template sees identical values.
type resumeView struct {
	DisplayName string
	TargetRole  string
	Email       string
	Phone       string
	FullAddress string
	Summary     string
	Region      string
	ShowPhoto   bool
	PhotoSrc    template.URL
	Experience  []experienceView
	Education   []educationView
	Skills      []skillView
	AllTags     []string
}

// buildView computes the layout-independent derivations.
func buildView(data *models.ResumeData, account models.AccountIdentity) *resumeView {
	pd := data.PersonalDetails

	firstName := pd.FirstName
	lastName := pd.LastName
	if firstName == "" && lastName == "" {
		firstName, lastName = splitAccountName(account.Name)
	}
	displayName := strings.TrimSpace(firstName + " " + lastName)
	if displayName == "" {
		displayName = account.Name
	}

	view := &resumeView{
		DisplayName: displayName,
		TargetRole:  data.TargetRole,
		Email:       firstNonEmpty(pd.Email, account.Email),
		Phone:       pd.Phone,
		FullAddress: joinAddress(pd.Address, pd.City, pd.State, pd.Country),
		Summary:     firstNonEmpty(pd.Summary, data.JobDescription, placeholderSummary),
		Region:      data.Preferences.Region,
	}

	// The photo region renders only when the preference is on and an image
	// is actually attached; otherwise layouts omit it entirely.
	if data.Preferences.Photo && data.ProfileImage != nil && data.ProfileImage.Data != "" {
		view.ShowPhoto = true
		view.PhotoSrc = template.URL(fmt.Sprintf("data:%s;base64,%s", data.ProfileImage.MimeType, data.ProfileImage.Data))
	}

	for _, exp := range data.ExperienceItems {
		view.Experience = append(view.Experience, experienceView{
			Role:        exp.Role,
			Company:     exp.Company,
			Dates:       exp.Dates,
			Description: exp.Description,
		})
	}

	for _, edu := range data.EducationItems {
		view.Education = append(view.Education, educationView{
			Degree: edu.Degree,
			School: edu.School,
			Dates:  edu.Dates,
		})
	}

	for _, skill := range data.SkillItems {
		tags := splitSkillItems(skill.Items)
		view.Skills = append(view.Skills, skillView{
			Category: skill.Category,
			Items:    skill.Items,
			Tags:     tags,
		})
		view.AllTags = append(view.AllTags, tags...)
	}

	return view
}

// splitAccountName derives first/last name from the account's full name:
// first token is the first name, the remainder the last name.
func splitAccountName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// joinAddress joins the non-empty address segments with ", ". An entirely
// empty address yields "", which layouts treat as "omit the line".
func joinAddress(segments ...string) string {
	var parts []string
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// splitSkillItems splits a comma-joined skill list into trimmed tags.
// Items containing a literal comma split apart; that loss is part of the
// field's contract.
func splitSkillItems(items string) []string {
	var tags []string
	for _, token := range strings.Split(items, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tags = append(tags, token)
		}
	}
	return tags
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
