package processors

import (
	"fmt"
	"strings"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// PhotoContextLabel precedes an attached profile photo so the model treats
// it as context rather than content to transcribe.
const PhotoContextLabel = "User Profile Photo (for context/verification only):"

// Prompt is the assembled request payload, provider-agnostic. Attachments
// are ordered: photo (when present) before the resume file, text last.
type Prompt struct {
	Text  string
	Photo *models.ImageData
	File  *models.ImageData
}

// BuildPrompt assembles the user prompt for a generation request. The
// FORMAT_EXISTING input contract (a file or pasted text; the attachment
// wins when both are present) is enforced here, before any network call.
func BuildPrompt(req *models.GenerateResumeRequest) (*Prompt, error) {
	resume := &req.Resume

	var b strings.Builder
	fmt.Fprintf(&b, "role: %q\n", resume.TargetRole)
	fmt.Fprintf(&b, "plan: %q\n", resume.Preferences.Pages)
	fmt.Fprintf(&b, "Template ID: %q\n", utils.GetStringOrDefault(resume.TemplateID, "None (Default)"))
	fmt.Fprintf(&b, "Preferences: Tone=%s, Region=%s, Photo=%s\n",
		resume.Preferences.Tone, resume.Preferences.Region, yesNo(resume.Preferences.Photo))

	if resume.JobDescription != "" {
		fmt.Fprintf(&b, "Job description: \n%s\n", resume.JobDescription)
	}

	prompt := &Prompt{}

	if resume.Preferences.Photo && resume.ProfileImage != nil && resume.ProfileImage.Data != "" {
		prompt.Photo = resume.ProfileImage
	}

	switch req.Mode {
	case models.ModeFormatExisting:
		hasFile := req.File != nil && req.File.Data != ""
		hasText := req.ResumeText != ""
		switch {
		case hasFile:
			// When both arrive, the uploaded file is authoritative.
			prompt.File = req.File
			b.WriteString("\nThe existing resume is attached as a file above. Please extract all information from it to build the new resume.\n")
		case hasText:
			fmt.Fprintf(&b, "\nExisting resume text: \n%s\n", req.ResumeText)
		default:
			return nil, utils.NewInputContractError("an uploaded resume file or resume text is required to format an existing resume")
		}

	case models.ModeCreateScratch:
		b.WriteString("\nCREATE FROM SCRATCH DATA:\n")
		fmt.Fprintf(&b, "Target Role: %s\n", utils.GetStringOrDefault(resume.TargetRole, "Not specified"))

		if len(resume.ExperienceItems) > 0 {
			b.WriteString("\nWORK EXPERIENCE:\n")
			for _, item := range resume.ExperienceItems {
				fmt.Fprintf(&b, "- Role: %s at %s (%s). Details: %s\n", item.Role, item.Company, item.Dates, item.Description)
			}
		}

		if len(resume.EducationItems) > 0 {
			b.WriteString("\nEDUCATION:\n")
			for _, item := range resume.EducationItems {
				fmt.Fprintf(&b, "- %s from %s (%s)\n", item.Degree, item.School, item.Dates)
			}
		}

		if len(resume.SkillItems) > 0 {
			b.WriteString("\nSKILLS & OTHER SECTIONS:\n")
			for _, item := range resume.SkillItems {
				fmt.Fprintf(&b, "- Category: %s. Items: %s\n", item.Category, item.Items)
			}
		}

	default:
		return nil, utils.NewInputContractError(fmt.Sprintf("unknown generation mode: %s", req.Mode))
	}

	prompt.Text = b.String()
	return prompt, nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
