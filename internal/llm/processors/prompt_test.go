package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/pkg/models"
)

func TestBuildPromptFormatExistingWithText(t *testing.T) {
	req := &models.GenerateResumeRequest{
		Mode:       models.ModeFormatExisting,
		ResumeText: "John Smith\nSenior Developer",
		Resume: models.ResumeData{
			TargetRole: "Staff Engineer",
			Preferences: models.Preferences{
				Pages: models.PagesOne, Tone: models.ToneModern, Region: models.RegionUS,
			},
		},
	}

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, `role: "Staff Engineer"`)
	assert.Contains(t, prompt.Text, `plan: "1-page"`)
	assert.Contains(t, prompt.Text, "Tone=modern, Region=US, Photo=No")
	assert.Contains(t, prompt.Text, "Existing resume text: \nJohn Smith\nSenior Developer")
	assert.Nil(t, prompt.File)
}

func TestBuildPromptFormatExistingWithFile(t *testing.T) {
	req := &models.GenerateResumeRequest{
		Mode: models.ModeFormatExisting,
		File: &models.ImageData{MimeType: "application/pdf", Data: "aGVsbG8="},
	}

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	require.NotNil(t, prompt.File)
	assert.Contains(t, prompt.Text, "The existing resume is attached as a file above.")
}

func TestBuildPromptFormatExistingRequiresAnInput(t *testing.T) {
	_, err := BuildPrompt(&models.GenerateResumeRequest{Mode: models.ModeFormatExisting})
	assert.Error(t, err)
}

func TestBuildPromptFormatExistingPrefersFileOverText(t *testing.T) {
	prompt, err := BuildPrompt(&models.GenerateResumeRequest{
		Mode:       models.ModeFormatExisting,
		ResumeText: "pasted resume text",
		File:       &models.ImageData{MimeType: "application/pdf", Data: "aGVsbG8="},
	})
	require.NoError(t, err)
	require.NotNil(t, prompt.File)
	assert.Equal(t, "aGVsbG8=", prompt.File.Data)
	assert.NotContains(t, prompt.Text, "pasted resume text")
	assert.Contains(t, prompt.Text, "attached as a file")
}

func TestBuildPromptCreateScratchSerializesSections(t *testing.T) {
	req := &models.GenerateResumeRequest{
		Mode: models.ModeCreateScratch,
		Resume: models.ResumeData{
			TargetRole: "Data Engineer",
			ExperienceItems: []models.ExperienceItem{
				{Role: "Analyst", Company: "Acme", Dates: "2020 - 2023", Description: "Built dashboards"},
			},
			EducationItems: []models.EducationItem{
				{Degree: "BSc Statistics", School: "State University", Dates: "2019"},
			},
			SkillItems: []models.SkillItem{
				{Category: "Languages", Items: "Python, SQL"},
			},
		},
	}

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "CREATE FROM SCRATCH DATA:")
	assert.Contains(t, prompt.Text, "Target Role: Data Engineer")
	assert.Contains(t, prompt.Text, "- Role: Analyst at Acme (2020 - 2023). Details: Built dashboards")
	assert.Contains(t, prompt.Text, "- BSc Statistics from State University (2019)")
	assert.Contains(t, prompt.Text, "- Category: Languages. Items: Python, SQL")
}

func TestBuildPromptCreateScratchWithoutRole(t *testing.T) {
	prompt, err := BuildPrompt(&models.GenerateResumeRequest{Mode: models.ModeCreateScratch})
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "Target Role: Not specified")
}

func TestBuildPromptPhotoAttachment(t *testing.T) {
	req := &models.GenerateResumeRequest{
		Mode: models.ModeCreateScratch,
		Resume: models.ResumeData{
			Preferences:  models.Preferences{Photo: true},
			ProfileImage: &models.ImageData{MimeType: "image/png", Data: "aGVsbG8="},
		},
	}

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	require.NotNil(t, prompt.Photo)
	assert.Contains(t, prompt.Text, "Photo=Yes")

	// Preference off means no attachment even when an image is present.
	req.Resume.Preferences.Photo = false
	prompt, err = BuildPrompt(req)
	require.NoError(t, err)
	assert.Nil(t, prompt.Photo)
}

func TestBuildPromptUnknownModeRejected(t *testing.T) {
	_, err := BuildPrompt(&models.GenerateResumeRequest{Mode: "MODE_C"})
	assert.Error(t, err)
}
