package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/pkg/models"
)

func TestBuildCoverLetterPromptCarriesContext(t *testing.T) {
	prompt, err := BuildCoverLetterPrompt(&models.GenerateCoverLetterRequest{
		Account:        models.AccountIdentity{ID: "acct-1", Name: "Jane Doe", Email: "jane@example.com"},
		TemplateID:     "modern_tech",
		JobDescription: "We need a senior engineer comfortable with Go services.",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "ONLY cover letter outputs")
	assert.Contains(t, prompt, MarkerCoverLetterFull)
	assert.Contains(t, prompt, MarkerCoverLetterShort)
	assert.Contains(t, prompt, MarkerColdEmail)
	assert.Contains(t, prompt, `"name": "Jane Doe"`)
	assert.Contains(t, prompt, `"templateId": "modern_tech"`)
	assert.Contains(t, prompt, "senior engineer comfortable with Go services")
}

func TestBuildCoverLetterPromptNullsAbsentTemplate(t *testing.T) {
	prompt, err := BuildCoverLetterPrompt(&models.GenerateCoverLetterRequest{
		JobDescription: "A role description long enough to matter here.",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, `"templateId": null`)
	assert.Contains(t, prompt, `"resumeJson": null`)
}

func TestDecodeCoverLetterSplitsVariants(t *testing.T) {
	raw := `COVER_LETTER_FULL:
Dear team, here is the long version.

COVER_LETTER_SHORT:
Here is the short version.

COLD_EMAIL:
Subject: hello`

	content := DecodeCoverLetter(raw)
	assert.Equal(t, "Dear team, here is the long version.", content.Full)
	assert.Equal(t, "Here is the short version.", content.Short)
	assert.Equal(t, "Subject: hello", content.ColdEmail)
	assert.Equal(t, raw, content.Raw)
}

func TestDecodeCoverLetterFallsBackToWholeReply(t *testing.T) {
	content := DecodeCoverLetter("  Just a letter with no markers at all.  ")
	assert.Equal(t, "Just a letter with no markers at all.", content.Full)
	assert.Empty(t, content.Short)
	assert.Empty(t, content.ColdEmail)
}
