package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/pkg/models"
)

const fullReply = `RESUME_JSON:
{"header": {"name": "Jane Doe", "title": "Engineer"}, "summary": "Builder of systems."}
GAP_AND_FIX_LIST:
- Add metrics to the platform bullet
- Clarify team size

RESUME_ATS:
Jane Doe. Engineer. Keywords optimized.
RESUME_HUMAN:
Jane Doe, an engineer people enjoy working with.
RESUME_TARGETED:
Jane Doe, tailored for the posting.
RESUME_WITH_PHOTO:
Jane Doe, photo layout.
COVER_LETTER_FULL:
Dear Hiring Manager,

I am writing to apply.
COVER_LETTER_SHORT:
Short pitch.
COLD_EMAIL:
Subject: Quick intro`

func TestDecodeResponseAllSections(t *testing.T) {
	parsed := DecodeResponse(fullReply)

	require.NotNil(t, parsed.JSON)
	header, ok := parsed.JSON["header"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", header["name"])

	require.Len(t, parsed.GapAndFix, 2)
	assert.Equal(t, "- Add metrics to the platform bullet", parsed.GapAndFix[0])
	assert.Equal(t, "- Clarify team size", parsed.GapAndFix[1])

	assert.Equal(t, "Jane Doe. Engineer. Keywords optimized.", parsed.ResumeATS)
	assert.Equal(t, "Jane Doe, an engineer people enjoy working with.", parsed.ResumeHuman)
	assert.Equal(t, "Jane Doe, tailored for the posting.", parsed.ResumeTargeted)
	assert.Equal(t, "Jane Doe, photo layout.", parsed.ResumePhoto)
	assert.Equal(t, "Dear Hiring Manager,\n\nI am writing to apply.", parsed.CoverLetterFull)
	assert.Equal(t, "Short pitch.", parsed.CoverLetterShort)
	assert.Equal(t, "Subject: Quick intro", parsed.ColdEmail)

	// Raw is always the untouched input.
	assert.Equal(t, fullReply, parsed.Raw)
}

func TestDecodeResponsePartialReply(t *testing.T) {
	raw := "RESUME_ATS:\nats text here\nRESUME_HUMAN:\nhuman text here"

	parsed := DecodeResponse(raw)

	assert.Equal(t, "ats text here", parsed.ResumeATS)
	assert.Equal(t, "human text here", parsed.ResumeHuman)
	assert.Nil(t, parsed.JSON)
	assert.Empty(t, parsed.GapAndFix)
	assert.Empty(t, parsed.ResumeTargeted)
	assert.Empty(t, parsed.ResumePhoto)
	assert.Empty(t, parsed.CoverLetterFull)
	assert.Empty(t, parsed.CoverLetterShort)
	assert.Empty(t, parsed.ColdEmail)
	assert.Equal(t, raw, parsed.Raw)
}

func TestDecodeResponseMarkerBoundaries(t *testing.T) {
	parsed := DecodeResponse("RESUME_ATS:\nfoo\nRESUME_HUMAN:\nbar")

	// Section content must never include the marker that terminates it.
	assert.Equal(t, "foo", parsed.ResumeATS)
	assert.Equal(t, "bar", parsed.ResumeHuman)
}

func TestDecodeResponseSkippedSuccessor(t *testing.T) {
	// RESUME_HUMAN is omitted; RESUME_ATS must end at the earliest later
	// marker instead of swallowing the rest of the reply.
	raw := "RESUME_ATS:\nats only\nCOVER_LETTER_FULL:\nletter body"

	parsed := DecodeResponse(raw)

	assert.Equal(t, "ats only", parsed.ResumeATS)
	assert.Equal(t, "letter body", parsed.CoverLetterFull)
	assert.Empty(t, parsed.ResumeHuman)
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	raw := "RESUME_JSON:\n{not valid json at all\nGAP_AND_FIX_LIST:\nfix one\nRESUME_ATS:\nats body"

	var parsed *models.ParsedResponse
	assert.NotPanics(t, func() {
		parsed = DecodeResponse(raw)
	})

	assert.Nil(t, parsed.JSON)
	assert.Equal(t, []string{"fix one"}, parsed.GapAndFix)
	assert.Equal(t, "ats body", parsed.ResumeATS)
}

func TestDecodeResponseFencedJSON(t *testing.T) {
	raw := "RESUME_JSON:\n```json\n{\"summary\": \"fenced\"}\n```\nGAP_AND_FIX_LIST:\nitem"

	parsed := DecodeResponse(raw)

	require.NotNil(t, parsed.JSON)
	assert.Equal(t, "fenced", parsed.JSON["summary"])
}

func TestDecodeResponseEmptyInput(t *testing.T) {
	parsed := DecodeResponse("")

	assert.Equal(t, "", parsed.Raw)
	assert.Nil(t, parsed.JSON)
}
