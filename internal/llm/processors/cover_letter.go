package processors

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/pkg/models"
)

// BuildCoverLetterPrompt assembles the prompt for a cover-letter-only
// generation. The request context rides along as a JSON document so the
// model can ground the letter in the account's identity, the job
// description and, when supplied, the latest resume data.
func BuildCoverLetterPrompt(req *models.GenerateCoverLetterRequest) (string, error) {
	context := map[string]interface{}{
		"name":           req.Account.Name,
		"email":          req.Account.Email,
		"templateId":     nullableString(req.TemplateID),
		"jobDescription": req.JobDescription,
		"resumeJson":     nil,
	}
	if req.Resume != nil {
		context["resumeJson"] = req.Resume
	}

	encoded, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode cover letter context: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are generating ONLY cover letter outputs.\n\n")
	b.WriteString("Return EXACTLY these sections (no resume sections):\n")
	fmt.Fprintf(&b, "%s\n<text>\n\n", MarkerCoverLetterFull)
	fmt.Fprintf(&b, "%s\n<text>\n\n", MarkerCoverLetterShort)
	fmt.Fprintf(&b, "%s\n<text>\n\n", MarkerColdEmail)
	fmt.Fprintf(&b, "USER_CONTEXT_JSON:\n%s", encoded)

	return b.String(), nil
}

// DecodeCoverLetter splits a cover-letter-only reply into its variants.
// Like DecodeResponse it never fails: a reply with no markers at all
// becomes the full letter, and absent variants stay empty. Raw always
// carries the input untouched.
func DecodeCoverLetter(rawText string) *models.CoverLetterContent {
	content := &models.CoverLetterContent{
		Full:      extractSection(rawText, MarkerCoverLetterFull, MarkerCoverLetterShort),
		Short:     extractSection(rawText, MarkerCoverLetterShort, MarkerColdEmail),
		ColdEmail: extractSection(rawText, MarkerColdEmail, ""),
		Raw:       rawText,
	}
	if content.Full == "" {
		content.Full = strings.TrimSpace(rawText)
	}
	return content
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
