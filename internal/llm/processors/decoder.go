package processors

import (
	"encoding/json"
	"strings"

	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
)

// Section markers of the generation reply protocol. The generator emits
// them as literal uppercase text followed by a colon, in this canonical
// order, each at most once. Any marker may be omitted.
const (
	MarkerResumeJSON       = "RESUME_JSON:"
	MarkerGapAndFixList    = "GAP_AND_FIX_LIST:"
	MarkerResumeATS        = "RESUME_ATS:"
	MarkerResumeHuman      = "RESUME_HUMAN:"
	MarkerResumeTargeted   = "RESUME_TARGETED:"
	MarkerResumeWithPhoto  = "RESUME_WITH_PHOTO:"
	MarkerCoverLetterFull  = "COVER_LETTER_FULL:"
	MarkerCoverLetterShort = "COVER_LETTER_SHORT:"
	MarkerColdEmail        = "COLD_EMAIL:"
)

// knownMarkers lists every marker in canonical order.
var knownMarkers = []string{
	MarkerResumeJSON,
	MarkerGapAndFixList,
	MarkerResumeATS,
	MarkerResumeHuman,
	MarkerResumeTargeted,
	MarkerResumeWithPhoto,
	MarkerCoverLetterFull,
	MarkerCoverLetterShort,
	MarkerColdEmail,
}

// DecodeResponse splits one raw generation reply into its named sections.
// It never fails: absent markers simply leave their field empty, and an
// unparseable RESUME_JSON payload is logged and dropped without affecting
// the other sections. Raw always carries the input untouched.
func DecodeResponse(rawText string) *models.ParsedResponse {
	logger := logging.GetGlobalLogger()
	parsed := &models.ParsedResponse{Raw: rawText}

	if jsonStr := extractSection(rawText, MarkerResumeJSON, MarkerGapAndFixList); jsonStr != "" {
		cleaned := stripCodeFences(jsonStr)

		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
			logger.Warn("Failed to parse RESUME_JSON section", map[string]interface{}{
				"error":  err.Error(),
				"length": len(cleaned),
			})
		} else {
			parsed.JSON = doc
		}
	}

	if gapStr := extractSection(rawText, MarkerGapAndFixList, MarkerResumeATS); gapStr != "" {
		for _, line := range strings.Split(gapStr, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				parsed.GapAndFix = append(parsed.GapAndFix, trimmed)
			}
		}
	}

	parsed.ResumeATS = extractSection(rawText, MarkerResumeATS, MarkerResumeHuman)
	parsed.ResumeHuman = extractSection(rawText, MarkerResumeHuman, MarkerResumeTargeted)
	parsed.ResumeTargeted = extractSection(rawText, MarkerResumeTargeted, MarkerResumeWithPhoto)
	parsed.ResumePhoto = extractSection(rawText, MarkerResumeWithPhoto, MarkerCoverLetterFull)
	parsed.CoverLetterFull = extractSection(rawText, MarkerCoverLetterFull, MarkerCoverLetterShort)
	parsed.CoverLetterShort = extractSection(rawText, MarkerCoverLetterShort, MarkerColdEmail)
	parsed.ColdEmail = extractSection(rawText, MarkerColdEmail, "")

	if strings.TrimSpace(rawText) != "" && sectionCount(parsed) < 2 {
		logger.Warn("Generation reply yielded fewer sections than expected", map[string]interface{}{
			"sections": sectionCount(parsed),
			"length":   len(rawText),
		})
	}

	return parsed
}

// extractSection returns the trimmed content between the first occurrence
// of startMarker and the section's end. The end is the preferred canonical
// successor when it appears after the content start; when the generator
// omitted that marker, the earliest occurrence of any known marker wins;
// with no later marker at all, the section runs to end of string.
// Each call re-scans the full original text, so extraction order does not
// matter and the input is never consumed.
func extractSection(rawText, startMarker, preferredEnd string) string {
	startIdx := strings.Index(rawText, startMarker)
	if startIdx == -1 {
		return ""
	}

	contentStart := startIdx + len(startMarker)
	contentEnd := len(rawText)

	if preferredEnd != "" {
		if idx := strings.Index(rawText[contentStart:], preferredEnd); idx != -1 {
			return strings.TrimSpace(rawText[contentStart : contentStart+idx])
		}
	}

	// Preferred successor absent: fall back to the earliest of any known
	// marker after the content start.
	earliest := -1
	for _, marker := range knownMarkers {
		if marker == startMarker {
			continue
		}
		idx := strings.Index(rawText[contentStart:], marker)
		if idx != -1 && (earliest == -1 || idx < earliest) {
			earliest = idx
		}
	}
	if earliest != -1 {
		contentEnd = contentStart + earliest
	}

	return strings.TrimSpace(rawText[contentStart:contentEnd])
}

// stripCodeFences removes markdown code fence notation that models wrap
// around JSON payloads.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func sectionCount(p *models.ParsedResponse) int {
	count := 0
	if p.JSON != nil {
		count++
	}
	if len(p.GapAndFix) > 0 {
		count++
	}
	for _, s := range []string{
		p.ResumeATS, p.ResumeHuman, p.ResumeTargeted, p.ResumePhoto,
		p.CoverLetterFull, p.CoverLetterShort, p.ColdEmail,
	} {
		if s != "" {
			count++
		}
	}
	return count
}
