package processors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"resumeforge/pkg/models"
)

// MapResumeJSON maps the decoded RESUME_JSON payload back into the editor
// model. The payload is an external, model-controlled schema, so every
// field access is defensive: missing or mistyped keys become empty values,
// never an error.
func MapResumeJSON(doc map[string]interface{}) *models.ResumeData {
	data := &models.ResumeData{}
	if doc == nil {
		return data
	}

	header := asMap(doc["header"])

	name := asString(header["name"])
	firstName, lastName := splitName(name)

	// Location strings come as "City, State"; street address is rarely
	// recoverable from a parsed resume, so it stays empty.
	city, state := splitLocation(asString(header["location"]))

	data.TargetRole = asString(header["title"])
	data.PersonalDetails = models.PersonalDetails{
		FirstName: firstName,
		LastName:  lastName,
		Email:     asString(header["email"]),
		Phone:     asString(header["phone"]),
		City:      city,
		State:     state,
		Summary:   asString(doc["summary"]),
	}

	for _, raw := range asSlice(doc["experience"]) {
		exp := asMap(raw)
		data.ExperienceItems = append(data.ExperienceItems, models.ExperienceItem{
			ID:          uuid.New().String(),
			Role:        asString(exp["role"]),
			Company:     asString(exp["company"]),
			Dates:       joinDates(asString(exp["start"]), asString(exp["end"])),
			Description: joinHighlights(exp["highlights"]),
		})
	}

	for _, raw := range asSlice(doc["education"]) {
		edu := asMap(raw)
		data.EducationItems = append(data.EducationItems, models.EducationItem{
			ID:     uuid.New().String(),
			Degree: asString(edu["degree"]),
			School: asString(edu["school"]),
			Dates:  joinDates(asString(edu["start"]), asString(edu["end"])),
		})
	}

	for _, category := range sortedKeys(asMap(doc["skills"])) {
		items := asSlice(asMap(doc["skills"])[category])
		if len(items) == 0 {
			continue
		}
		var tokens []string
		for _, item := range items {
			if s := asString(item); s != "" {
				tokens = append(tokens, s)
			}
		}
		if len(tokens) == 0 {
			continue
		}
		data.SkillItems = append(data.SkillItems, models.SkillItem{
			ID:       uuid.New().String(),
			Category: capitalize(category),
			Items:    strings.Join(tokens, ", "),
		})
	}

	return data
}

// splitName splits a full name on the first space: first token becomes the
// first name, the remainder the last name. A single token yields an empty
// last name.
func splitName(name string) (string, string) {
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

func splitLocation(location string) (city, state string) {
	parts := strings.Split(location, ",")
	if len(parts) > 0 {
		city = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}

// joinDates renders a date range as "start - end", a lone start, or empty.
func joinDates(start, end string) string {
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("%s - %s", start, end)
	case start != "":
		return start
	default:
		return ""
	}
}

// joinHighlights flattens the highlights array into newline-joined bullet
// text. Entries may be plain strings or objects carrying a "bullet" key.
func joinHighlights(raw interface{}) string {
	var bullets []string
	for _, item := range asSlice(raw) {
		switch v := item.(type) {
		case string:
			if v != "" {
				bullets = append(bullets, v)
			}
		case map[string]interface{}:
			if b := asString(v["bullet"]); b != "" {
				bullets = append(bullets, b)
			}
		}
	}
	return strings.Join(bullets, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func asMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func asSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic order keeps imports stable across runs.
	sort.Strings(keys)
	return keys
}
