package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResumeJSONHeader(t *testing.T) {
	data := MapResumeJSON(map[string]interface{}{
		"header": map[string]interface{}{
			"name":     "Jane Doe",
			"title":    "Staff Engineer",
			"location": "Austin, TX",
			"email":    "jane@example.com",
			"phone":    "555-0100",
		},
		"summary": "Ships reliable systems.",
	})

	assert.Equal(t, "Jane", data.PersonalDetails.FirstName)
	assert.Equal(t, "Doe", data.PersonalDetails.LastName)
	assert.Equal(t, "Austin", data.PersonalDetails.City)
	assert.Equal(t, "TX", data.PersonalDetails.State)
	assert.Equal(t, "jane@example.com", data.PersonalDetails.Email)
	assert.Equal(t, "555-0100", data.PersonalDetails.Phone)
	assert.Equal(t, "Ships reliable systems.", data.PersonalDetails.Summary)
	assert.Equal(t, "Staff Engineer", data.TargetRole)
}

func TestMapResumeJSONSingleTokenName(t *testing.T) {
	data := MapResumeJSON(map[string]interface{}{
		"header": map[string]interface{}{"name": "Madonna"},
	})

	assert.Equal(t, "Madonna", data.PersonalDetails.FirstName)
	assert.Equal(t, "", data.PersonalDetails.LastName)
}

func TestMapResumeJSONMultiWordLastName(t *testing.T) {
	data := MapResumeJSON(map[string]interface{}{
		"header": map[string]interface{}{"name": "Ana de la Cruz"},
	})

	assert.Equal(t, "Ana", data.PersonalDetails.FirstName)
	assert.Equal(t, "de la Cruz", data.PersonalDetails.LastName)
}

func TestMapResumeJSONExperienceDates(t *testing.T) {
	data := MapResumeJSON(map[string]interface{}{
		"experience": []interface{}{
			map[string]interface{}{
				"company": "Tech Corp",
				"role":    "Engineer",
				"start":   "2020",
				"end":     "2023",
				"highlights": []interface{}{
					"Shipped the platform",
					map[string]interface{}{"bullet": "Cut latency 40%"},
				},
			},
			map[string]interface{}{
				"company": "Startup",
				"role":    "Founder",
				"start":   "2023",
			},
			map[string]interface{}{
				"company": "Void Inc",
			},
		},
	})

	require.Len(t, data.ExperienceItems, 3)
	assert.Equal(t, "2020 - 2023", data.ExperienceItems[0].Dates)
	assert.Equal(t, "Shipped the platform\nCut latency 40%", data.ExperienceItems[0].Description)
	assert.Equal(t, "2023", data.ExperienceItems[1].Dates)
	assert.Equal(t, "", data.ExperienceItems[2].Dates)

	// Every item carries a generated addressing ID.
	assert.NotEmpty(t, data.ExperienceItems[0].ID)
	assert.NotEqual(t, data.ExperienceItems[0].ID, data.ExperienceItems[1].ID)
}

func TestMapResumeJSONSkills(t *testing.T) {
	data := MapResumeJSON(map[string]interface{}{
		"skills": map[string]interface{}{
			"languages": []interface{}{"Go", "Python"},
			"cloud":     []interface{}{"AWS"},
			"empty":     []interface{}{},
		},
	})

	require.Len(t, data.SkillItems, 2)
	assert.Equal(t, "Cloud", data.SkillItems[0].Category)
	assert.Equal(t, "AWS", data.SkillItems[0].Items)
	assert.Equal(t, "Languages", data.SkillItems[1].Category)
	assert.Equal(t, "Go, Python", data.SkillItems[1].Items)
}

func TestMapResumeJSONMissingKeys(t *testing.T) {
	assert.NotPanics(t, func() {
		data := MapResumeJSON(map[string]interface{}{})
		assert.Equal(t, "", data.PersonalDetails.FirstName)
		assert.Empty(t, data.ExperienceItems)
		assert.Empty(t, data.EducationItems)
		assert.Empty(t, data.SkillItems)
	})

	assert.NotPanics(t, func() {
		MapResumeJSON(nil)
	})

	// Mistyped values degrade to empty, never panic.
	assert.NotPanics(t, func() {
		MapResumeJSON(map[string]interface{}{
			"header":     "not an object",
			"experience": "not an array",
			"skills":     42,
		})
	})
}
