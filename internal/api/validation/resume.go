package validation

import (
	"github.com/go-playground/validator/v10"

	"resumeforge/internal/renderer"
	"resumeforge/pkg/models"
)

// ValidateGenerationMode restricts the mode field to the two supported
// generation modes.
func ValidateGenerationMode(fl validator.FieldLevel) bool {
	mode := fl.Field().String()
	return mode == models.ModeFormatExisting || mode == models.ModeCreateScratch
}

// ValidateTemplateID ensures the template identifier names a catalog layout.
func ValidateTemplateID(fl validator.FieldLevel) bool {
	return renderer.IsKnownTemplate(fl.Field().String())
}

// RegisterResumeValidators registers all resume-related custom validators
func RegisterResumeValidators(v *validator.Validate) {
	v.RegisterValidation("generation_mode", ValidateGenerationMode)
	v.RegisterValidation("template_id", ValidateTemplateID)
}
