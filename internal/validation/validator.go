package validation

import (
	"regexp"
	"strings"

	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Simplified RFC email shape: something@something.something, no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmitDetails checks the stage-1 contact fields. Messages are
// user-facing and returned verbatim.
func (v *Validator) ValidateSubmitDetails(req *dto.SubmitDetailsRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		errs = append(errs, domain.NewFieldError("name", "Name must be at least 2 characters"))
	}
	if len(req.Name) > 100 {
		errs = append(errs, domain.NewFieldError("name", "Name is too long"))
	}

	if !emailRegex.MatchString(req.Email) {
		errs = append(errs, domain.NewFieldError("email", "Invalid email format"))
	}

	if len(req.Phone) < 10 {
		errs = append(errs, domain.NewFieldError("phone", "Phone number must be at least 10 digits"))
	}

	if len(strings.TrimSpace(req.Occupation)) < 2 {
		errs = append(errs, domain.NewFieldError("occupation", "Occupation is required"))
	}

	if len(strings.TrimSpace(req.AgeGroup)) < 2 {
		errs = append(errs, domain.NewFieldError("age_group", "Age group is required"))
	}

	return errs
}

// ValidateResultsPayload checks the stage-2 results shape. The caller has
// already rejected an absent payload as a missing field. Deeper semantic
// checks are deliberately absent: the client computed the scores and the
// record is an audit trail, not a source of truth.
func (v *Validator) ValidateResultsPayload(results *dto.QuizResultsPayload) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if !domain.Archetype(results.Archetype).IsValid() {
		errs = append(errs, domain.NewFieldError("archetype", "Invalid archetype"))
	}

	if results.Percentages == nil {
		errs = append(errs, domain.NewFieldError("percentages", "Invalid percentages"))
	}

	if strings.TrimSpace(results.QuizVersion) == "" {
		errs = append(errs, domain.NewFieldError("quiz_version", "Invalid quiz version"))
	}

	return errs
}
