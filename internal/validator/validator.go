package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mentorhub/matching-service/internal/models"
)

// ValidationError represents a single failed field rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the service's custom
// rules registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates a request struct. The returned error, when non-nil,
// is always a ValidationErrors value.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error(), Rule: "struct"}}
	}

	errors := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Message: v.errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

func (v *Validator) registerRules() {
	// Role is fixed to the two supported values at signup.
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsValid()
	})

	// Mentor directory ordering keys. Empty means id order.
	v.validate.RegisterValidation("mentor_order", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "name", "skill":
			return true
		}
		return false
	})

	// Meeting status values clients may set.
	v.validate.RegisterValidation("meeting_status", func(fl validator.FieldLevel) bool {
		switch models.MeetingStatus(fl.Field().String()) {
		case models.MeetingStatusScheduled, models.MeetingStatusCompleted, models.MeetingStatusCancelled:
			return true
		}
		return false
	})
}

func (v *Validator) errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", fe.Param())
	case "user_role":
		return "must be mentor or mentee"
	case "mentor_order":
		return "must be name or skill"
	case "meeting_status":
		return "must be scheduled, completed or cancelled"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", fe.Tag())
	}
}
