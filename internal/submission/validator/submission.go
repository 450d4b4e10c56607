package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"bookline/pkg/logger"
	"bookline/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// submissionInput mirrors the required booking-form fields. Field order
// matters: validator/v10 walks struct fields in declaration order, and the
// flow reports only the first failure, so this order fixes the reporting
// order (full name, then email, then address, then service selection).
type submissionInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required"`
	Address  string `validate:"required"`
	Service  string `validate:"required"`
}

var fieldMessages = map[string]string{
	"FullName": "Full name is required",
	"Email":    "Email is required",
	"Address":  "Address is required",
	"Service":  "Please select a service",
}

type SubmissionValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewSubmissionValidator(log *logger.Logger) *SubmissionValidator {
	return &SubmissionValidator{
		validate: validator.New(),
		log:      log,
	}
}

// Validate checks the sanitized draft and the selected service. It returns
// the first missing field only; later failures stay unreported until the
// earlier ones are fixed.
func (v *SubmissionValidator) Validate(draft model.ProfileDraft, selectedService string) error {
	input := submissionInput{
		FullName: draft.FullName,
		Email:    draft.Email,
		Address:  draft.Address,
		Service:  selectedService,
	}

	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		message, ok := fieldMessages[first.Field()]
		if !ok {
			message = fmt.Sprintf("%s is required", first.Field())
		}
		return ValidationError{
			Field:   first.Field(),
			Message: message,
		}
	}
	return err
}
