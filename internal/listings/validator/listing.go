package validator

import (
	"errors"
	"fmt"

	"staybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type ListingValidator struct {
	validate *validator.Validate
}

func NewListingValidator() *ListingValidator {
	return &ListingValidator{
		validate: validator.New(),
	}
}

func (v *ListingValidator) Validate(l *model.Listing) error {
	if err := v.validate.Struct(l); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.validateBusinessRules(l)
}

func (v *ListingValidator) ValidateUpdate(updates *model.ListingUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if updates.PricePerNight != nil && updates.PricePerNight.IsNegative() {
		return ValidationErrors{{
			Field:   "PricePerNight",
			Message: "price per night cannot be negative",
		}}
	}

	return nil
}

func (v *ListingValidator) validateBusinessRules(l *model.Listing) error {
	var errs ValidationErrors

	if l.PricePerNight.IsNegative() {
		errs = append(errs, ValidationError{
			Field:   "PricePerNight",
			Message: "price per night cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: validationMessage(err),
		})
	}

	return validationErrors
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "mongodb":
		return "must be a valid object ID"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
