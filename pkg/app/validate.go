package app

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/mindease/pkg/api"
)

// DateLayout is the format of period bounds.
const DateLayout = "2006-01-02"

// MinPasswordLength is the shortest password the settings panel accepts.
const MinPasswordLength = 6

var validate = validator.New()

// ValidationError is a local check that failed before any request was sent.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err came from local validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func failedTags(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	tags := make(map[string]string, len(ve))
	for _, fe := range ve {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

// ValidateCredentials requires both a username and a password.
func ValidateCredentials(creds api.Credentials) error {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := validate.Struct(creds); err != nil {
		return &ValidationError{Title: "Missing Credentials", Message: "Username and password are required."}
	}
	return nil
}

type passwordChange struct {
	Old     string `validate:"required"`
	New     string `validate:"min=6"`
	Confirm string `validate:"eqfield=New"`
}

// ValidatePasswordChange checks, in order: confirmation matches, the new
// password is long enough, and the old password was given.
func ValidatePasswordChange(oldPassword, newPassword, confirm string) error {
	err := validate.Struct(passwordChange{Old: oldPassword, New: newPassword, Confirm: confirm})
	if err == nil {
		return nil
	}
	tags := failedTags(err)
	if tags == nil {
		return err
	}
	if _, ok := tags["Confirm"]; ok {
		return &ValidationError{Title: "Password Mismatch", Message: "New password and confirmation do not match."}
	}
	if _, ok := tags["New"]; ok {
		return &ValidationError{Title: "Password Too Short", Message: "New password must be at least 6 characters long."}
	}
	return &ValidationError{Title: "Password Required", Message: "Please enter your current password."}
}

type periodRange struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// ValidatePeriod requires both bounds as YYYY-MM-DD with start not after
// end. Bounds are compared as calendar dates.
func ValidatePeriod(start, end string) error {
	if err := validate.Struct(periodRange{Start: start, End: end}); err != nil {
		tags := failedTags(err)
		for _, tag := range tags {
			if tag == "required" {
				return &ValidationError{Title: "Date Range Required", Message: "Please select both a start and end date."}
			}
		}
		return &ValidationError{Title: "Invalid Date Range", Message: "Dates must use the YYYY-MM-DD format."}
	}
	s, _ := time.Parse(DateLayout, start)
	e, _ := time.Parse(DateLayout, end)
	if s.After(e) {
		return &ValidationError{Title: "Invalid Date Range", Message: "Start date cannot be after end date."}
	}
	return nil
}
