package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) < 2 {
		errors = append(errors, ValidationError{"name", "must have at least 2 characters"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Phone) == "" && strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"phone", "phone or email is required"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if strings.TrimSpace(input.Phone) != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if len(input.Notes) > 5000 {
		errors = append(errors, ValidationError{"notes", "must not exceed 5000 characters"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")

	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func isValidScore(score int) bool {
	return score >= 0 && score <= 100
}
