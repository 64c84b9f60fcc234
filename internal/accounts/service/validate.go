package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/parleychat/parley/internal/accounts/domain"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
)

const minPasswordLength = 8

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

func validateMobileNumber(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return &ValidationError{Field: "mobileNumber", Reason: "must be exactly 10 digits"}
	}
	return nil
}

// validatePassword enforces the complexity policy: minimum length plus at
// least one uppercase letter, one lowercase letter, one digit and one symbol.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return &ValidationError{
			Field:  "password",
			Reason: "must contain uppercase, lowercase, digit and symbol characters",
		}
	}
	return nil
}

func validateFullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "fullName", Reason: "must not be empty"}
	}
	return nil
}

func validateGender(gender string) error {
	switch gender {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
		return nil
	default:
		return &ValidationError{Field: "gender", Reason: "must be one of Male, Female, Other"}
	}
}
