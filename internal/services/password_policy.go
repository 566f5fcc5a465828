package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var ErrWeakPassword = errors.New("weak password")

type PasswordPolicy struct {
	MinLength     int
	MaxLength     int
	RequireUpper  bool
	RequireSymbol bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:     8,
		MaxLength:     128,
		RequireUpper:  true,
		RequireSymbol: true,
	}
}

// Validate returns an error wrapping ErrWeakPassword that names the first unmet rule.
func (policy PasswordPolicy) Validate(password string) error {
	length := utf8.RuneCountInString(password)
	if length < policy.MinLength {
		return weakPassword("Password must be at least %d characters", policy.MinLength)
	}
	if policy.MaxLength > 0 && length > policy.MaxLength {
		return weakPassword("Password must be at most %d characters", policy.MaxLength)
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	hasSymbol := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSymbol = true
		}
	}

	switch {
	case policy.RequireUpper && !hasUpper:
		return weakPassword("Password must contain a capital letter")
	case !hasLower:
		return weakPassword("Password must contain a lowercase letter")
	case !hasDigit:
		return weakPassword("Password must contain a digit")
	case policy.RequireSymbol && !hasSymbol:
		return weakPassword("Password must contain a symbol")
	}
	return nil
}

func weakPassword(format string, args ...any) error {
	serviceErr := invalid(format, args...).(*Error)
	serviceErr.Err = ErrWeakPassword
	return serviceErr
}
