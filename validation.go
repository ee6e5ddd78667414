package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// RegisterInput is the payload for SessionIssuer.Register.
type RegisterInput struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Neurotype Neurotype `json:"neurotype"`
}

// Validate checks the input shape. Failures are the caller's fault and are
// reported before any store or crypto work happens.
func (r RegisterInput) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 30)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		// bcrypt only consumes the first 72 bytes and rejects anything
		// longer, so the cap is a validation rule, not a hashing error.
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Neurotype,
			validation.Required,
			validation.In(NeurotypeADHD, NeurotypeAutistic, NeurotypeBoth),
		),
	)
	return wrapValidation(err)
}

// LoginInput is the payload for SessionIssuer.Authenticate.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (l LoginInput) Validate() error {
	err := validation.ValidateStruct(&l,
		validation.Field(&l.Username, validation.Required),
		validation.Field(&l.Password, validation.Required),
	)
	return wrapValidation(err)
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid input").
		WithTextCode("VALIDATION_FAILED").
		WithCode(goerrors.CodeBadRequest)
}

// IsValidationError reports whether err is an input shape failure.
func IsValidationError(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryValidation
	}
	return false
}

// PasswordStrength is advisory feedback for the registration form. It has
// no bearing on what Register accepts beyond the minimum length rule.
type PasswordStrength struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// CheckPasswordStrength scores a candidate password from 0 to 5, one point
// per satisfied class: length, lowercase, uppercase, digits, symbols.
func CheckPasswordStrength(password string) PasswordStrength {
	var strength PasswordStrength

	classes := []struct {
		ok   bool
		hint string
	}{
		{len(password) >= 8, "use at least 8 characters"},
		{containsClass(password, 'a', 'z'), "add lowercase letters"},
		{containsClass(password, 'A', 'Z'), "add uppercase letters"},
		{containsClass(password, '0', '9'), "add digits"},
		{containsSymbol(password), "add special characters"},
	}

	for _, c := range classes {
		if c.ok {
			strength.Score++
		} else {
			strength.Feedback = append(strength.Feedback, c.hint)
		}
	}

	return strength
}

func containsClass(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}

func containsSymbol(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return true
		}
	}
	return false
}
