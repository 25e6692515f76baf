// Package validation checks raw signup/login form fields before any
// credential operation runs. Violations are collected across all fields and
// returned as human-readable messages, so the caller can show every problem
// at once.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SignupInput is a trimmed, validated signup pair.
// Password max is 72: the bcrypt input bound, enforced here rather than documented.
type SignupInput struct {
	Username string `validate:"required,max=30"`
	Password string `validate:"required,max=72,alphanum"`
}

// LoginInput is a trimmed, validated login pair. Login allows the full
// stored username length and any password characters.
type LoginInput struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,max=72"`
}

// Signup trims and validates signup fields. The returned slice is nil when
// the input is valid.
func Signup(username, password string) (SignupInput, []string) {
	in := SignupInput{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	return in, messages(validate.Struct(in))
}

// Login trims and validates login fields.
func Login(username, password string) (LoginInput, []string) {
	in := LoginInput{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	return in, messages(validate.Struct(in))
}

func messages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid input"}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "alphanum":
		return fe.Field() + " must contain only letters and numbers"
	}
	return fe.Field() + " is invalid"
}
