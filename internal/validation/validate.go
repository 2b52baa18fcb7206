// AngelaMos | 2026
// validate.go

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating a payload. Errors holds the
// field-level failure reasons in declaration order.
type Result struct {
	OK     bool
	Errors []string
}

func (r *Result) Err() error {
	if r.OK {
		return nil
	}
	return fmt.Errorf("validation failed: %s", strings.Join(r.Errors, "; "))
}

var (
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // registration only fails for empty tag names
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})

	//nolint:errcheck // registration only fails for empty tag names
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})

	return v
}

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

func isStrongPassword(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// Validate checks the payload against its schema tags. It never panics and
// never returns a partially validated value: callers use the input only when
// Result.OK is true.
func Validate(payload any) *Result {
	err := validate.Struct(payload)
	if err == nil {
		return &Result{OK: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Result{Errors: []string{"Validation failed"}}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, messageFor(fe))
	}

	return &Result{Errors: messages}
}

//nolint:cyclop // flat message table, one branch per field/tag pair
func messageFor(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Email":
		switch fe.Tag() {
		case "required":
			return "Email is required"
		case "max":
			return "Email is too long"
		default:
			return "Invalid email address"
		}
	case "Password":
		switch fe.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 8 characters long"
		case "max":
			return "Password is too long"
		default:
			return "Password must contain uppercase, lowercase, number, and special character"
		}
	case "FirstName":
		switch fe.Tag() {
		case "required":
			return "First name is required"
		case "max":
			return "First name is too long"
		default:
			return "First name contains invalid characters"
		}
	case "LastName":
		switch fe.Tag() {
		case "required":
			return "Last name is required"
		case "max":
			return "Last name is too long"
		default:
			return "Last name contains invalid characters"
		}
	case "Token":
		if fe.Tag() == "required" {
			return "Registration token is required"
		}
		return "Invalid token format"
	case "Role":
		return "Invalid role"
	default:
		return fmt.Sprintf("%s is invalid", fe.StructField())
	}
}
