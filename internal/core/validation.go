// AngelaMos | 2026
// validation.go

package core

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 16
	passwordSpecials  = `!@#$%^&*(),.?":{}|<>`
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "emailaddr", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	mustRegister(v, "role", func(fl validator.FieldLevel) bool {
		return policy.Role(fl.Field().String()).IsValid()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword reports whether password is 8-16 characters long with at
// least one uppercase letter and one character from the special set.
func IsValidPassword(password string) bool {
	length := utf8.RuneCountInString(password)
	if length < PasswordMinLength || length > PasswordMaxLength {
		return false
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			hasSpecial = true
		}
	}

	return hasUpper && hasSpecial
}

// Validate runs struct-tag validation on s and folds in any extra rule
// failures. Every violation is reported; the result is a VALIDATION_ERROR
// AppError carrying the full message list, or nil.
func Validate(s any, extra ...error) error {
	var combined error

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate: %w", err)
		}
		for _, fe := range fieldErrs {
			combined = multierr.Append(combined, errors.New(fieldMessage(fe)))
		}
	}

	for _, e := range extra {
		combined = multierr.Append(combined, e)
	}

	if combined == nil {
		return nil
	}

	errs := multierr.Errors(combined)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}

	return ValidationError(messages)
}

// ValidationMessages extracts the message list from a Validate error.
func ValidationMessages(err error) []string {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeValidation {
		return nil
	}
	messages, _ := appErr.Details.([]string)
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "emailaddr":
		return field + " must be a valid email address"
	case "password":
		return fmt.Sprintf(
			"%s must be %d-%d characters long and include at least one uppercase letter and one special character",
			field, PasswordMinLength, PasswordMaxLength,
		)
	case "role":
		return fmt.Sprintf("%s must be one of: %s", field, policy.RoleList())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid", "uuid4":
		return field + " must be a valid id"
	}

	return field + " is invalid"
}

// IsValidID reports whether id is a canonical UUID string. Lookups with
// anything else are answered as not found without reaching storage.
func IsValidID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
