package auth

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formValidator checks register/login payloads against their struct-tag
// schemas and reports the first violated rule as a user-facing message.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

// check returns a *ValidationError describing the first failed rule, or nil.
func (fv *formValidator) check(form any) error {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	return &ValidationError{Message: ruleMessage(errs[0])}
}

func ruleMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	}
	return field + " is invalid"
}
