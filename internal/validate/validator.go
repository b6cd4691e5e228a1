// File: internal/validate/validator.go
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"student_directory/internal/common"
)

// New builds the validator used for form submission payloads. Custom tags are
// backed by the pure rule functions in this package so the DTO tags and the
// standalone checks cannot drift apart:
//
//   - notblank      — required with surrounding whitespace trimmed
//   - emailshape    — local@domain.tld shape check
//   - minlen=N      — trimmed length at least N
//   - gradyear=N    — integer in [MinGraduationYear, currentYear+N]
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the struct field's JSON-ish lowercase name in violations.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return Required(fl.FieldName(), fl.Field().String()) == nil
	})
	mustRegister(v, "emailshape", func(fl validator.FieldLevel) bool {
		return EmailShape(fl.FieldName(), fl.Field().String()) == nil
	})
	mustRegister(v, "minlen", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return MinLength(fl.FieldName(), fl.Field().String(), n) == nil
	})
	mustRegister(v, "gradyear", func(fl validator.FieldLevel) bool {
		offset, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		min, max := GraduationYearBounds(offset, time.Now())
		return YearRange(fl.FieldName(), fl.Field().String(), min, max) == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: registering %q: %v", tag, err))
	}
}

// Describe converts a validator error into the tagged VALIDATION_ERROR the
// rest of the app surfaces, with a per-field message map in the details.
func Describe(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return common.ErrValidation.WithDetails(err.Error())
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "notblank", "required":
			details[field] = fmt.Sprintf("The %s field is required.", field)
		case "emailshape":
			details[field] = fmt.Sprintf("The %s field must be a valid email address.", field)
		case "gradyear":
			offset, _ := strconv.Atoi(fe.Param())
			min, max := GraduationYearBounds(offset, time.Now())
			details[field] = fmt.Sprintf("The %s field must be a year between %d and %d.", field, min, max)
		case "minlen", "min":
			details[field] = fmt.Sprintf("The %s field must be at least %s characters long.", field, fe.Param())
		default:
			details[field] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, fe.Tag())
		}
	}
	return common.ErrValidation.WithDetails(details)
}
