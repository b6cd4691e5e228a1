// File: internal/validate/rules.go
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Violation describes a single failed field check. A nil return from a rule
// means the value passed.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// emailShapeRe matches local@domain.tld with non-whitespace segments. This is
// intentionally the permissive shape the mobile client checked, not a full
// RFC 5322 parse; the identity provider does its own stricter check on write.
var emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails if the trimmed value is empty.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Violation{
			Field:   field,
			Rule:    "required",
			Message: fmt.Sprintf("The %s field is required.", field),
		}
	}
	return nil
}

// EmailShape fails unless the value looks like local@domain.tld.
func EmailShape(field, value string) error {
	if !emailShapeRe.MatchString(value) {
		return &Violation{
			Field:   field,
			Rule:    "emailshape",
			Message: fmt.Sprintf("The %s field must be a valid email address.", field),
		}
	}
	return nil
}

// YearRange fails unless the value parses as a base-10 integer within
// [min, max] inclusive.
func YearRange(field, value string, min, max int) error {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year < min || year > max {
		return &Violation{
			Field:   field,
			Rule:    "yearrange",
			Message: fmt.Sprintf("The %s field must be a year between %d and %d.", field, min, max),
		}
	}
	return nil
}

// MinLength fails if the trimmed value is shorter than n.
func MinLength(field, value string, n int) error {
	if len(strings.TrimSpace(value)) < n {
		return &Violation{
			Field:   field,
			Rule:    "minlength",
			Message: fmt.Sprintf("The %s field must be at least %d characters long.", field, n),
		}
	}
	return nil
}
