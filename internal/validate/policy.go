// File: internal/validate/policy.go
package validate

import "time"

// Flow-specific validation settings. The self-serve flows (registration,
// self-edit) accept graduation years up to ten years out and let the self-edit
// form leave degree and year blank; the admin flows cap the year at five years
// out and require every field. The divergence is deliberate, expressed here as
// named configuration so it reads as policy rather than copy-paste drift.
// Whether it should stay divergent is an open question with stakeholders; see
// DESIGN.md.
const (
	// MinGraduationYear is the lower bound for every flow.
	MinGraduationYear = 1950

	// SelfServeYearOffset applies to registration and self-edit.
	SelfServeYearOffset = 10

	// AdminYearOffset applies to admin create and admin edit.
	AdminYearOffset = 5

	// MinPasswordLength applies to self-registration passwords.
	MinPasswordLength = 6
)

// GraduationYearBounds returns the inclusive year range for a flow offset at
// the given time.
func GraduationYearBounds(offset int, now time.Time) (min, max int) {
	return MinGraduationYear, now.Year() + offset
}
