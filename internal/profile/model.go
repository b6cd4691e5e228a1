// File: internal/profile/model.go
package profile

import (
	"strconv"
	"strings"
	"time"

	"student_directory/internal/form"
)

// TimestampLayout is the ISO-8601 format persisted on user documents,
// matching what the mobile client wrote (millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// UserProfile is the persisted user record, one document per identity
// provider account, keyed by the provider uid.
type UserProfile struct {
	// ID is the provider-assigned uid. It is the document key, not a field.
	ID string `firestore:"-" json:"id"`

	Name string `firestore:"name" json:"name"`

	// Email is set at creation and treated as immutable afterwards. No
	// server-side rule enforces this; the edit flows simply never write it.
	Email string `firestore:"email" json:"email"`

	UniversityDegree string `firestore:"universityDegree" json:"university_degree"`
	GraduationYear   int64  `firestore:"graduationYear" json:"graduation_year"`

	// CreatedAt is set once at creation. UpdatedAt is absent until the first
	// successful edit and restamped on every one after that.
	CreatedAt string `firestore:"createdAt" json:"created_at"`
	UpdatedAt string `firestore:"updatedAt,omitempty" json:"updated_at,omitempty"`

	IsActive bool `firestore:"isActive" json:"is_active"`

	// CreatedBy is only present on administrator-created records: the uid of
	// the creating account, or "system".
	CreatedBy string `firestore:"createdBy,omitempty" json:"created_by,omitempty"`
}

// FormSnapshot returns the editable fields as form values, the shape the
// edit screens load into their form state. A zero graduation year maps to an
// empty string, the way an absent value renders in an input.
func (p *UserProfile) FormSnapshot() map[string]string {
	year := ""
	if p.GraduationYear != 0 {
		year = strconv.FormatInt(p.GraduationYear, 10)
	}
	return map[string]string{
		form.FieldName:             p.Name,
		form.FieldUniversityDegree: p.UniversityDegree,
		form.FieldGraduationYear:   year,
	}
}

// Form returns the editable fields as an ordered form state, the shape the
// edit screens mount with.
func (p *UserProfile) Form() *form.State {
	snap := p.FormSnapshot()
	fields := make([]form.Field, 0, len(form.TrackedFields))
	for _, name := range form.TrackedFields {
		fields = append(fields, form.Field{Name: name, Value: snap[name]})
	}
	return form.NewState(fields...)
}

// HasBeenEdited reports whether the record has seen at least one update.
func (p *UserProfile) HasBeenEdited() bool {
	return p.UpdatedAt != ""
}

// --- Flow input DTOs ---
//
// One input type per screen flow. The validation tags differ deliberately:
// self-serve flows allow graduation years up to +10 and the self-edit form
// accepts blank degree/year, while the admin flows cap the year at +5 and
// require everything. See internal/validate/policy.go.

// RegisterInput is the self-registration form payload.
type RegisterInput struct {
	Name             string `json:"name" validate:"notblank"`
	Email            string `json:"email" validate:"notblank,emailshape"`
	Password         string `json:"password" validate:"notblank,minlen=6"`
	UniversityDegree string `json:"university_degree" validate:"notblank"`
	GraduationYear   string `json:"graduation_year" validate:"notblank,gradyear=10"`
}

// SelfUpdateInput is the edit-own-profile form payload. Degree and year may
// be left blank; the year is range-checked only when present.
type SelfUpdateInput struct {
	Name             string `json:"name" validate:"notblank"`
	UniversityDegree string `json:"university_degree"`
	GraduationYear   string `json:"graduation_year" validate:"omitempty,gradyear=10"`
}

// AdminCreateInput is the administrator add-user form payload.
type AdminCreateInput struct {
	Name             string `json:"name" validate:"notblank"`
	Email            string `json:"email" validate:"notblank,emailshape"`
	UniversityDegree string `json:"university_degree" validate:"notblank"`
	GraduationYear   string `json:"graduation_year" validate:"notblank,gradyear=5"`
}

// AdminUpdateInput is the administrator edit-user form payload.
type AdminUpdateInput struct {
	Name             string `json:"name" validate:"notblank"`
	UniversityDegree string `json:"university_degree" validate:"notblank"`
	GraduationYear   string `json:"graduation_year" validate:"notblank,gradyear=5"`
}

// formValues maps a flow input onto the reconciler's field names, raw as
// typed. Trimming happens on write, not on comparison, matching the screens.
func formValues(name, degree, year string) map[string]string {
	return map[string]string{
		form.FieldName:             name,
		form.FieldUniversityDegree: degree,
		form.FieldGraduationYear:   year,
	}
}

// AdminCreateResult carries the outcome of an admin-created account. The
// temporary password appears here exactly once and is never persisted on the
// record (deviation from the observed client, which stored it in plaintext).
type AdminCreateResult struct {
	Profile      *UserProfile
	TempPassword string
}

// Dashboard is what the home screen renders. When the user document is
// absent, Profile is synthesized from the identity provider's account info
// and Fallback is true.
type Dashboard struct {
	Profile  *UserProfile
	Fallback bool
}

// DirectoryStats are the counts shown on the stats panel.
type DirectoryStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Directory is the user-list screen payload.
type Directory struct {
	Profiles []*UserProfile
	Stats    DirectoryStats
}

func parseYear(value string) int64 {
	year, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return year
}

func timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
