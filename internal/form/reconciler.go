// File: internal/form/reconciler.go
package form

// Mutable profile fields compared by the reconciler. Email is deliberately
// absent: it is never editable after account creation, so a changed email
// value must not count as a meaningful edit.
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldUniversityDegree = "universityDegree"
	FieldGraduationYear   = "graduationYear"
)

// TrackedFields lists the editable profile fields, in form order.
var TrackedFields = []string{FieldName, FieldUniversityDegree, FieldGraduationYear}

// Reconciler decides whether the current form state differs meaningfully from
// the last-loaded remote snapshot. The save action is enabled only while
// HasChanges reports true; a submit on a clean form is rejected upstream with
// a distinct no-changes outcome instead of performing a write.
type Reconciler struct {
	snapshot map[string]string
	tracked  []string
}

// NewReconciler builds a reconciler over the given snapshot. When no tracked
// field names are passed, TrackedFields is used.
func NewReconciler(snapshot map[string]string, tracked ...string) *Reconciler {
	if len(tracked) == 0 {
		tracked = TrackedFields
	}
	copied := make(map[string]string, len(snapshot))
	for name, value := range snapshot {
		copied[name] = value
	}
	return &Reconciler{snapshot: copied, tracked: tracked}
}

// HasChanges reports whether any tracked field in the current values differs
// from the snapshot.
func (r *Reconciler) HasChanges(current map[string]string) bool {
	return len(r.ChangedFields(current)) > 0
}

// ChangedFields returns the tracked field names whose current value differs
// from the snapshot, in tracked order. Used by the discard-changes guard to
// tell the user what would be lost.
func (r *Reconciler) ChangedFields(current map[string]string) []string {
	var changed []string
	for _, name := range r.tracked {
		if current[name] != r.snapshot[name] {
			changed = append(changed, name)
		}
	}
	return changed
}
