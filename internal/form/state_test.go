// File: internal/form/state_test.go
package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatePreservesInsertionOrder(t *testing.T) {
	s := NewState(
		Field{Name: "name", Value: "Jane"},
		Field{Name: "email", Value: "jane@example.com"},
		Field{Name: "universityDegree", Value: "CS"},
		Field{Name: "graduationYear", Value: "2020"},
	)

	got := s.Fields()
	names := make([]string, len(got))
	for i, f := range got {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"name", "email", "universityDegree", "graduationYear"}, names)

	// Updating a value must not move the field.
	s.SetField("email", "other@example.com")
	got = s.Fields()
	assert.Equal(t, "email", got[1].Name)
	assert.Equal(t, "other@example.com", got[1].Value)
}

func TestSetFieldReplacesOnlyOneEntry(t *testing.T) {
	s := NewState(Field{Name: "name", Value: "Jane"}, Field{Name: "universityDegree", Value: "CS"})

	s.SetField("name", "Janet")

	assert.Equal(t, "Janet", s.Value("name"))
	assert.Equal(t, "CS", s.Value("universityDegree"))
}

func TestSetFieldAppendsUnknownName(t *testing.T) {
	s := NewState(Field{Name: "name", Value: "Jane"})
	s.SetField("graduationYear", "2021")

	got := s.Fields()
	assert.Len(t, got, 2)
	assert.Equal(t, "graduationYear", got[1].Name)
}

func TestFocusTracking(t *testing.T) {
	s := NewState(Field{Name: "name"}, Field{Name: "email"})

	_, ok := s.Focused()
	assert.False(t, ok)

	s.SetFocus("email")
	focused, ok := s.Focused()
	assert.True(t, ok)
	assert.Equal(t, "email", focused)

	// Focus is single-valued; focusing another field moves it.
	s.SetFocus("name")
	focused, _ = s.Focused()
	assert.Equal(t, "name", focused)

	s.ClearFocus()
	_, ok = s.Focused()
	assert.False(t, ok)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewState(Field{Name: "name", Value: "Jane"})
	snap := s.Snapshot()

	s.SetField("name", "Janet")
	assert.Equal(t, "Jane", snap["name"])
}
