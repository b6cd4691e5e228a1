// File: internal/form/state.go
package form

// Field is a named form value.
type Field struct {
	Name  string
	Value string
}

// State holds the current values of a form's fields plus which single field,
// if any, has input focus. Field order is insertion order and is stable
// across updates, so iterating Fields is deterministic. State performs no
// validation; the submit path runs validation explicitly.
type State struct {
	names   []string
	values  map[string]string
	focused string
}

// NewState creates a form with the given fields, preserving their order.
// A later duplicate name overwrites the earlier value without changing the
// field's position.
func NewState(fields ...Field) *State {
	s := &State{values: make(map[string]string, len(fields))}
	for _, f := range fields {
		s.SetField(f.Name, f.Value)
	}
	return s
}

// SetField replaces one field's value, preserving all others. Setting a name
// not seen before appends it to the field order.
func (s *State) SetField(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Value returns the current value for a field, or "" if the field is unknown.
func (s *State) Value(name string) string {
	return s.values[name]
}

// SetFocus marks a single field as focused.
func (s *State) SetFocus(name string) {
	s.focused = name
}

// ClearFocus marks no field as focused.
func (s *State) ClearFocus() {
	s.focused = ""
}

// Focused returns the focused field name, if any.
func (s *State) Focused() (string, bool) {
	return s.focused, s.focused != ""
}

// Fields returns the fields in insertion order.
func (s *State) Fields() []Field {
	out := make([]Field, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, Field{Name: name, Value: s.values[name]})
	}
	return out
}

// Snapshot returns a copy of the current values, detached from the state.
func (s *State) Snapshot() map[string]string {
	out := make(map[string]string, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}
