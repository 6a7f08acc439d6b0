package schema

import "fmt"

// FieldError reports access to an attribute name the type does not declare.
type FieldError struct {
	Type string
	Name string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: type %q has no field %q", e.Type, e.Name)
}

// TypeError reports a payload value whose shape does not match the field's
// expected structure, such as a boolean where a nested mapping was declared.
type TypeError struct {
	Field    string
	Expected string
	Value    any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("schema: field %q expects %s, got %T", e.Field, e.Expected, e.Value)
}

// ValueError reports an illegal assignment, such as setting a Constant field
// to anything other than its declared value.
type ValueError struct {
	Field  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
}

// ReferenceError reports a named type reference that could not be resolved
// against the registry at decode time.
type ReferenceError struct {
	Field  string
	Target string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("schema: field %q references unregistered type %q", e.Field, e.Target)
}
