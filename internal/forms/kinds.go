package forms

// ErrorKind classifies why a single field fails validation.
type ErrorKind string

const (
	KindNone     ErrorKind = ""
	KindRequired ErrorKind = "required"
	KindFormat   ErrorKind = "format"
	KindTooShort ErrorKind = "tooShort"
	KindMismatch ErrorKind = "mismatch"
)

// FieldErrors maps a field name to the kind of error it carries. Fields
// without error are absent.
type FieldErrors map[string]ErrorKind

func (e FieldErrors) Kind(field string) ErrorKind {
	return e[field]
}

func (e FieldErrors) set(field string, kind ErrorKind) {
	if kind != KindNone {
		e[field] = kind
	}
}

// FieldStatus is the display status of a field. It is derived from the
// touched flag and the current errors, never stored.
type FieldStatus int

const (
	StatusNeutral FieldStatus = iota
	StatusValid
	StatusInvalid
)

func (s FieldStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "neutral"
	}
}

// Class returns the css status class used by the templates.
func (s FieldStatus) Class() string {
	switch s {
	case StatusValid:
		return "success"
	case StatusInvalid:
		return "danger"
	default:
		return "basic"
	}
}

// Touched records which fields the user has interacted with.
type Touched map[string]bool

func (t Touched) Touch(fields ...string) {
	for _, field := range fields {
		t[field] = true
	}
}

func statusOf(touched Touched, failed bool, field string) FieldStatus {
	if !touched[field] {
		return StatusNeutral
	}
	if failed {
		return StatusInvalid
	}
	return StatusValid
}
