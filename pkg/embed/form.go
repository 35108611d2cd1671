package embed

// Form is anything that can report the identifier of a hosted form. The
// builder keeps the reference and reads the identifier at render time, so
// changes made to the underlying value before rendering are observed.
type Form interface {
	FormID() string
}

// ID is a literal form identifier.
type ID string

// FormID implements Form.
func (id ID) FormID() string {
	return string(id)
}
