// Package form binds and validates submitted HTML form data. Validation
// never touches persistence beyond read-only lookups.
package form

// Errors holds validation messages keyed by field name. The empty key
// carries errors that are not tied to a single field.
type Errors map[string][]string

// NonField is the key for form-wide errors.
const NonField = ""

// Add records a message for the field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the messages recorded for the field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Has reports whether the field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Any reports whether any message was recorded.
func (e Errors) Any() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}
