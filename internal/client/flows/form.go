package flows

// Field describes one input of a credential form.
type Field struct {
	// Name is the form-side field name (what the user fills in).
	Name string

	// BodyKey is the backend's name for this value. "" means same as Name;
	// "-" means the field is validated locally but never transmitted.
	BodyKey string

	// Label is shown when prompting for the value.
	Label string

	// Secret marks password-class fields (entered without echo).
	Secret bool

	Rules []Rule
}

// Form is an ordered set of fields with validation rules. A form instance
// is created fresh per screen visit and never persisted.
type Form struct {
	Fields []Field
}

// Validate runs every field's rules against values and returns the first
// failing message per field, keyed by field name. An empty map means the
// form may be submitted.
func (f Form) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, field := range f.Fields {
		for _, rule := range field.Rules {
			if msg := rule(values[field.Name], values); msg != "" {
				errs[field.Name] = msg
				break
			}
		}
	}
	return errs
}

// Body renames the form values to the backend's body keys, dropping fields
// marked as local-only.
func (f Form) Body(values map[string]string) map[string]string {
	body := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		if field.BodyKey == "-" {
			continue
		}
		key := field.BodyKey
		if key == "" {
			key = field.Name
		}
		body[key] = values[field.Name]
	}
	return body
}
