package forms

// Event is a single field edit coming from the user.
type Event struct {
	Field string `json:"field" form:"field"`
	Value string `json:"value" form:"value"`
}

func messagesOf(table map[string]map[ErrorKind]string, fields FieldErrors, cross FieldErrors) map[string]string {
	messages := make(map[string]string)
	for field, kind := range fields {
		messages[field] = table[field][kind]
	}
	// a field error takes precedence over a cross-field error on display
	for field, kind := range cross {
		if _, ok := messages[field]; !ok {
			messages[field] = table[field][kind]
		}
	}
	return messages
}
