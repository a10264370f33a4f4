package validation

import (
	"fmt"
	"strings"
)

// DefaultMessage maps a validator tag to a human readable message.
func DefaultMessage(field, tag, param string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "datetime":
		return fmt.Sprintf("%s must match the format %s", field, param)
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

// CustomMessage returns field-specific overrides for validation failures.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"UserID": {
			"required": "user_id must not be empty",
		},
		"Email": {
			"required": "email must not be empty",
			"email":    "email is not a valid address",
		},
		"PhoneNumber": {
			"required": "phone_number must not be empty",
			"numeric":  "phone_number must contain digits only",
		},
		"Password": {
			"required": "password must not be empty",
			"min":      "password must be at least 8 characters",
		},
		"Gender": {
			"oneof": "gender must be M or F",
		},
		"DOB": {
			"datetime": "dob must be in YYYY-MM-DD format",
		},
	}
	return customValidationMessages[field]
}

// Message resolves the custom override first and falls back to the default.
func Message(field, tag, param string) string {
	if overrides := CustomMessage(field); overrides != nil {
		if msg, ok := overrides[tag]; ok {
			return msg
		}
	}
	return DefaultMessage(field, tag, param)
}
