package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"min":          "must be at least %s",
	"max":          "must be at most %s",
	"len":          "must be %s characters long",
	"oneof":        "must be one of [%s]",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"lt":           "must be less than %s",
	"lte":          "must be less than or equal to %s",
	"numeric":      "must be a number",
	"datetime":     "must be a valid date in format %s",
	"dive":         "contains an invalid element",
	"case_state":   "must be a valid case state",
	"priority":     "must be one of Normal, Priority or Urgent",
	"gender":       "must be either Male or Female",
	"care_type":    "must be either Ambulatory or Hospitalized",
	"patient_code": "must be a 6 to 12 digit document number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"oneof":    true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"datetime": true,
}
