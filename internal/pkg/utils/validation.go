package utils

import (
	"patholab-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("case_state", validateCaseState)
	validate.RegisterValidation("priority", validatePriority)
	validate.RegisterValidation("gender", validateGender)
	validate.RegisterValidation("care_type", validateCareType)
	validate.RegisterValidation("patient_code", validatePatientCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCaseState(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch value {
	case constvars.CaseStateInProcess, constvars.CaseStateToSign, constvars.CaseStateToDeliver, constvars.CaseStateCompleted:
		return true
	}
	return false
}

func validatePriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch value {
	case constvars.CasePriorityNormal, constvars.CasePriorityPriority, constvars.CasePriorityUrgent:
		return true
	}
	return false
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.GenderMale || value == constvars.GenderFemale
}

func validateCareType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.CareTypeAmbulatory || value == constvars.CareTypeHospitalized
}

func validatePatientCode(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexPatientCode).MatchString(fl.Field().String())
}
