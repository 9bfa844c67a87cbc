package requests

type EntityInfoRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type CreatePatient struct {
	PatientCode          string            `json:"patient_code" validate:"required,patient_code"`
	IdentificationType   string            `json:"identification_type,omitempty"`
	IdentificationNumber string            `json:"identification_number,omitempty"`
	Name                 string            `json:"name" validate:"required"`
	Age                  int               `json:"age" validate:"gte=0,lte=150"`
	Gender               string            `json:"gender" validate:"required,gender"`
	EntityInfo           EntityInfoRequest `json:"entity_info" validate:"required"`
	CareType             string            `json:"care_type" validate:"required,care_type"`
	Observations         string            `json:"observations,omitempty"`
}

type UpdatePatient struct {
	Name         *string            `json:"name,omitempty"`
	Age          *int               `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender       *string            `json:"gender,omitempty" validate:"omitempty,gender"`
	EntityInfo   *EntityInfoRequest `json:"entity_info,omitempty"`
	CareType     *string            `json:"care_type,omitempty" validate:"omitempty,care_type"`
	Observations *string            `json:"observations,omitempty"`
}
