package requests

import "time"

type UnreadCaseTestRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name,omitempty"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type UnreadCaseTestGroupRequest struct {
	Type  string                  `json:"type" validate:"required,oneof=LowComplexityIHQ HighComplexityIHQ SpecialIHQ Histochemistry"`
	Tests []UnreadCaseTestRequest `json:"tests" validate:"required,min=1,dive"`
}

type CreateUnreadCase struct {
	CaseCode       string                       `json:"case_code,omitempty"`
	IsSpecialCase  bool                         `json:"is_special_case"`
	PatientName    string                       `json:"patient_name,omitempty"`
	PatientCode    string                       `json:"patient_code,omitempty"`
	EntityCode     string                       `json:"entity_code,omitempty"`
	EntityName     string                       `json:"entity_name,omitempty"`
	Institution    string                       `json:"institution,omitempty"`
	TestGroups     []UnreadCaseTestGroupRequest `json:"test_groups,omitempty" validate:"omitempty,dive"`
	NumberOfPlates int                          `json:"number_of_plates,omitempty" validate:"omitempty,gte=1"`
	EntryDate      *time.Time                   `json:"entry_date,omitempty"`
}

type UpdateUnreadCase struct {
	IsSpecialCase  *bool                        `json:"is_special_case,omitempty"`
	PatientName    *string                      `json:"patient_name,omitempty"`
	PatientCode    *string                      `json:"patient_code,omitempty"`
	EntityCode     *string                      `json:"entity_code,omitempty"`
	EntityName     *string                      `json:"entity_name,omitempty"`
	Institution    *string                      `json:"institution,omitempty"`
	TestGroups     []UnreadCaseTestGroupRequest `json:"test_groups,omitempty" validate:"omitempty,dive"`
	NumberOfPlates *int                         `json:"number_of_plates,omitempty" validate:"omitempty,gte=1"`
	EntryDate      *time.Time                   `json:"entry_date,omitempty"`
}

type BulkMarkDelivered struct {
	CaseCodes    []string   `json:"case_codes" validate:"required,min=1"`
	DeliveredTo  string     `json:"delivered_to" validate:"required"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
}

type UnreadCaseFilter struct {
	Search        string
	Institution   string
	TestGroupType string
	Status        string
	EntryDateFrom *time.Time
	EntryDateTo   *time.Time
	Skip          int
	Limit         int
	SortBy        string
	SortOrder     string
}
