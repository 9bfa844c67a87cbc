package requests

import "time"

type SampleTestRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type SampleRequest struct {
	BodyRegion string              `json:"body_region" validate:"required"`
	Tests      []SampleTestRequest `json:"tests" validate:"dive"`
}

type CreateCase struct {
	// CaseCode is normally allocated by the counter; seed flows may supply one.
	CaseCode            string          `json:"case_code,omitempty"`
	PatientCode         string          `json:"patient_code" validate:"required,patient_code"`
	RequestingPhysician string          `json:"requesting_physician,omitempty"`
	Service             string          `json:"service,omitempty"`
	Samples             []SampleRequest `json:"samples" validate:"required,min=1,dive"`
	Priority            string          `json:"priority,omitempty" validate:"omitempty,priority"`
	PathologistCode     string          `json:"pathologist_code,omitempty"`
	Observations        string          `json:"observations,omitempty"`
	// CreatedAt override is reserved for the seeding utilities.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type UpdateCase struct {
	RequestingPhysician *string         `json:"requesting_physician,omitempty"`
	Service             *string         `json:"service,omitempty"`
	Priority            *string         `json:"priority,omitempty" validate:"omitempty,priority"`
	State               *string         `json:"state,omitempty" validate:"omitempty,case_state"`
	Samples             []SampleRequest `json:"samples,omitempty" validate:"omitempty,min=1,dive"`
	PatientObservations *string         `json:"patient_observations,omitempty"`
}

type AssignPathologist struct {
	PathologistCode string `json:"pathologist_code" validate:"required"`
}

type CodedDiagnosisRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type UpdateResult struct {
	Method         []string               `json:"method,omitempty"`
	MacroResult    *string                `json:"macro_result,omitempty"`
	MicroResult    *string                `json:"micro_result,omitempty"`
	Diagnosis      *string                `json:"diagnosis,omitempty"`
	CIE10Diagnosis *CodedDiagnosisRequest `json:"cie10_diagnosis,omitempty"`
	CIEODiagnosis  *CodedDiagnosisRequest `json:"cieo_diagnosis,omitempty"`
	Observations   *string                `json:"observations,omitempty"`
}

type SignCase struct {
	CIE10Diagnosis *CodedDiagnosisRequest `json:"cie10_diagnosis,omitempty"`
	CIEODiagnosis  *CodedDiagnosisRequest `json:"cieo_diagnosis,omitempty"`
}

type DeliverCase struct {
	DeliveredTo string `json:"delivered_to" validate:"required"`
}

type AppendNote struct {
	Note string `json:"note" validate:"required"`
}

// CaseFilter carries the server-side list filters; zero values mean "no
// filter". Dates bound created_at unless SignedDateRange is set.
type CaseFilter struct {
	Search          string
	State           string
	Priority        string
	PathologistID   string
	EntityID        string
	EntityName      string
	PatientCode     string
	TestID          string
	DateFrom        *time.Time
	DateTo          *time.Time
	SignedDateRange bool
	Skip            int
	Limit           int
	SortBy          string
	SortOrder       string
}
