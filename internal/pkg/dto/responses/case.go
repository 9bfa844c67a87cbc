package responses

import (
	"patholab-service/internal/app/models"
	"time"
)

// UrgentCase decorates a pending case with its business-day age.
type UrgentCase struct {
	models.Case
	BusinessDaysPending int `json:"business_days_pending"`
}

// CaseRenderData is the denormalized read model the external PDF renderer
// consumes; rendering itself happens outside this service.
type CaseRenderData struct {
	CaseCode            string                  `json:"case_code"`
	Filename            string                  `json:"filename"`
	PatientInfo         models.PatientInfo      `json:"patient_info"`
	RequestingPhysician string                  `json:"requesting_physician,omitempty"`
	Service             string                  `json:"service,omitempty"`
	Samples             []models.Sample         `json:"samples"`
	Result              *models.CaseResult      `json:"result,omitempty"`
	AssignedPathologist *models.PathologistInfo `json:"assigned_pathologist,omitempty"`
	SignatureRef        string                  `json:"signature_ref,omitempty"`
	SignedAt            *time.Time              `json:"signed_at,omitempty"`
	BusinessDays        *int                    `json:"business_days,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
}

type BulkSyncResult struct {
	MatchedPathologists int   `json:"matched_pathologists"`
	UpdatedCases        int64 `json:"updated_cases"`
}
