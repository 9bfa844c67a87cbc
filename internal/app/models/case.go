package models

import (
	"time"
)

// EntityInfo is the payer/institution snapshot embedded inside a patient
// snapshot. Snapshots are captured at case creation and never retroactively
// mutated by catalog edits.
type EntityInfo struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type PatientInfo struct {
	PatientCode          string     `json:"patient_code" bson:"patient_code"`
	IdentificationType   string     `json:"identification_type,omitempty" bson:"identification_type,omitempty"`
	IdentificationNumber string     `json:"identification_number,omitempty" bson:"identification_number,omitempty"`
	Name                 string     `json:"name" bson:"name"`
	Age                  int        `json:"age" bson:"age"`
	Gender               string     `json:"gender" bson:"gender"`
	EntityInfo           EntityInfo `json:"entity_info" bson:"entity_info"`
	CareType             string     `json:"care_type" bson:"care_type"`
	Observations         string     `json:"observations,omitempty" bson:"observations,omitempty"`
}

type SampleTest struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type Sample struct {
	BodyRegion string       `json:"body_region" bson:"body_region"`
	Tests      []SampleTest `json:"tests" bson:"tests"`
}

type PathologistInfo struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type CodedDiagnosis struct {
	Code string `json:"code" bson:"code"`
	Name string `json:"name" bson:"name"`
}

type CaseResult struct {
	Method         []string        `json:"method" bson:"method"`
	MacroResult    string          `json:"macro_result,omitempty" bson:"macro_result,omitempty"`
	MicroResult    string          `json:"micro_result,omitempty" bson:"micro_result,omitempty"`
	Diagnosis      string          `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	CIE10Diagnosis *CodedDiagnosis `json:"cie10_diagnosis,omitempty" bson:"cie10_diagnosis,omitempty"`
	CIEODiagnosis  *CodedDiagnosis `json:"cieo_diagnosis,omitempty" bson:"cieo_diagnosis,omitempty"`
	Observations   string          `json:"observations,omitempty" bson:"observations,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at" bson:"updated_at"`
}

// AdditionalNote entries are append-only; existing notes are immutable.
type AdditionalNote struct {
	Date    time.Time `json:"date" bson:"date"`
	Note    string    `json:"note" bson:"note"`
	AddedBy string    `json:"added_by,omitempty" bson:"added_by,omitempty"`
}

// ComplementaryTestRef is the read-mostly cache of approved complementary
// tests; the authoritative record lives in the approvals collection.
type ComplementaryTestRef struct {
	Code     string `json:"code" bson:"code"`
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type Case struct {
	ID                   string                 `json:"-" bson:"_id,omitempty"`
	CaseCode             string                 `json:"case_code" bson:"case_code"`
	PatientInfo          PatientInfo            `json:"patient_info" bson:"patient_info"`
	RequestingPhysician  string                 `json:"requesting_physician,omitempty" bson:"requesting_physician,omitempty"`
	Service              string                 `json:"service,omitempty" bson:"service,omitempty"`
	Samples              []Sample               `json:"samples" bson:"samples"`
	AssignedPathologist  *PathologistInfo       `json:"assigned_pathologist,omitempty" bson:"assigned_pathologist,omitempty"`
	State                string                 `json:"state" bson:"state"`
	Priority             string                 `json:"priority" bson:"priority"`
	Result               *CaseResult            `json:"result,omitempty" bson:"result,omitempty"`
	AdditionalNotes      []AdditionalNote       `json:"additional_notes" bson:"additional_notes"`
	ComplementaryTests   []ComplementaryTestRef `json:"complementary_tests,omitempty" bson:"complementary_tests,omitempty"`
	BusinessDays         *int                   `json:"business_days,omitempty" bson:"business_days,omitempty"`
	SignedAt             *time.Time             `json:"signed_at,omitempty" bson:"signed_at,omitempty"`
	DeliveredAt          *time.Time             `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	DeliveredTo          string                 `json:"delivered_to,omitempty" bson:"delivered_to,omitempty"`
	TimeModel            `bson:",inline"`
}

// Year extracts the allocation year from the case code, falling back to the
// creation timestamp when the code is malformed.
func (c *Case) Year() int {
	if len(c.CaseCode) >= 4 {
		year := 0
		for _, r := range c.CaseCode[:4] {
			if r < '0' || r > '9' {
				year = 0
				break
			}
			year = year*10 + int(r-'0')
		}
		if year > 0 {
			return year
		}
	}
	return c.CreatedAt.UTC().Year()
}

// TotalRequestedTests sums test quantities across all samples, counting a
// missing quantity as one request.
func (c *Case) TotalRequestedTests() int {
	total := 0
	for _, sample := range c.Samples {
		for _, test := range sample.Tests {
			if test.Quantity > 0 {
				total += test.Quantity
			} else {
				total++
			}
		}
	}
	return total
}
