package models

import "time"

type UnreadCaseTest struct {
	Code     string `json:"code" bson:"code"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type UnreadCaseTestGroup struct {
	Type  string           `json:"type" bson:"type"`
	Tests []UnreadCaseTest `json:"tests" bson:"tests"`
}

// UnreadCase tracks slide-only deliveries outside the main case lifecycle.
// It has its own TCYYYY-NNNNN code space and a two-state status.
type UnreadCase struct {
	ID             string                `json:"-" bson:"_id,omitempty"`
	CaseCode       string                `json:"case_code" bson:"case_code"`
	IsSpecialCase  bool                  `json:"is_special_case" bson:"is_special_case"`
	PatientName    string                `json:"patient_name,omitempty" bson:"patient_name,omitempty"`
	PatientCode    string                `json:"patient_code,omitempty" bson:"patient_code,omitempty"`
	EntityCode     string                `json:"entity_code,omitempty" bson:"entity_code,omitempty"`
	EntityName     string                `json:"entity_name,omitempty" bson:"entity_name,omitempty"`
	Institution    string                `json:"institution,omitempty" bson:"institution,omitempty"`
	TestGroups     []UnreadCaseTestGroup `json:"test_groups" bson:"test_groups"`
	NumberOfPlates int                   `json:"number_of_plates" bson:"number_of_plates"`
	Status         string                `json:"status" bson:"status"`
	DeliveredTo    string                `json:"delivered_to,omitempty" bson:"delivered_to,omitempty"`
	DeliveryDate   *time.Time            `json:"delivery_date,omitempty" bson:"delivery_date,omitempty"`
	EntryDate      *time.Time            `json:"entry_date,omitempty" bson:"entry_date,omitempty"`
	TimeModel      `bson:",inline"`
}

// PlateCount derives the number of plates from the test groups when the
// caller did not supply one.
func (u *UnreadCase) PlateCount() int {
	total := 0
	for _, group := range u.TestGroups {
		for _, test := range group.Tests {
			total += test.Quantity
		}
	}
	return total
}
