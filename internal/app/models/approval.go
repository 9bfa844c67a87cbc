package models

// ApprovalInfo holds the request reason plus the pathologist snapshotted
// from the original case at creation.
type ApprovalInfo struct {
	Reason              string           `json:"reason" bson:"reason"`
	AssignedPathologist *PathologistInfo `json:"assigned_pathologist,omitempty" bson:"assigned_pathologist,omitempty"`
}

type Approval struct {
	ID                 string                 `json:"-" bson:"_id,omitempty"`
	ApprovalCode       string                 `json:"approval_code" bson:"approval_code"`
	OriginalCaseCode   string                 `json:"original_case_code" bson:"original_case_code"`
	ApprovalState      string                 `json:"approval_state" bson:"approval_state"`
	ComplementaryTests []ComplementaryTestRef `json:"complementary_tests" bson:"complementary_tests"`
	ApprovalInfo       ApprovalInfo           `json:"approval_info" bson:"approval_info"`
	// DerivedCaseCode is reserved before the derived case is inserted so a
	// retried approval never mints a second case.
	DerivedCaseCode string `json:"derived_case_code,omitempty" bson:"derived_case_code,omitempty"`
	TimeModel       `bson:",inline"`
}
