package requests

type ComplementaryTestRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type CreateApproval struct {
	OriginalCaseCode   string                     `json:"original_case_code" validate:"required"`
	ComplementaryTests []ComplementaryTestRequest `json:"complementary_tests" validate:"required,min=1,dive"`
	Reason             string                     `json:"reason" validate:"required"`
}

type UpdateApproval struct {
	ComplementaryTests []ComplementaryTestRequest `json:"complementary_tests,omitempty" validate:"omitempty,min=1,dive"`
	Reason             *string                    `json:"reason,omitempty"`
}

type ApprovalFilter struct {
	State            string
	OriginalCaseCode string
	Skip             int
	Limit            int
}
