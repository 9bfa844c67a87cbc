package constvars

const (
	URLParamCaseCode         = "case_code"
	URLParamApprovalCode     = "approval_code"
	URLParamTestCode         = "test_code"
	URLParamPathologistCode  = "pathologist_code"
	URLParamPatientCode      = "patient_code"
	URLParamYear             = "year"
)

const (
	URLQueryParamSkip          = "skip"
	URLQueryParamLimit         = "limit"
	URLQueryParamPage          = "page"
	URLQueryParamPageSize      = "page_size"
	URLQueryParamSearch        = "search"
	URLQueryParamState         = "state"
	URLQueryParamStatus        = "status"
	URLQueryParamPriority      = "priority"
	URLQueryParamPathologist   = "pathologist"
	URLQueryParamEntity        = "entity"
	URLQueryParamTest          = "test"
	URLQueryParamInstitution   = "institution"
	URLQueryParamTestGroupType = "test_group_type"
	URLQueryParamDateField     = "date_field"
	URLQueryParamDateFrom      = "date_from"
	URLQueryParamDateTo        = "date_to"
	URLQueryParamMonth         = "month"
	URLQueryParamYear          = "year"
	URLQueryParamThresholdDays = "threshold_days"
	URLQueryParamMinDays       = "min_days"
	URLQueryParamSortBy        = "sort_by"
	URLQueryParamSortOrder     = "sort_order"
)
