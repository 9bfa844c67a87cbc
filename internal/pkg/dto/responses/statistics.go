package responses

type DashboardOverview struct {
	TotalCases         int            `json:"total_cases"`
	CasesCurrentMonth  int            `json:"cases_current_month"`
	CasesPreviousMonth int            `json:"cases_previous_month"`
	PercentChange      float64        `json:"percent_change"`
	CasesByState       map[string]int `json:"cases_by_state"`
}

type CasesByMonth struct {
	Data  []int `json:"data"`
	Total int   `json:"total"`
	Year  int   `json:"year"`
}

// MetricWindow compares a current window against the previous one for
// distinct patients and case counts.
type MetricWindow struct {
	CurrentPatients        int     `json:"current_patients"`
	PreviousPatients       int     `json:"previous_patients"`
	PatientsPercentChange  float64 `json:"patients_percent_change"`
	CurrentCases           int     `json:"current_cases"`
	PreviousCases          int     `json:"previous_cases"`
	CasesPercentChange     float64 `json:"cases_percent_change"`
}

type GeneralMetrics struct {
	Monthly   MetricWindow `json:"monthly"`
	Rolling30 MetricWindow `json:"rolling_30_days"`
}

type OpportunitySummary struct {
	OpportunityPercent float64 `json:"opportunity_percent"`
	AverageDays        float64 `json:"average_days"`
	WithinCount        int     `json:"within_count"`
	OutCount           int     `json:"out_count"`
	Total              int     `json:"total"`
}

type OpportunityGeneral struct {
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	ThresholdDays int                `json:"threshold_days"`
	Current       OpportunitySummary `json:"current"`
	Previous      OpportunitySummary `json:"previous"`
	PercentChange float64            `json:"percent_change"`
}

type TestOpportunity struct {
	TestID      string  `json:"test_id"`
	TestName    string  `json:"test_name"`
	Within      int     `json:"within"`
	Out         int     `json:"out"`
	Total       int     `json:"total"`
	AverageDays float64 `json:"average_days"`
}

type PathologistOpportunity struct {
	PathologistID   string  `json:"pathologist_id"`
	PathologistName string  `json:"pathologist_name"`
	Within          int     `json:"within"`
	Out             int     `json:"out"`
	Total           int     `json:"total"`
	AverageDays     float64 `json:"average_days"`
}

type OpportunityMonthly struct {
	Month         int                      `json:"month"`
	Year          int                      `json:"year"`
	ThresholdDays int                      `json:"threshold_days"`
	Summary       OpportunitySummary       `json:"summary"`
	ByTest        []TestOpportunity        `json:"by_test"`
	ByPathologist []PathologistOpportunity `json:"by_pathologist"`
}

type EntityPerformance struct {
	EntityName          string  `json:"entity_name"`
	Ambulatory          int     `json:"ambulatory"`
	Hospitalized        int     `json:"hospitalized"`
	Completed           int     `json:"completed"`
	AverageBusinessDays float64 `json:"average_business_days"`
}

type EntityPerformanceSummary struct {
	TotalEntities        int     `json:"total_entities"`
	TotalCompleted       int     `json:"total_completed"`
	WeightedAverageDays  float64 `json:"weighted_average_days"`
}

type EntityMonthlyPerformance struct {
	Month    int                      `json:"month"`
	Year     int                      `json:"year"`
	Entities []EntityPerformance      `json:"entities"`
	Summary  EntityPerformanceSummary `json:"summary"`
}

type TestRequestCount struct {
	TestID   string `json:"test_id"`
	TestName string `json:"test_name"`
	Requests int    `json:"requests"`
}

type ProcessingTimeStats struct {
	MinDays     int     `json:"min_days"`
	MaxDays     int     `json:"max_days"`
	AverageDays float64 `json:"average_days"`
}

type EntityDetails struct {
	EntityName      string              `json:"entity_name"`
	TotalCases      int                 `json:"total_cases"`
	CompletedCases  int                 `json:"completed_cases"`
	PendingCases    int                 `json:"pending_cases"`
	ProcessingTimes ProcessingTimeStats `json:"processing_times"`
	TopTests        []TestRequestCount  `json:"top_tests"`
}

type TestPerformance struct {
	TestID              string  `json:"test_id"`
	TestName            string  `json:"test_name"`
	TotalRequested      int     `json:"total_requested"`
	TotalCompleted      int     `json:"total_completed"`
	AverageBusinessDays float64 `json:"average_business_days"`
	CompletionPercent   float64 `json:"completion_percent"`
}

type TestMonthlyPerformance struct {
	Month  int               `json:"month"`
	Year   int               `json:"year"`
	Entity string            `json:"entity,omitempty"`
	Tests  []TestPerformance `json:"tests"`
}

type TestDetails struct {
	TestID          string                   `json:"test_id"`
	TestName        string                   `json:"test_name"`
	TotalRequested  int                      `json:"total_requested"`
	TotalCompleted  int                      `json:"total_completed"`
	WithinThreshold int                      `json:"within_threshold"`
	OutOfThreshold  int                      `json:"out_of_threshold"`
	ProcessingTimes ProcessingTimeStats      `json:"processing_times"`
	ByPathologist   []PathologistOpportunity `json:"by_pathologist"`
}

type EntityCaseCount struct {
	EntityName string `json:"entity_name"`
	Cases      int    `json:"cases"`
}

type PathologistPanel struct {
	PathologistID   string             `json:"pathologist_id"`
	PathologistName string             `json:"pathologist_name"`
	Entities        []EntityCaseCount  `json:"entities"`
	Tests           []TestRequestCount `json:"tests"`
	Opportunity     OpportunitySummary `json:"opportunity"`
	MonthlyTrends   []int              `json:"monthly_trends"`
}

type TestsOpportunitySummary struct {
	ThresholdDays int               `json:"threshold_days"`
	Month         int               `json:"month"`
	Year          int               `json:"year"`
	Tests         []TestOpportunity `json:"tests"`
}

type TestsMonthlyTrends struct {
	Year   int                `json:"year"`
	Trends map[string][]int   `json:"trends"`
	Tests  []TestRequestCount `json:"tests"`
}
