package contracts

import (
	"context"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/responses"
	"time"
)

// StatisticsRepository reads bounded case snapshots and runs the server-side
// aggregations the statistics engine builds on. All methods are read-only.
type StatisticsRepository interface {
	CountAllCases(ctx context.Context) (int, error)
	CountCasesCreatedBetween(ctx context.Context, from, to time.Time, pathologistID string) (int, error)
	CountCasesByState(ctx context.Context) (map[string]int, error)
	CountDistinctPatientsBetween(ctx context.Context, from, to time.Time, pathologistID string) (int, error)
	MonthlyCreatedCounts(ctx context.Context, year int, pathologistID string) ([]int, error)
	// FindCompletedSignedBetween returns completed cases whose signed_at
	// falls in [from, to), projected to the opportunity fields.
	FindCompletedSignedBetween(ctx context.Context, from, to time.Time, pathologistID string) ([]models.Case, error)
	FindCreatedBetween(ctx context.Context, from, to time.Time, pathologistID string) ([]models.Case, error)
	FindCasesWithTest(ctx context.Context, testID string) ([]models.Case, error)
	FindCasesForPathologist(ctx context.Context, pathologistID string) ([]models.Case, error)
	FindCasesWithEntity(ctx context.Context, entityName string) ([]models.Case, error)
}

type StatisticsUsecase interface {
	DashboardOverview(ctx context.Context) (*responses.DashboardOverview, error)
	CasesByMonth(ctx context.Context, year int, pathologistID string) (*responses.CasesByMonth, error)
	GeneralMetrics(ctx context.Context, pathologistID string) (*responses.GeneralMetrics, error)
	OpportunityGeneral(ctx context.Context, thresholdDays int, pathologistID string) (*responses.OpportunityGeneral, error)
	OpportunityMonthly(ctx context.Context, month, year, thresholdDays int, entityName, pathologistID string) (*responses.OpportunityMonthly, error)
	OpportunityYearly(ctx context.Context, year, thresholdDays int) ([]float64, error)
	EntityMonthlyPerformance(ctx context.Context, month, year int) (*responses.EntityMonthlyPerformance, error)
	EntityDetails(ctx context.Context, entityName string) (*responses.EntityDetails, error)
	TestMonthlyPerformance(ctx context.Context, month, year int, entityFilter string) (*responses.TestMonthlyPerformance, error)
	TestDetails(ctx context.Context, testID string, thresholdDays int) (*responses.TestDetails, error)
	TestPathologists(ctx context.Context, testID string, thresholdDays int) ([]responses.PathologistOpportunity, error)
	TestsOpportunitySummary(ctx context.Context, month, year, thresholdDays int) (*responses.TestsOpportunitySummary, error)
	TestsMonthlyTrends(ctx context.Context, year int) (*responses.TestsMonthlyTrends, error)
	PathologistPanel(ctx context.Context, pathologistID string, thresholdDays, year int) (*responses.PathologistPanel, error)
}
