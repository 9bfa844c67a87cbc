package statistics

import (
	"context"
	"fmt"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/responses"
	"patholab-service/internal/pkg/exceptions"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type statisticsUsecase struct {
	StatisticsRepository  contracts.StatisticsRepository
	PathologistRepository contracts.PathologistRepository
	RedisRepository       contracts.RedisRepository
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewStatisticsUsecase(
	statisticsRepository contracts.StatisticsRepository,
	pathologistRepository contracts.PathologistRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.StatisticsUsecase {
	return &statisticsUsecase{
		StatisticsRepository:  statisticsRepository,
		PathologistRepository: pathologistRepository,
		RedisRepository:       redisRepository,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (uc *statisticsUsecase) thresholdOrDefault(thresholdDays int) int {
	if thresholdDays > 0 {
		return thresholdDays
	}
	if uc.InternalConfig.LIS.OpportunityThresholdDays > 0 {
		return uc.InternalConfig.LIS.OpportunityThresholdDays
	}
	return constvars.DefaultOpportunityThresholdDays
}

func (uc *statisticsUsecase) DashboardOverview(ctx context.Context) (*responses.DashboardOverview, error) {
	cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyDashboardOverview)
	if err == nil && cached != "" {
		var overview responses.DashboardOverview
		if err := json.Unmarshal([]byte(cached), &overview); err == nil {
			return &overview, nil
		}
	}

	now := time.Now().UTC()
	currentStart, currentEnd := monthWindow(now.Year(), now.Month())
	previousStart := currentStart.AddDate(0, -1, 0)

	total, err := uc.StatisticsRepository.CountAllCases(ctx)
	if err != nil {
		return nil, err
	}
	currentMonth, err := uc.StatisticsRepository.CountCasesCreatedBetween(ctx, currentStart, currentEnd, "")
	if err != nil {
		return nil, err
	}
	previousMonth, err := uc.StatisticsRepository.CountCasesCreatedBetween(ctx, previousStart, currentStart, "")
	if err != nil {
		return nil, err
	}
	byState, err := uc.StatisticsRepository.CountCasesByState(ctx)
	if err != nil {
		return nil, err
	}

	overview := &responses.DashboardOverview{
		TotalCases:         total,
		CasesCurrentMonth:  currentMonth,
		CasesPreviousMonth: previousMonth,
		PercentChange:      percentChange(previousMonth, currentMonth),
		CasesByState:       byState,
	}

	_ = uc.RedisRepository.Set(ctx, constvars.RedisKeyDashboardOverview, overview, constvars.CacheTTLStatisticsMinutes*time.Minute)
	return overview, nil
}

func (uc *statisticsUsecase) CasesByMonth(ctx context.Context, year int, pathologistID string) (*responses.CasesByMonth, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	cacheKey := fmt.Sprintf(constvars.RedisKeyCasesByMonth, year)
	if pathologistID == "" {
		cached, err := uc.RedisRepository.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var result responses.CasesByMonth
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
		}
	}

	counts, err := uc.StatisticsRepository.MonthlyCreatedCounts(ctx, year, pathologistID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	result := &responses.CasesByMonth{
		Data:  counts,
		Total: total,
		Year:  year,
	}

	if pathologistID == "" {
		_ = uc.RedisRepository.Set(ctx, cacheKey, result, constvars.CacheTTLMonthlyAggregateMinutes*time.Minute)
	}
	return result, nil
}

func (uc *statisticsUsecase) GeneralMetrics(ctx context.Context, pathologistID string) (*responses.GeneralMetrics, error) {
	now := time.Now().UTC()
	currentStart, currentEnd := monthWindow(now.Year(), now.Month())
	previousStart := currentStart.AddDate(0, -1, 0)

	monthly, err := uc.buildMetricWindow(ctx, previousStart, currentStart, currentStart, currentEnd, pathologistID)
	if err != nil {
		return nil, err
	}

	rollingEnd := now
	rollingStart := now.AddDate(0, 0, -30)
	rollingPrevStart := now.AddDate(0, 0, -60)

	rolling, err := uc.buildMetricWindow(ctx, rollingPrevStart, rollingStart, rollingStart, rollingEnd, pathologistID)
	if err != nil {
		return nil, err
	}

	return &responses.GeneralMetrics{
		Monthly:   *monthly,
		Rolling30: *rolling,
	}, nil
}

func (uc *statisticsUsecase) buildMetricWindow(ctx context.Context, prevFrom, prevTo, currFrom, currTo time.Time, pathologistID string) (*responses.MetricWindow, error) {
	currentPatients, err := uc.StatisticsRepository.CountDistinctPatientsBetween(ctx, currFrom, currTo, pathologistID)
	if err != nil {
		return nil, err
	}
	previousPatients, err := uc.StatisticsRepository.CountDistinctPatientsBetween(ctx, prevFrom, prevTo, pathologistID)
	if err != nil {
		return nil, err
	}
	currentCases, err := uc.StatisticsRepository.CountCasesCreatedBetween(ctx, currFrom, currTo, pathologistID)
	if err != nil {
		return nil, err
	}
	previousCases, err := uc.StatisticsRepository.CountCasesCreatedBetween(ctx, prevFrom, prevTo, pathologistID)
	if err != nil {
		return nil, err
	}

	return &responses.MetricWindow{
		CurrentPatients:       currentPatients,
		PreviousPatients:      previousPatients,
		PatientsPercentChange: percentChange(previousPatients, currentPatients),
		CurrentCases:          currentCases,
		PreviousCases:         previousCases,
		CasesPercentChange:    percentChange(previousCases, currentCases),
	}, nil
}

// OpportunityGeneral reports on the previous calendar month, the latest one
// with a complete signing record, compared against the month before it.
func (uc *statisticsUsecase) OpportunityGeneral(ctx context.Context, thresholdDays int, pathologistID string) (*responses.OpportunityGeneral, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)

	now := time.Now().UTC()
	currentStart, _ := monthWindow(now.Year(), now.Month())
	targetStart := currentStart.AddDate(0, -1, 0)
	previousStart := currentStart.AddDate(0, -2, 0)

	targetCases, err := uc.StatisticsRepository.FindCompletedSignedBetween(ctx, targetStart, currentStart, pathologistID)
	if err != nil {
		return nil, err
	}
	previousCases, err := uc.StatisticsRepository.FindCompletedSignedBetween(ctx, previousStart, targetStart, pathologistID)
	if err != nil {
		return nil, err
	}

	current := buildOpportunitySummary(targetCases, thresholdDays)
	previous := buildOpportunitySummary(previousCases, thresholdDays)

	return &responses.OpportunityGeneral{
		Month:         int(targetStart.Month()),
		Year:          targetStart.Year(),
		ThresholdDays: thresholdDays,
		Current:       current,
		Previous:      previous,
		PercentChange: percentChangeFloat(previous.OpportunityPercent, current.OpportunityPercent),
	}, nil
}

func (uc *statisticsUsecase) OpportunityMonthly(ctx context.Context, month, year, thresholdDays int, entityName, pathologistID string) (*responses.OpportunityMonthly, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)
	now := time.Now().UTC()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	from, to := monthWindow(year, time.Month(month))
	caseModels, err := uc.StatisticsRepository.FindCompletedSignedBetween(ctx, from, to, pathologistID)
	if err != nil {
		return nil, err
	}
	if entityName != "" {
		caseModels = filterByEntity(caseModels, entityName)
	}

	return &responses.OpportunityMonthly{
		Month:         month,
		Year:          year,
		ThresholdDays: thresholdDays,
		Summary:       buildOpportunitySummary(caseModels, thresholdDays),
		ByTest:        groupOpportunityByTest(caseModels, thresholdDays),
		ByPathologist: groupOpportunityByPathologist(caseModels, thresholdDays),
	}, nil
}

// OpportunityYearly returns one opportunity percentage per calendar month,
// rounded to one decimal for the yearly chart.
func (uc *statisticsUsecase) OpportunityYearly(ctx context.Context, year, thresholdDays int) ([]float64, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	percents := make([]float64, 12)
	for month := 1; month <= 12; month++ {
		from, to := monthWindow(year, time.Month(month))
		caseModels, err := uc.StatisticsRepository.FindCompletedSignedBetween(ctx, from, to, "")
		if err != nil {
			return nil, err
		}
		percents[month-1] = round1(buildOpportunitySummary(caseModels, thresholdDays).OpportunityPercent)
	}
	return percents, nil
}

func (uc *statisticsUsecase) EntityMonthlyPerformance(ctx context.Context, month, year int) (*responses.EntityMonthlyPerformance, error) {
	now := time.Now().UTC()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	// The universe is completed cases signed inside the month; cases without
	// an entity on record are left out.
	from, to := monthWindow(year, time.Month(month))
	caseModels, err := uc.StatisticsRepository.FindCompletedSignedBetween(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	type entityAccumulator struct {
		ambulatory   int
		hospitalized int
		completed    int
		totalDays    int
		daysSamples  int
	}
	buckets := make(map[string]*entityAccumulator)
	for i := range caseModels {
		entityName := caseModels[i].PatientInfo.EntityInfo.Name
		if entityName == "" {
			continue
		}
		bucket, exists := buckets[entityName]
		if !exists {
			bucket = &entityAccumulator{}
			buckets[entityName] = bucket
		}
		switch caseModels[i].PatientInfo.CareType {
		case constvars.CareTypeHospitalized:
			bucket.hospitalized++
		default:
			bucket.ambulatory++
		}
		bucket.completed++
		if days, ok := turnaroundDays(&caseModels[i]); ok {
			bucket.totalDays += days
			bucket.daysSamples++
		}
	}

	entities := make([]responses.EntityPerformance, 0, len(buckets))
	summary := responses.EntityPerformanceSummary{TotalEntities: len(buckets)}
	weightedDays := 0
	weightedSamples := 0
	for entityName, bucket := range buckets {
		average := 0.0
		if bucket.daysSamples > 0 {
			average = round2(float64(bucket.totalDays) / float64(bucket.daysSamples))
		}
		entities = append(entities, responses.EntityPerformance{
			EntityName:          entityName,
			Ambulatory:          bucket.ambulatory,
			Hospitalized:        bucket.hospitalized,
			Completed:           bucket.completed,
			AverageBusinessDays: average,
		})
		summary.TotalCompleted += bucket.completed
		weightedDays += bucket.totalDays
		weightedSamples += bucket.daysSamples
	}
	if weightedSamples > 0 {
		summary.WeightedAverageDays = round2(float64(weightedDays) / float64(weightedSamples))
	}

	sort.Slice(entities, func(i, j int) bool {
		totalI := entities[i].Ambulatory + entities[i].Hospitalized
		totalJ := entities[j].Ambulatory + entities[j].Hospitalized
		if totalI != totalJ {
			return totalI > totalJ
		}
		return entities[i].EntityName < entities[j].EntityName
	})

	return &responses.EntityMonthlyPerformance{
		Month:    month,
		Year:     year,
		Entities: entities,
		Summary:  summary,
	}, nil
}

func (uc *statisticsUsecase) EntityDetails(ctx context.Context, entityName string) (*responses.EntityDetails, error) {
	if entityName == "" {
		return nil, exceptions.ErrEntityNotFound(nil)
	}

	caseModels, err := uc.StatisticsRepository.FindCasesWithEntity(ctx, entityName)
	if err != nil {
		return nil, err
	}

	details := &responses.EntityDetails{
		EntityName: entityName,
		TotalCases: len(caseModels),
	}

	minDays, maxDays, totalDays, samples := 0, 0, 0, 0
	testRequests := make(map[string]*responses.TestRequestCount)
	for i := range caseModels {
		if caseModels[i].State == constvars.CaseStateCompleted {
			details.CompletedCases++
			if days, ok := turnaroundDays(&caseModels[i]); ok {
				if samples == 0 || days < minDays {
					minDays = days
				}
				if days > maxDays {
					maxDays = days
				}
				totalDays += days
				samples++
			}
		} else {
			details.PendingCases++
		}

		for _, sample := range caseModels[i].Samples {
			for _, test := range sample.Tests {
				entry, exists := testRequests[test.ID]
				if !exists {
					entry = &responses.TestRequestCount{TestID: test.ID, TestName: test.Name}
					testRequests[test.ID] = entry
				}
				quantity := test.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				entry.Requests += quantity
			}
		}
	}

	if samples > 0 {
		details.ProcessingTimes = responses.ProcessingTimeStats{
			MinDays:     minDays,
			MaxDays:     maxDays,
			AverageDays: round2(float64(totalDays) / float64(samples)),
		}
	}

	topTests := make([]responses.TestRequestCount, 0, len(testRequests))
	for _, entry := range testRequests {
		topTests = append(topTests, *entry)
	}
	sort.Slice(topTests, func(i, j int) bool {
		if topTests[i].Requests != topTests[j].Requests {
			return topTests[i].Requests > topTests[j].Requests
		}
		return topTests[i].TestID < topTests[j].TestID
	})
	if len(topTests) > 10 {
		topTests = topTests[:10]
	}
	details.TopTests = topTests

	return details, nil
}

func (uc *statisticsUsecase) TestMonthlyPerformance(ctx context.Context, month, year int, entityFilter string) (*responses.TestMonthlyPerformance, error) {
	now := time.Now().UTC()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	from, to := monthWindow(year, time.Month(month))
	caseModels, err := uc.StatisticsRepository.FindCreatedBetween(ctx, from, to, "")
	if err != nil {
		return nil, err
	}
	if entityFilter != "" {
		caseModels = filterByEntity(caseModels, entityFilter)
	}

	type testAccumulator struct {
		name        string
		requested   int
		completed   int
		totalDays   int
		daysSamples int
	}
	buckets := make(map[string]*testAccumulator)
	for i := range caseModels {
		completed := caseModels[i].State == constvars.CaseStateCompleted
		days, hasDays := turnaroundDays(&caseModels[i])
		for _, sample := range caseModels[i].Samples {
			for _, test := range sample.Tests {
				bucket, exists := buckets[test.ID]
				if !exists {
					bucket = &testAccumulator{name: test.Name}
					buckets[test.ID] = bucket
				}
				quantity := test.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				bucket.requested += quantity
				if completed {
					bucket.completed += quantity
					if hasDays {
						bucket.totalDays += days
						bucket.daysSamples++
					}
				}
			}
		}
	}

	tests := make([]responses.TestPerformance, 0, len(buckets))
	for testID, bucket := range buckets {
		average := 0.0
		if bucket.daysSamples > 0 {
			average = round2(float64(bucket.totalDays) / float64(bucket.daysSamples))
		}
		completionPercent := 0.0
		if bucket.requested > 0 {
			completionPercent = round2(float64(bucket.completed) / float64(bucket.requested) * 100)
		}
		tests = append(tests, responses.TestPerformance{
			TestID:              testID,
			TestName:            bucket.name,
			TotalRequested:      bucket.requested,
			TotalCompleted:      bucket.completed,
			AverageBusinessDays: average,
			CompletionPercent:   completionPercent,
		})
	}
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].TotalRequested != tests[j].TotalRequested {
			return tests[i].TotalRequested > tests[j].TotalRequested
		}
		return tests[i].TestID < tests[j].TestID
	})

	return &responses.TestMonthlyPerformance{
		Month:  month,
		Year:   year,
		Entity: entityFilter,
		Tests:  tests,
	}, nil
}

func (uc *statisticsUsecase) TestDetails(ctx context.Context, testID string, thresholdDays int) (*responses.TestDetails, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)

	caseModels, err := uc.StatisticsRepository.FindCasesWithTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if len(caseModels) == 0 {
		return nil, exceptions.ErrTestNotFound(nil)
	}

	details := &responses.TestDetails{TestID: testID}
	minDays, maxDays, totalDays, samples := 0, 0, 0, 0
	var completedCases []models.Case

	for i := range caseModels {
		requested := 0
		for _, sample := range caseModels[i].Samples {
			for _, test := range sample.Tests {
				if test.ID != testID {
					continue
				}
				if details.TestName == "" {
					details.TestName = test.Name
				}
				quantity := test.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				requested += quantity
			}
		}
		details.TotalRequested += requested

		if caseModels[i].State != constvars.CaseStateCompleted {
			continue
		}
		details.TotalCompleted += requested
		completedCases = append(completedCases, caseModels[i])

		if days, ok := turnaroundDays(&caseModels[i]); ok {
			if days <= thresholdDays {
				details.WithinThreshold++
			} else {
				details.OutOfThreshold++
			}
			if samples == 0 || days < minDays {
				minDays = days
			}
			if days > maxDays {
				maxDays = days
			}
			totalDays += days
			samples++
		}
	}

	if samples > 0 {
		details.ProcessingTimes = responses.ProcessingTimeStats{
			MinDays:     minDays,
			MaxDays:     maxDays,
			AverageDays: round2(float64(totalDays) / float64(samples)),
		}
	}
	details.ByPathologist = groupOpportunityByPathologist(completedCases, thresholdDays)

	return details, nil
}

func (uc *statisticsUsecase) TestPathologists(ctx context.Context, testID string, thresholdDays int) ([]responses.PathologistOpportunity, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)

	caseModels, err := uc.StatisticsRepository.FindCasesWithTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	var completedCases []models.Case
	for i := range caseModels {
		if caseModels[i].State == constvars.CaseStateCompleted {
			completedCases = append(completedCases, caseModels[i])
		}
	}
	return groupOpportunityByPathologist(completedCases, thresholdDays), nil
}

func (uc *statisticsUsecase) TestsOpportunitySummary(ctx context.Context, month, year, thresholdDays int) (*responses.TestsOpportunitySummary, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)
	now := time.Now().UTC()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	from, to := monthWindow(year, time.Month(month))
	caseModels, err := uc.StatisticsRepository.FindCompletedSignedBetween(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	return &responses.TestsOpportunitySummary{
		ThresholdDays: thresholdDays,
		Month:         month,
		Year:          year,
		Tests:         groupOpportunityByTest(caseModels, thresholdDays),
	}, nil
}

func (uc *statisticsUsecase) TestsMonthlyTrends(ctx context.Context, year int) (*responses.TestsMonthlyTrends, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	caseModels, err := uc.StatisticsRepository.FindCreatedBetween(ctx, yearStart, yearStart.AddDate(1, 0, 0), "")
	if err != nil {
		return nil, err
	}

	trends := make(map[string][]int)
	totals := make(map[string]*responses.TestRequestCount)
	for i := range caseModels {
		monthIndex := int(caseModels[i].CreatedAt.UTC().Month()) - 1
		for _, sample := range caseModels[i].Samples {
			for _, test := range sample.Tests {
				if _, exists := trends[test.ID]; !exists {
					trends[test.ID] = make([]int, 12)
				}
				quantity := test.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				trends[test.ID][monthIndex] += quantity

				entry, exists := totals[test.ID]
				if !exists {
					entry = &responses.TestRequestCount{TestID: test.ID, TestName: test.Name}
					totals[test.ID] = entry
				}
				entry.Requests += quantity
			}
		}
	}

	tests := make([]responses.TestRequestCount, 0, len(totals))
	for _, entry := range totals {
		tests = append(tests, *entry)
	}
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].Requests != tests[j].Requests {
			return tests[i].Requests > tests[j].Requests
		}
		return tests[i].TestID < tests[j].TestID
	})

	return &responses.TestsMonthlyTrends{
		Year:   year,
		Trends: trends,
		Tests:  tests,
	}, nil
}

func (uc *statisticsUsecase) PathologistPanel(ctx context.Context, pathologistID string, thresholdDays, year int) (*responses.PathologistPanel, error) {
	thresholdDays = uc.thresholdOrDefault(thresholdDays)
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	pathologist, err := uc.PathologistRepository.FindByPathologistCode(ctx, pathologistID)
	if err != nil {
		return nil, err
	}
	if pathologist == nil {
		return nil, exceptions.ErrPathologistNotFound(nil)
	}

	caseModels, err := uc.StatisticsRepository.FindCasesForPathologist(ctx, pathologistID)
	if err != nil {
		return nil, err
	}

	entityCounts := make(map[string]int)
	testCounts := make(map[string]*responses.TestRequestCount)
	monthlyTrends := make([]int, 12)
	var completedCases []models.Case

	for i := range caseModels {
		entityCounts[caseModels[i].PatientInfo.EntityInfo.Name]++
		createdAt := caseModels[i].CreatedAt.UTC()
		if createdAt.Year() == year {
			monthlyTrends[int(createdAt.Month())-1]++
		}
		if caseModels[i].State == constvars.CaseStateCompleted {
			completedCases = append(completedCases, caseModels[i])
		}

		for _, sample := range caseModels[i].Samples {
			for _, test := range sample.Tests {
				entry, exists := testCounts[test.ID]
				if !exists {
					entry = &responses.TestRequestCount{TestID: test.ID, TestName: test.Name}
					testCounts[test.ID] = entry
				}
				quantity := test.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				entry.Requests += quantity
			}
		}
	}

	entities := make([]responses.EntityCaseCount, 0, len(entityCounts))
	for entityName, count := range entityCounts {
		entities = append(entities, responses.EntityCaseCount{EntityName: entityName, Cases: count})
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Cases != entities[j].Cases {
			return entities[i].Cases > entities[j].Cases
		}
		return entities[i].EntityName < entities[j].EntityName
	})

	tests := make([]responses.TestRequestCount, 0, len(testCounts))
	for _, entry := range testCounts {
		tests = append(tests, *entry)
	}
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].Requests != tests[j].Requests {
			return tests[i].Requests > tests[j].Requests
		}
		return tests[i].TestID < tests[j].TestID
	})

	return &responses.PathologistPanel{
		PathologistID:   pathologistID,
		PathologistName: pathologist.Name,
		Entities:        entities,
		Tests:           tests,
		Opportunity:     buildOpportunitySummary(completedCases, thresholdDays),
		MonthlyTrends:   monthlyTrends,
	}, nil
}

func filterByEntity(caseModels []models.Case, entityName string) []models.Case {
	filtered := caseModels[:0:0]
	for i := range caseModels {
		if caseModels[i].PatientInfo.EntityInfo.Name == entityName {
			filtered = append(filtered, caseModels[i])
		}
	}
	return filtered
}
