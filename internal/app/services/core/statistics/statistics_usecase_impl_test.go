package statistics

import (
	"context"
	"fmt"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type queryWindow struct {
	from time.Time
	to   time.Time
}

type fakeStatisticsRepository struct {
	signedByStart map[time.Time][]models.Case
	signedWindows []queryWindow
	createdCalls  int
	entityCases   []models.Case
}

func newFakeStatisticsRepository() *fakeStatisticsRepository {
	return &fakeStatisticsRepository{signedByStart: make(map[time.Time][]models.Case)}
}

func (f *fakeStatisticsRepository) CountAllCases(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeStatisticsRepository) CountCasesCreatedBetween(ctx context.Context, from, to time.Time, pathologistID string) (int, error) {
	return 0, nil
}

func (f *fakeStatisticsRepository) CountCasesByState(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func (f *fakeStatisticsRepository) CountDistinctPatientsBetween(ctx context.Context, from, to time.Time, pathologistID string) (int, error) {
	return 0, nil
}

func (f *fakeStatisticsRepository) MonthlyCreatedCounts(ctx context.Context, year int, pathologistID string) ([]int, error) {
	return make([]int, 12), nil
}

func (f *fakeStatisticsRepository) FindCompletedSignedBetween(ctx context.Context, from, to time.Time, pathologistID string) ([]models.Case, error) {
	f.signedWindows = append(f.signedWindows, queryWindow{from: from, to: to})
	return f.signedByStart[from], nil
}

func (f *fakeStatisticsRepository) FindCreatedBetween(ctx context.Context, from, to time.Time, pathologistID string) ([]models.Case, error) {
	f.createdCalls++
	return nil, nil
}

func (f *fakeStatisticsRepository) FindCasesWithTest(ctx context.Context, testID string) ([]models.Case, error) {
	return nil, nil
}

func (f *fakeStatisticsRepository) FindCasesForPathologist(ctx context.Context, pathologistID string) ([]models.Case, error) {
	return nil, nil
}

func (f *fakeStatisticsRepository) FindCasesWithEntity(ctx context.Context, entityName string) ([]models.Case, error) {
	return f.entityCases, nil
}

type fakePathologistRepository struct{}

func (f *fakePathologistRepository) CreatePathologist(ctx context.Context, pathologist *models.Pathologist) (string, error) {
	return "", nil
}

func (f *fakePathologistRepository) FindByPathologistCode(ctx context.Context, pathologistCode string) (*models.Pathologist, error) {
	return nil, nil
}

func (f *fakePathologistRepository) FindPathologists(ctx context.Context, activeOnly bool) ([]models.Pathologist, error) {
	return nil, nil
}

func (f *fakePathologistRepository) UpdateSignatureRef(ctx context.Context, pathologistCode, signatureRef string) error {
	return nil
}

type fakeRedisRepository struct{}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error { return nil }

type statisticsFixture struct {
	usecase   contracts.StatisticsUsecase
	statsRepo *fakeStatisticsRepository
}

func newStatisticsFixture() *statisticsFixture {
	statsRepo := newFakeStatisticsRepository()
	usecase := NewStatisticsUsecase(
		statsRepo,
		&fakePathologistRepository{},
		&fakeRedisRepository{},
		&config.InternalConfig{LIS: config.LIS{OpportunityThresholdDays: 7}},
		zap.NewNop(),
	)
	return &statisticsFixture{usecase: usecase, statsRepo: statsRepo}
}

func entityCase(entityName, careType string, businessDays int) models.Case {
	return models.Case{
		PatientInfo: models.PatientInfo{
			EntityInfo: models.EntityInfo{Name: entityName},
			CareType:   careType,
		},
		State:        constvars.CaseStateCompleted,
		BusinessDays: intPtr(businessDays),
	}
}

func TestDistinctPatientKey(t *testing.T) {
	t.Run("Falls Back Through Identification Fields", func(t *testing.T) {
		expr := distinctPatientKey["$switch"].(bson.M)

		branches := expr["branches"].([]bson.M)
		assert.Len(t, branches, 2)
		assert.Equal(t, "$patient_info.patient_code", branches[0]["then"])

		concat := branches[1]["then"].(bson.M)["$concat"].([]interface{})
		assert.Equal(t, []interface{}{
			"$patient_info.identification_type",
			"-",
			"$patient_info.identification_number",
		}, concat)

		assert.Equal(t, "$patient_info.identification_number", expr["default"])
	})
}

func TestOpportunityGeneral(t *testing.T) {
	ctx := context.Background()

	t.Run("Targets The Previous Calendar Month", func(t *testing.T) {
		fixture := newStatisticsFixture()

		now := time.Now().UTC()
		currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		targetStart := currentStart.AddDate(0, -1, 0)
		previousStart := currentStart.AddDate(0, -2, 0)

		fixture.statsRepo.signedByStart[targetStart] = []models.Case{signedCase(3)}
		fixture.statsRepo.signedByStart[previousStart] = []models.Case{signedCase(9)}

		result, err := fixture.usecase.OpportunityGeneral(ctx, 7, "")

		assert.NoError(t, err)
		assert.Equal(t, int(targetStart.Month()), result.Month)
		assert.Equal(t, targetStart.Year(), result.Year)
		assert.Equal(t, 1, result.Current.Total)
		assert.Equal(t, 100.0, result.Current.OpportunityPercent)
		assert.Equal(t, 0.0, result.Previous.OpportunityPercent)

		assert.Len(t, fixture.statsRepo.signedWindows, 2)
		assert.Equal(t, targetStart, fixture.statsRepo.signedWindows[0].from)
		assert.Equal(t, currentStart, fixture.statsRepo.signedWindows[0].to, "the window must close before the running month")
		assert.Equal(t, previousStart, fixture.statsRepo.signedWindows[1].from)
		assert.Equal(t, targetStart, fixture.statsRepo.signedWindows[1].to)
	})
}

func TestOpportunityYearly(t *testing.T) {
	ctx := context.Background()

	t.Run("Rounds To One Decimal", func(t *testing.T) {
		fixture := newStatisticsFixture()
		january := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		fixture.statsRepo.signedByStart[january] = []models.Case{
			signedCase(5),
			signedCase(5),
			signedCase(9),
		}

		percents, err := fixture.usecase.OpportunityYearly(ctx, 2025, 7)

		assert.NoError(t, err)
		assert.Len(t, percents, 12)
		assert.Equal(t, 66.7, percents[0])
		assert.Equal(t, 0.0, percents[1])
	})
}

func TestEntityMonthlyPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("Counts Completed Cases Signed In The Month", func(t *testing.T) {
		fixture := newStatisticsFixture()
		from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		fixture.statsRepo.signedByStart[from] = []models.Case{
			entityCase("Hospital Pablo Tobón Uribe", constvars.CareTypeAmbulatory, 4),
			entityCase("Hospital Pablo Tobón Uribe", constvars.CareTypeHospitalized, 6),
		}

		result, err := fixture.usecase.EntityMonthlyPerformance(ctx, 3, 2025)

		assert.NoError(t, err)
		assert.Equal(t, 0, fixture.statsRepo.createdCalls, "the universe is signed completed cases, not created ones")
		assert.Len(t, result.Entities, 1)
		assert.Equal(t, 1, result.Entities[0].Ambulatory)
		assert.Equal(t, 1, result.Entities[0].Hospitalized)
		assert.Equal(t, 2, result.Entities[0].Completed)
		assert.Equal(t, 5.0, result.Entities[0].AverageBusinessDays)
		assert.Equal(t, 1, result.Summary.TotalEntities)
		assert.Equal(t, 2, result.Summary.TotalCompleted)
	})

	t.Run("Cases Without An Entity Are Left Out", func(t *testing.T) {
		fixture := newStatisticsFixture()
		from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		fixture.statsRepo.signedByStart[from] = []models.Case{
			entityCase("Sura EPS", constvars.CareTypeAmbulatory, 3),
			entityCase("", constvars.CareTypeAmbulatory, 3),
		}

		result, err := fixture.usecase.EntityMonthlyPerformance(ctx, 3, 2025)

		assert.NoError(t, err)
		assert.Len(t, result.Entities, 1)
		assert.Equal(t, "Sura EPS", result.Entities[0].EntityName)
		assert.Equal(t, 1, result.Summary.TotalEntities)
	})
}

func TestEntityDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps The Ten Most Requested Tests", func(t *testing.T) {
		fixture := newStatisticsFixture()

		tests := make([]models.SampleTest, 0, 12)
		for i := 1; i <= 12; i++ {
			tests = append(tests, models.SampleTest{
				ID:       fmt.Sprintf("T-%02d", i),
				Name:     fmt.Sprintf("Técnica %02d", i),
				Quantity: i,
			})
		}
		fixture.statsRepo.entityCases = []models.Case{
			{
				PatientInfo:  models.PatientInfo{EntityInfo: models.EntityInfo{Name: "Sura EPS"}},
				State:        constvars.CaseStateCompleted,
				Samples:      []models.Sample{{BodyRegion: "General", Tests: tests}},
				BusinessDays: intPtr(4),
			},
		}

		details, err := fixture.usecase.EntityDetails(ctx, "Sura EPS")

		assert.NoError(t, err)
		assert.Len(t, details.TopTests, 10)
		assert.Equal(t, "T-12", details.TopTests[0].TestID, "highest request count sorts first")
		assert.Equal(t, "T-03", details.TopTests[9].TestID)
	})
}
