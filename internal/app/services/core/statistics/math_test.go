package statistics

import (
	"patholab-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func signedCase(businessDays int, tests ...models.SampleTest) models.Case {
	return models.Case{
		Samples:      []models.Sample{{BodyRegion: "General", Tests: tests}},
		BusinessDays: intPtr(businessDays),
	}
}

func TestPercentChange(t *testing.T) {
	t.Run("Zero Previous With Activity", func(t *testing.T) {
		assert.Equal(t, 100.0, percentChange(0, 42))
	})

	t.Run("Zero Previous Without Activity", func(t *testing.T) {
		assert.Equal(t, 0.0, percentChange(0, 0))
	})

	t.Run("Growth", func(t *testing.T) {
		assert.Equal(t, 50.0, percentChange(10, 15))
	})

	t.Run("Decline", func(t *testing.T) {
		assert.Equal(t, -25.0, percentChange(20, 15))
	})

	t.Run("Rounds To Two Decimals", func(t *testing.T) {
		assert.Equal(t, 33.33, percentChange(3, 4))
	})
}

func TestTurnaroundDays(t *testing.T) {
	t.Run("Frozen Figure Wins", func(t *testing.T) {
		signedAt := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
		c := models.Case{
			BusinessDays: intPtr(3),
			SignedAt:     &signedAt,
			TimeModel:    models.TimeModel{CreatedAt: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)},
		}
		days, ok := turnaroundDays(&c)
		assert.True(t, ok)
		assert.Equal(t, 3, days)
	})

	t.Run("Recomputed For Legacy Documents", func(t *testing.T) {
		c := models.Case{
			SignedAt:  timePtr(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)),
			TimeModel: models.TimeModel{CreatedAt: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)},
		}
		days, ok := turnaroundDays(&c)
		assert.True(t, ok)
		assert.Equal(t, 4, days)
	})

	t.Run("Unsigned Case Is Not Counted", func(t *testing.T) {
		c := models.Case{}
		_, ok := turnaroundDays(&c)
		assert.False(t, ok)
	})
}

func TestBuildOpportunitySummary(t *testing.T) {
	t.Run("Threshold Split", func(t *testing.T) {
		caseModels := []models.Case{
			signedCase(5),
			signedCase(9),
		}

		summary := buildOpportunitySummary(caseModels, 7)

		assert.Equal(t, 2, summary.Total)
		assert.Equal(t, 1, summary.WithinCount)
		assert.Equal(t, 1, summary.OutCount)
		assert.Equal(t, 50.0, summary.OpportunityPercent)
		assert.Equal(t, 7.0, summary.AverageDays)
	})

	t.Run("Threshold Boundary Counts As Within", func(t *testing.T) {
		summary := buildOpportunitySummary([]models.Case{signedCase(7)}, 7)
		assert.Equal(t, 1, summary.WithinCount)
		assert.Equal(t, 0, summary.OutCount)
	})

	t.Run("Empty Input", func(t *testing.T) {
		summary := buildOpportunitySummary(nil, 7)
		assert.Equal(t, 0, summary.Total)
		assert.Equal(t, 0.0, summary.OpportunityPercent)
		assert.Equal(t, 0.0, summary.AverageDays)
	})

	t.Run("Unsigned Cases Are Excluded", func(t *testing.T) {
		caseModels := []models.Case{
			signedCase(2),
			{}, // never signed
		}
		summary := buildOpportunitySummary(caseModels, 7)
		assert.Equal(t, 1, summary.Total)
	})
}

func TestGroupOpportunityByTest(t *testing.T) {
	biopsy := models.SampleTest{ID: "T-001", Name: "Biopsia simple", Quantity: 1}
	cytology := models.SampleTest{ID: "T-003", Name: "Citología", Quantity: 2}

	t.Run("Counts Once Per Distinct Test", func(t *testing.T) {
		c := models.Case{
			Samples: []models.Sample{
				{BodyRegion: "General", Tests: []models.SampleTest{biopsy}},
				{BodyRegion: "Gastric", Tests: []models.SampleTest{biopsy, cytology}},
			},
			BusinessDays: intPtr(4),
		}

		groups := groupOpportunityByTest([]models.Case{c}, 7)

		assert.Len(t, groups, 2)
		for _, group := range groups {
			assert.Equal(t, 1, group.Total, "each test should count the case once")
		}
	})

	t.Run("Sorted By Total Then ID", func(t *testing.T) {
		caseModels := []models.Case{
			signedCase(2, biopsy),
			signedCase(3, biopsy),
			signedCase(4, cytology),
		}

		groups := groupOpportunityByTest(caseModels, 7)

		assert.Len(t, groups, 2)
		assert.Equal(t, "T-001", groups[0].TestID)
		assert.Equal(t, 2, groups[0].Total)
		assert.Equal(t, "T-003", groups[1].TestID)
	})

	t.Run("Average Days Per Bucket", func(t *testing.T) {
		caseModels := []models.Case{
			signedCase(2, biopsy),
			signedCase(5, biopsy),
		}

		groups := groupOpportunityByTest(caseModels, 7)

		assert.Len(t, groups, 1)
		assert.Equal(t, 3.5, groups[0].AverageDays)
	})
}

func TestGroupOpportunityByPathologist(t *testing.T) {
	garcia := &models.PathologistInfo{ID: "PAT-01", Name: "Dra. García"}
	mejia := &models.PathologistInfo{ID: "PAT-02", Name: "Dr. Mejía"}

	t.Run("Unassigned Cases Are Skipped", func(t *testing.T) {
		caseModels := []models.Case{
			{AssignedPathologist: garcia, BusinessDays: intPtr(3)},
			{BusinessDays: intPtr(3)},
		}

		groups := groupOpportunityByPathologist(caseModels, 7)

		assert.Len(t, groups, 1)
		assert.Equal(t, "PAT-01", groups[0].PathologistID)
	})

	t.Run("Within And Out Split", func(t *testing.T) {
		caseModels := []models.Case{
			{AssignedPathologist: garcia, BusinessDays: intPtr(3)},
			{AssignedPathologist: garcia, BusinessDays: intPtr(12)},
			{AssignedPathologist: mejia, BusinessDays: intPtr(1)},
		}

		groups := groupOpportunityByPathologist(caseModels, 7)

		assert.Len(t, groups, 2)
		assert.Equal(t, "PAT-01", groups[0].PathologistID, "higher volume sorts first")
		assert.Equal(t, 1, groups[0].Within)
		assert.Equal(t, 1, groups[0].Out)
		assert.Equal(t, "PAT-02", groups[1].PathologistID)
	})
}
