package statistics

import (
	"math"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/responses"
	"patholab-service/internal/pkg/utils"
	"sort"
)

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// percentChange compares a current count against a previous one. A zero
// previous value has no meaningful ratio: the change reads as 100 when
// anything appeared, 0 when nothing did.
func percentChange(previous, current int) float64 {
	return percentChangeFloat(float64(previous), float64(current))
}

func percentChangeFloat(previous, current float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return round2((current - previous) / previous * 100)
}

// turnaroundDays reads the frozen business-day figure, recomputing it from
// the timestamps for documents signed before the field existed.
func turnaroundDays(caseModel *models.Case) (int, bool) {
	if caseModel.BusinessDays != nil {
		return *caseModel.BusinessDays, true
	}
	if caseModel.SignedAt != nil {
		return utils.BusinessDaysBetween(caseModel.CreatedAt, *caseModel.SignedAt), true
	}
	return 0, false
}

func buildOpportunitySummary(caseModels []models.Case, thresholdDays int) responses.OpportunitySummary {
	summary := responses.OpportunitySummary{}
	totalDays := 0
	for i := range caseModels {
		days, ok := turnaroundDays(&caseModels[i])
		if !ok {
			continue
		}
		summary.Total++
		totalDays += days
		if days <= thresholdDays {
			summary.WithinCount++
		} else {
			summary.OutCount++
		}
	}
	if summary.Total > 0 {
		summary.OpportunityPercent = round2(float64(summary.WithinCount) / float64(summary.Total) * 100)
		summary.AverageDays = round2(float64(totalDays) / float64(summary.Total))
	}
	return summary
}

type opportunityAccumulator struct {
	name      string
	within    int
	out       int
	total     int
	totalDays int
}

func (acc *opportunityAccumulator) add(days, thresholdDays int) {
	acc.total++
	acc.totalDays += days
	if days <= thresholdDays {
		acc.within++
	} else {
		acc.out++
	}
}

func (acc *opportunityAccumulator) averageDays() float64 {
	if acc.total == 0 {
		return 0
	}
	return round2(float64(acc.totalDays) / float64(acc.total))
}

// groupOpportunityByTest buckets signed cases per requested test. A case
// counts once per distinct test it carries.
func groupOpportunityByTest(caseModels []models.Case, thresholdDays int) []responses.TestOpportunity {
	buckets := make(map[string]*opportunityAccumulator)
	for i := range caseModels {
		days, ok := turnaroundDays(&caseModels[i])
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		for _, sample := range caseModels[i].Samples {
			for _, test := range sample.Tests {
				if seen[test.ID] {
					continue
				}
				seen[test.ID] = true
				bucket, exists := buckets[test.ID]
				if !exists {
					bucket = &opportunityAccumulator{name: test.Name}
					buckets[test.ID] = bucket
				}
				bucket.add(days, thresholdDays)
			}
		}
	}

	result := make([]responses.TestOpportunity, 0, len(buckets))
	for testID, bucket := range buckets {
		result = append(result, responses.TestOpportunity{
			TestID:      testID,
			TestName:    bucket.name,
			Within:      bucket.within,
			Out:         bucket.out,
			Total:       bucket.total,
			AverageDays: bucket.averageDays(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].TestID < result[j].TestID
	})
	return result
}

func groupOpportunityByPathologist(caseModels []models.Case, thresholdDays int) []responses.PathologistOpportunity {
	buckets := make(map[string]*opportunityAccumulator)
	for i := range caseModels {
		if caseModels[i].AssignedPathologist == nil {
			continue
		}
		days, ok := turnaroundDays(&caseModels[i])
		if !ok {
			continue
		}
		pathologistID := caseModels[i].AssignedPathologist.ID
		bucket, exists := buckets[pathologistID]
		if !exists {
			bucket = &opportunityAccumulator{name: caseModels[i].AssignedPathologist.Name}
			buckets[pathologistID] = bucket
		}
		bucket.add(days, thresholdDays)
	}

	result := make([]responses.PathologistOpportunity, 0, len(buckets))
	for pathologistID, bucket := range buckets {
		result = append(result, responses.PathologistOpportunity{
			PathologistID:   pathologistID,
			PathologistName: bucket.name,
			Within:          bucket.within,
			Out:             bucket.out,
			Total:           bucket.total,
			AverageDays:     bucket.averageDays(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].PathologistID < result[j].PathologistID
	})
	return result
}
