package unreadcases

import (
	"context"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type unreadCaseUsecase struct {
	UnreadCaseRepository contracts.UnreadCaseRepository
	CounterService       contracts.CounterService
	Log                  *zap.Logger
}

func NewUnreadCaseUsecase(
	unreadCaseRepository contracts.UnreadCaseRepository,
	counterService contracts.CounterService,
	logger *zap.Logger,
) contracts.UnreadCaseUsecase {
	return &unreadCaseUsecase{
		UnreadCaseRepository: unreadCaseRepository,
		CounterService:       counterService,
		Log:                  logger,
	}
}

func (uc *unreadCaseUsecase) CreateUnreadCase(ctx context.Context, request *requests.CreateUnreadCase) (*models.UnreadCase, error) {
	now := time.Now().UTC()

	caseCode := request.CaseCode
	if caseCode == "" {
		var err error
		caseCode, err = uc.CounterService.NextUnreadCaseCode(ctx, now.Year())
		if err != nil {
			return nil, err
		}
	}

	entryDate := request.EntryDate
	if entryDate == nil {
		entryDate = &now
	}

	unreadCase := &models.UnreadCase{
		CaseCode:      caseCode,
		IsSpecialCase: request.IsSpecialCase,
		PatientName:   request.PatientName,
		PatientCode:   request.PatientCode,
		EntityCode:    request.EntityCode,
		EntityName:    request.EntityName,
		Institution:   request.Institution,
		TestGroups:    buildTestGroups(request.TestGroups),
		Status:        constvars.UnreadCaseStatusInProcess,
		EntryDate:     entryDate,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	unreadCase.NumberOfPlates = request.NumberOfPlates
	if unreadCase.NumberOfPlates <= 0 {
		unreadCase.NumberOfPlates = unreadCase.PlateCount()
	}

	if _, err := uc.UnreadCaseRepository.CreateUnreadCase(ctx, unreadCase); err != nil {
		return nil, err
	}
	return unreadCase, nil
}

func (uc *unreadCaseUsecase) ListUnreadCases(ctx context.Context, filter *requests.UnreadCaseFilter) ([]models.UnreadCase, int, error) {
	// The frontend filters by display name; storage holds the enum value.
	if mapped, ok := constvars.UnreadCaseTestGroupNames[filter.TestGroupType]; ok {
		filter.TestGroupType = mapped
	}
	return uc.UnreadCaseRepository.FindUnreadCases(ctx, filter)
}

func (uc *unreadCaseUsecase) UpdateUnreadCase(ctx context.Context, caseCode string, request *requests.UpdateUnreadCase) (*models.UnreadCase, error) {
	unreadCase, err := uc.UnreadCaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if unreadCase == nil {
		return nil, exceptions.ErrUnreadCaseNotFound(nil)
	}

	if request.IsSpecialCase != nil {
		unreadCase.IsSpecialCase = *request.IsSpecialCase
	}
	if request.PatientName != nil {
		unreadCase.PatientName = *request.PatientName
	}
	if request.PatientCode != nil {
		unreadCase.PatientCode = *request.PatientCode
	}
	if request.EntityCode != nil {
		unreadCase.EntityCode = *request.EntityCode
	}
	if request.EntityName != nil {
		unreadCase.EntityName = *request.EntityName
	}
	if request.Institution != nil {
		unreadCase.Institution = *request.Institution
	}
	if request.EntryDate != nil {
		unreadCase.EntryDate = request.EntryDate
	}
	if request.TestGroups != nil {
		unreadCase.TestGroups = buildTestGroups(request.TestGroups)
		// Plate count follows the groups unless explicitly overridden below.
		unreadCase.NumberOfPlates = unreadCase.PlateCount()
	}
	if request.NumberOfPlates != nil {
		unreadCase.NumberOfPlates = *request.NumberOfPlates
	}

	unreadCase.UpdatedAt = time.Now().UTC()
	if err := uc.UnreadCaseRepository.ReplaceUnreadCase(ctx, unreadCase); err != nil {
		return nil, err
	}
	return unreadCase, nil
}

func (uc *unreadCaseUsecase) BulkMarkDelivered(ctx context.Context, request *requests.BulkMarkDelivered) ([]models.UnreadCase, error) {
	deliveryDate := time.Now().UTC()
	if request.DeliveryDate != nil {
		deliveryDate = request.DeliveryDate.UTC()
	}

	updated, err := uc.UnreadCaseRepository.MarkDelivered(ctx, request.CaseCodes, request.DeliveredTo, deliveryDate)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, exceptions.ErrUnreadCaseNotFound(nil)
	}
	return updated, nil
}

func buildTestGroups(groupRequests []requests.UnreadCaseTestGroupRequest) []models.UnreadCaseTestGroup {
	groups := make([]models.UnreadCaseTestGroup, 0, len(groupRequests))
	for _, groupRequest := range groupRequests {
		tests := make([]models.UnreadCaseTest, 0, len(groupRequest.Tests))
		for _, testRequest := range groupRequest.Tests {
			quantity := testRequest.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			tests = append(tests, models.UnreadCaseTest{
				Code:     testRequest.Code,
				Name:     testRequest.Name,
				Quantity: quantity,
			})
		}
		groups = append(groups, models.UnreadCaseTestGroup{
			Type:  groupRequest.Type,
			Tests: tests,
		})
	}
	return groups
}
