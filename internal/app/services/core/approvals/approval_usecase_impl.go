package approvals

import (
	"context"
	"fmt"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type approvalUsecase struct {
	ApprovalRepository contracts.ApprovalRepository
	CaseRepository     contracts.CaseRepository
	CounterService     contracts.CounterService
	RedisRepository    contracts.RedisRepository
	EventPublisher     contracts.EventPublisher
	Log                *zap.Logger
}

func NewApprovalUsecase(
	approvalRepository contracts.ApprovalRepository,
	caseRepository contracts.CaseRepository,
	counterService contracts.CounterService,
	redisRepository contracts.RedisRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.ApprovalUsecase {
	return &approvalUsecase{
		ApprovalRepository: approvalRepository,
		CaseRepository:     caseRepository,
		CounterService:     counterService,
		RedisRepository:    redisRepository,
		EventPublisher:     eventPublisher,
		Log:                logger,
	}
}

// CreateApproval opens a complementary-test request against an existing case.
// At most one active approval per original case.
func (uc *approvalUsecase) CreateApproval(ctx context.Context, request *requests.CreateApproval) (*models.Approval, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.CreateApproval called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseCodeKey, request.OriginalCaseCode),
	)

	originalCase, err := uc.CaseRepository.FindByCaseCode(ctx, request.OriginalCaseCode)
	if err != nil {
		return nil, err
	}
	if originalCase == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	active, err := uc.ApprovalRepository.FindActiveByOriginalCase(ctx, request.OriginalCaseCode)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, exceptions.ErrApprovalAlreadyActive()
	}

	now := time.Now().UTC()
	approvalCode, err := uc.CounterService.NextApprovalCode(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	approval := &models.Approval{
		ApprovalCode:       approvalCode,
		OriginalCaseCode:   request.OriginalCaseCode,
		ApprovalState:      constvars.ApprovalStateRequestMade,
		ComplementaryTests: buildComplementaryTests(request.ComplementaryTests),
		ApprovalInfo: models.ApprovalInfo{
			Reason:              request.Reason,
			AssignedPathologist: originalCase.AssignedPathologist,
		},
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if _, err := uc.ApprovalRepository.CreateApproval(ctx, approval); err != nil {
		return nil, err
	}
	return approval, nil
}

func (uc *approvalUsecase) GetApproval(ctx context.Context, approvalCode string) (*models.Approval, error) {
	approval, err := uc.ApprovalRepository.FindByApprovalCode(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}
	return approval, nil
}

func (uc *approvalUsecase) ListApprovals(ctx context.Context, filter *requests.ApprovalFilter) ([]models.Approval, int, error) {
	return uc.ApprovalRepository.FindApprovals(ctx, filter)
}

func (uc *approvalUsecase) UpdateApproval(ctx context.Context, approvalCode string, request *requests.UpdateApproval) (*models.Approval, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	expectedUpdatedAt := approval.UpdatedAt

	if approval.ApprovalState != constvars.ApprovalStateRequestMade {
		return nil, exceptions.ErrApprovalNotEditable()
	}

	if request.ComplementaryTests != nil {
		approval.ComplementaryTests = buildComplementaryTests(request.ComplementaryTests)
	}
	if request.Reason != nil {
		approval.ApprovalInfo.Reason = *request.Reason
	}
	approval.UpdatedAt = time.Now().UTC()

	if err := uc.ApprovalRepository.ReplaceApproval(ctx, approval, expectedUpdatedAt); err != nil {
		return nil, err
	}
	return approval, nil
}

// ManageApproval moves a fresh request into the review queue.
func (uc *approvalUsecase) ManageApproval(ctx context.Context, approvalCode string) (*models.Approval, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	expectedUpdatedAt := approval.UpdatedAt

	if approval.ApprovalState != constvars.ApprovalStateRequestMade {
		return nil, exceptions.ErrApprovalInvalidTransition(approval.ApprovalState, constvars.ApprovalStatePendingApproval)
	}

	approval.ApprovalState = constvars.ApprovalStatePendingApproval
	approval.UpdatedAt = time.Now().UTC()

	if err := uc.ApprovalRepository.ReplaceApproval(ctx, approval, expectedUpdatedAt); err != nil {
		return nil, err
	}
	return approval, nil
}

// ApproveApproval reserves the derived case code on the approval, inserts the
// derived case, then flips the approval to Approved. If a step fails midway,
// a retry picks up the reserved code, skips the insert when the case already
// exists and only re-attempts the flip, so the operation is safe to repeat
// without minting a second case.
func (uc *approvalUsecase) ApproveApproval(ctx context.Context, approvalCode string) (*models.Approval, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	expectedUpdatedAt := approval.UpdatedAt

	if approval.ApprovalState == constvars.ApprovalStateApproved {
		return approval, nil
	}
	if approval.ApprovalState != constvars.ApprovalStatePendingApproval {
		return nil, exceptions.ErrApprovalInvalidTransition(approval.ApprovalState, constvars.ApprovalStateApproved)
	}

	originalCase, err := uc.CaseRepository.FindByCaseCode(ctx, approval.OriginalCaseCode)
	if err != nil {
		return nil, err
	}
	if originalCase == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	now := time.Now().UTC()
	if approval.DerivedCaseCode == "" {
		derivedCaseCode, err := uc.CounterService.NextCaseCode(ctx, now.Year())
		if err != nil {
			return nil, err
		}
		approval.DerivedCaseCode = derivedCaseCode
		approval.UpdatedAt = now
		if err := uc.ApprovalRepository.ReplaceApproval(ctx, approval, expectedUpdatedAt); err != nil {
			return nil, err
		}
		expectedUpdatedAt = approval.UpdatedAt
	}

	existingDerived, err := uc.CaseRepository.FindByCaseCode(ctx, approval.DerivedCaseCode)
	if err != nil {
		return nil, err
	}
	if existingDerived == nil {
		derivedCase := uc.buildDerivedCase(approval, originalCase, now)
		if _, err := uc.CaseRepository.CreateCase(ctx, derivedCase); err != nil {
			return nil, err
		}
	}

	approval.ApprovalState = constvars.ApprovalStateApproved
	approval.UpdatedAt = time.Now().UTC()
	if err := uc.ApprovalRepository.ReplaceApproval(ctx, approval, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.appendComplementaryTestsToOriginal(ctx, originalCase, approval.ComplementaryTests)

	if err := uc.EventPublisher.Publish(ctx, constvars.EventApprovalApproved, map[string]interface{}{
		"approval_code":      approval.ApprovalCode,
		"original_case_code": approval.OriginalCaseCode,
		"derived_case_code":  approval.DerivedCaseCode,
	}); err != nil {
		uc.Log.Warn("approvalUsecase failed to publish event",
			zap.String(constvars.LoggingApprovalCodeKey, approval.ApprovalCode),
			zap.Error(err),
		)
	}
	return approval, nil
}

// buildDerivedCase assembles the complementary case. It inherits the header
// of the original, keeps the original's first body region and carries the
// request reason as the patient observations.
func (uc *approvalUsecase) buildDerivedCase(approval *models.Approval, originalCase *models.Case, now time.Time) *models.Case {
	tests := make([]models.SampleTest, 0, len(approval.ComplementaryTests))
	for _, complementaryTest := range approval.ComplementaryTests {
		tests = append(tests, models.SampleTest{
			ID:       complementaryTest.Code,
			Name:     complementaryTest.Name,
			Quantity: complementaryTest.Quantity,
		})
	}

	bodyRegion := constvars.DefaultBodyRegion
	if len(originalCase.Samples) > 0 && originalCase.Samples[0].BodyRegion != "" {
		bodyRegion = originalCase.Samples[0].BodyRegion
	}

	patientInfo := originalCase.PatientInfo
	patientInfo.Observations = approval.ApprovalInfo.Reason

	return &models.Case{
		CaseCode:            approval.DerivedCaseCode,
		PatientInfo:         patientInfo,
		RequestingPhysician: originalCase.RequestingPhysician,
		Service:             originalCase.Service,
		Samples: []models.Sample{
			{BodyRegion: bodyRegion, Tests: tests},
		},
		AssignedPathologist: approval.ApprovalInfo.AssignedPathologist,
		State:               constvars.CaseStateInProcess,
		Priority:            originalCase.Priority,
		AdditionalNotes:     []models.AdditionalNote{},
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (uc *approvalUsecase) RejectApproval(ctx context.Context, approvalCode string) (*models.Approval, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	expectedUpdatedAt := approval.UpdatedAt

	// Rejection is allowed from any non-terminal state.
	if approval.ApprovalState != constvars.ApprovalStateRequestMade &&
		approval.ApprovalState != constvars.ApprovalStatePendingApproval {
		return nil, exceptions.ErrApprovalInvalidTransition(approval.ApprovalState, constvars.ApprovalStateRejected)
	}

	approval.ApprovalState = constvars.ApprovalStateRejected
	approval.UpdatedAt = time.Now().UTC()

	if err := uc.ApprovalRepository.ReplaceApproval(ctx, approval, expectedUpdatedAt); err != nil {
		return nil, err
	}
	return approval, nil
}

func (uc *approvalUsecase) DeleteApproval(ctx context.Context, approvalCode string) error {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return err
	}

	// An approved request already minted a case; it stays on record.
	if approval.ApprovalState == constvars.ApprovalStateApproved {
		return exceptions.ErrApprovalNotEditable()
	}
	return uc.ApprovalRepository.DeleteByApprovalCode(ctx, approvalCode)
}

// appendComplementaryTestsToOriginal refreshes the read-mostly cache on the
// original case. Failures are logged, not surfaced: the approvals collection
// stays authoritative.
func (uc *approvalUsecase) appendComplementaryTestsToOriginal(ctx context.Context, originalCase *models.Case, tests []models.ComplementaryTestRef) {
	expectedUpdatedAt := originalCase.UpdatedAt
	originalCase.ComplementaryTests = append(originalCase.ComplementaryTests, tests...)
	originalCase.UpdatedAt = time.Now().UTC()

	if err := uc.CaseRepository.ReplaceCase(ctx, originalCase, expectedUpdatedAt); err != nil {
		uc.Log.Warn("approvalUsecase failed to cache complementary tests on original case",
			zap.String(constvars.LoggingCaseCodeKey, originalCase.CaseCode),
			zap.Error(err),
		)
		return
	}

	cacheKey := fmt.Sprintf(constvars.RedisKeyCaseDetailFormat, originalCase.CaseCode)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("approvalUsecase failed to invalidate case cache",
			zap.String(constvars.LoggingCaseCodeKey, originalCase.CaseCode),
			zap.Error(err),
		)
	}
}

func buildComplementaryTests(testRequests []requests.ComplementaryTestRequest) []models.ComplementaryTestRef {
	tests := make([]models.ComplementaryTestRef, 0, len(testRequests))
	for _, testRequest := range testRequests {
		quantity := testRequest.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		tests = append(tests, models.ComplementaryTestRef{
			Code:     testRequest.Code,
			Name:     testRequest.Name,
			Quantity: quantity,
		})
	}
	return tests
}
