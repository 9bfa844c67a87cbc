package cases

import (
	"context"
	"fmt"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/dto/responses"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type caseUsecase struct {
	CaseRepository        contracts.CaseRepository
	PatientRepository     contracts.PatientRepository
	PathologistRepository contracts.PathologistRepository
	CounterService        contracts.CounterService
	RedisRepository       contracts.RedisRepository
	EventPublisher        contracts.EventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewCaseUsecase(
	caseRepository contracts.CaseRepository,
	patientRepository contracts.PatientRepository,
	pathologistRepository contracts.PathologistRepository,
	counterService contracts.CounterService,
	redisRepository contracts.RedisRepository,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CaseUsecase {
	return &caseUsecase{
		CaseRepository:        caseRepository,
		PatientRepository:     patientRepository,
		PathologistRepository: pathologistRepository,
		CounterService:        counterService,
		RedisRepository:       redisRepository,
		EventPublisher:        eventPublisher,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *caseUsecase) CreateCase(ctx context.Context, request *requests.CreateCase) (*models.Case, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("caseUsecase.CreateCase called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("patient_code", request.PatientCode),
	)

	patient, err := uc.PatientRepository.FindByPatientCode(ctx, request.PatientCode)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	now := time.Now().UTC()
	createdAt := now
	if request.CreatedAt != nil {
		createdAt = request.CreatedAt.UTC()
	}

	caseCode := request.CaseCode
	if caseCode == "" {
		caseCode, err = uc.CounterService.NextCaseCode(ctx, createdAt.Year())
		if err != nil {
			return nil, err
		}
	}

	priority := request.Priority
	if priority == "" {
		priority = constvars.CasePriorityNormal
	}

	samples := make([]models.Sample, 0, len(request.Samples))
	for _, sampleRequest := range request.Samples {
		bodyRegion := sampleRequest.BodyRegion
		if bodyRegion == "" {
			bodyRegion = constvars.DefaultBodyRegion
		}
		tests := make([]models.SampleTest, 0, len(sampleRequest.Tests))
		for _, testRequest := range sampleRequest.Tests {
			quantity := testRequest.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			tests = append(tests, models.SampleTest{
				ID:       testRequest.ID,
				Name:     testRequest.Name,
				Quantity: quantity,
			})
		}
		samples = append(samples, models.Sample{BodyRegion: bodyRegion, Tests: tests})
	}

	patientInfo := patient.Snapshot()
	if request.Observations != "" {
		patientInfo.Observations = request.Observations
	}

	caseModel := &models.Case{
		CaseCode:            caseCode,
		PatientInfo:         patientInfo,
		RequestingPhysician: request.RequestingPhysician,
		Service:             request.Service,
		Samples:             samples,
		State:               constvars.CaseStateInProcess,
		Priority:            priority,
		AdditionalNotes:     []models.AdditionalNote{},
		TimeModel: models.TimeModel{
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}

	if request.PathologistCode != "" {
		pathologist, err := uc.PathologistRepository.FindByPathologistCode(ctx, request.PathologistCode)
		if err != nil {
			return nil, err
		}
		if pathologist == nil {
			return nil, exceptions.ErrPathologistNotFound(nil)
		}
		snapshot := pathologist.Snapshot()
		caseModel.AssignedPathologist = &snapshot
	}

	if _, err := uc.CaseRepository.CreateCase(ctx, caseModel); err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, constvars.EventCaseCreated, caseModel)
	return caseModel, nil
}

func (uc *caseUsecase) GetCase(ctx context.Context, caseCode string) (*models.Case, error) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyCaseDetailFormat, caseCode)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var caseModel models.Case
		if err := json.Unmarshal([]byte(cached), &caseModel); err == nil {
			return &caseModel, nil
		}
	}

	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	_ = uc.RedisRepository.Set(ctx, cacheKey, caseModel, constvars.CacheTTLCaseDetailMinutes*time.Minute)
	return caseModel, nil
}

func (uc *caseUsecase) ListCases(ctx context.Context, filter *requests.CaseFilter) ([]models.Case, int, error) {
	return uc.CaseRepository.FindCases(ctx, filter)
}

func (uc *caseUsecase) UpdateCase(ctx context.Context, caseCode string, request *requests.UpdateCase) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	expectedUpdatedAt := caseModel.UpdatedAt

	if request.RequestingPhysician != nil {
		caseModel.RequestingPhysician = *request.RequestingPhysician
	}
	if request.Service != nil {
		caseModel.Service = *request.Service
	}
	if request.Priority != nil {
		caseModel.Priority = *request.Priority
	}
	if request.PatientObservations != nil {
		caseModel.PatientInfo.Observations = *request.PatientObservations
	}
	if request.Samples != nil {
		samples := make([]models.Sample, 0, len(request.Samples))
		for _, sampleRequest := range request.Samples {
			bodyRegion := sampleRequest.BodyRegion
			if bodyRegion == "" {
				bodyRegion = constvars.DefaultBodyRegion
			}
			tests := make([]models.SampleTest, 0, len(sampleRequest.Tests))
			for _, testRequest := range sampleRequest.Tests {
				quantity := testRequest.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				tests = append(tests, models.SampleTest{
					ID:       testRequest.ID,
					Name:     testRequest.Name,
					Quantity: quantity,
				})
			}
			samples = append(samples, models.Sample{BodyRegion: bodyRegion, Tests: tests})
		}
		caseModel.Samples = samples
	}

	if request.State != nil && *request.State != caseModel.State {
		if err := validateStateTransition(caseModel.State, *request.State); err != nil {
			return nil, err
		}
		// Signing and delivery stamp signed_at, business_days and
		// delivered_at; a plain patch must not skip those effects.
		switch *request.State {
		case constvars.CaseStateToDeliver, constvars.CaseStateCompleted:
			return nil, exceptions.ErrStateNeedsOperation(*request.State)
		case constvars.CaseStateToSign:
			if caseModel.Result == nil || caseModel.Result.Diagnosis == "" {
				return nil, exceptions.ErrResultDiagnosisRequired()
			}
		}
		caseModel.State = *request.State
	}

	caseModel.UpdatedAt = time.Now().UTC()
	if err := uc.CaseRepository.ReplaceCase(ctx, caseModel, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.invalidateCaseCache(ctx, caseCode)
	return caseModel, nil
}

func (uc *caseUsecase) DeleteCase(ctx context.Context, caseCode string, principal *models.Principal) error {
	if principal == nil || principal.Role != constvars.RoleAdministrator {
		return exceptions.ErrRoleNotAllowed(nil)
	}

	if err := uc.CaseRepository.DeleteByCaseCode(ctx, caseCode); err != nil {
		return err
	}
	uc.invalidateCaseCache(ctx, caseCode)
	return nil
}

func (uc *caseUsecase) AssignPathologist(ctx context.Context, caseCode string, request *requests.AssignPathologist) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	expectedUpdatedAt := caseModel.UpdatedAt

	pathologist, err := uc.PathologistRepository.FindByPathologistCode(ctx, request.PathologistCode)
	if err != nil {
		return nil, err
	}
	if pathologist == nil {
		return nil, exceptions.ErrPathologistNotFound(nil)
	}

	snapshot := pathologist.Snapshot()
	caseModel.AssignedPathologist = &snapshot
	caseModel.UpdatedAt = time.Now().UTC()

	if err := uc.CaseRepository.ReplaceCase(ctx, caseModel, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.invalidateCaseCache(ctx, caseCode)
	return caseModel, nil
}

// UpdateResult patches the result fields and moves an In Process case to
// To Sign once a diagnosis is on record.
func (uc *caseUsecase) UpdateResult(ctx context.Context, caseCode string, request *requests.UpdateResult) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	expectedUpdatedAt := caseModel.UpdatedAt

	now := time.Now().UTC()
	if caseModel.Result == nil {
		caseModel.Result = &models.CaseResult{}
	}
	if request.Method != nil {
		caseModel.Result.Method = request.Method
	}
	if request.MacroResult != nil {
		caseModel.Result.MacroResult = *request.MacroResult
	}
	if request.MicroResult != nil {
		caseModel.Result.MicroResult = *request.MicroResult
	}
	if request.Diagnosis != nil {
		caseModel.Result.Diagnosis = *request.Diagnosis
	}
	if request.Observations != nil {
		caseModel.Result.Observations = *request.Observations
	}
	if request.CIE10Diagnosis != nil {
		caseModel.Result.CIE10Diagnosis = &models.CodedDiagnosis{
			Code: request.CIE10Diagnosis.Code,
			Name: request.CIE10Diagnosis.Name,
		}
	}
	if request.CIEODiagnosis != nil {
		caseModel.Result.CIEODiagnosis = &models.CodedDiagnosis{
			Code: request.CIEODiagnosis.Code,
			Name: request.CIEODiagnosis.Name,
		}
	}
	caseModel.Result.UpdatedAt = now

	if caseModel.State == constvars.CaseStateInProcess && caseModel.Result.Diagnosis != "" {
		caseModel.State = constvars.CaseStateToSign
	}

	caseModel.UpdatedAt = now
	if err := uc.CaseRepository.ReplaceCase(ctx, caseModel, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.invalidateCaseCache(ctx, caseCode)
	return caseModel, nil
}

// SignCase stamps signed_at, freezes the business-day turnaround and moves
// the case to To Deliver. Only the assigned pathologist or an administrator
// may sign.
func (uc *caseUsecase) SignCase(ctx context.Context, caseCode string, principal *models.Principal, request *requests.SignCase) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	expectedUpdatedAt := caseModel.UpdatedAt

	if err := validateStateTransition(caseModel.State, constvars.CaseStateToDeliver); err != nil {
		return nil, err
	}
	if caseModel.AssignedPathologist == nil {
		return nil, exceptions.ErrPathologistNotAssigned()
	}
	if principal == nil {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	if principal.Role != constvars.RoleAdministrator && principal.StaffCode != caseModel.AssignedPathologist.ID {
		return nil, exceptions.ErrSignerNotAssigned()
	}

	if request.CIE10Diagnosis != nil {
		if caseModel.Result == nil {
			caseModel.Result = &models.CaseResult{}
		}
		caseModel.Result.CIE10Diagnosis = &models.CodedDiagnosis{
			Code: request.CIE10Diagnosis.Code,
			Name: request.CIE10Diagnosis.Name,
		}
	}
	if request.CIEODiagnosis != nil {
		if caseModel.Result == nil {
			caseModel.Result = &models.CaseResult{}
		}
		caseModel.Result.CIEODiagnosis = &models.CodedDiagnosis{
			Code: request.CIEODiagnosis.Code,
			Name: request.CIEODiagnosis.Name,
		}
	}

	if caseModel.Result == nil || caseModel.Result.Diagnosis == "" {
		return nil, exceptions.ErrResultDiagnosisRequired()
	}

	now := time.Now().UTC()
	businessDays := utils.BusinessDaysBetween(caseModel.CreatedAt, now)
	caseModel.SignedAt = &now
	caseModel.BusinessDays = &businessDays
	caseModel.State = constvars.CaseStateToDeliver
	caseModel.UpdatedAt = now

	if err := uc.CaseRepository.ReplaceCase(ctx, caseModel, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.invalidateCaseCache(ctx, caseCode)
	uc.publishEvent(ctx, constvars.EventCaseSigned, caseModel)
	return caseModel, nil
}

func (uc *caseUsecase) DeliverCase(ctx context.Context, caseCode string, request *requests.DeliverCase) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	expectedUpdatedAt := caseModel.UpdatedAt

	if err := validateStateTransition(caseModel.State, constvars.CaseStateCompleted); err != nil {
		return nil, err
	}
	if request.DeliveredTo == "" {
		return nil, exceptions.ErrDeliveredToRequired()
	}

	now := time.Now().UTC()
	caseModel.DeliveredAt = &now
	caseModel.DeliveredTo = request.DeliveredTo
	caseModel.State = constvars.CaseStateCompleted
	caseModel.UpdatedAt = now

	if err := uc.CaseRepository.ReplaceCase(ctx, caseModel, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.invalidateCaseCache(ctx, caseCode)
	uc.publishEvent(ctx, constvars.EventCaseDelivered, caseModel)
	return caseModel, nil
}

func (uc *caseUsecase) AppendAdditionalNote(ctx context.Context, caseCode string, request *requests.AppendNote, author string) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	expectedUpdatedAt := caseModel.UpdatedAt

	if caseModel.State != constvars.CaseStateCompleted {
		return nil, exceptions.ErrNotesOnlyWhenCompleted()
	}

	now := time.Now().UTC()
	caseModel.AdditionalNotes = append(caseModel.AdditionalNotes, models.AdditionalNote{
		Date:    now,
		Note:    request.Note,
		AddedBy: author,
	})
	caseModel.UpdatedAt = now

	if err := uc.CaseRepository.ReplaceCase(ctx, caseModel, expectedUpdatedAt); err != nil {
		return nil, err
	}

	uc.invalidateCaseCache(ctx, caseCode)
	return caseModel, nil
}

// ListUrgent returns pending cases whose business-day age reached the
// threshold. Candidates are pre-filtered on calendar age so the business-day
// arithmetic only runs over a bounded set.
func (uc *caseUsecase) ListUrgent(ctx context.Context, minBusinessDays, limit int, pathologistID string) ([]responses.UrgentCase, error) {
	if minBusinessDays <= 0 {
		minBusinessDays = uc.InternalConfig.LIS.UrgentMinBusinessDays
	}
	if limit <= 0 {
		limit = constvars.DefaultUrgentLimit
	}

	now := time.Now().UTC()
	// minBusinessDays business days need at least that many calendar days.
	createdBefore := now.AddDate(0, 0, -minBusinessDays)

	candidates, err := uc.CaseRepository.FindPending(ctx, createdBefore, pathologistID, 0)
	if err != nil {
		return nil, err
	}

	urgent := make([]responses.UrgentCase, 0, limit)
	for _, candidate := range candidates {
		pendingDays := utils.BusinessDaysSince(candidate.CreatedAt, now)
		if pendingDays < minBusinessDays {
			continue
		}
		urgent = append(urgent, responses.UrgentCase{
			Case:                candidate,
			BusinessDaysPending: pendingDays,
		})
		if len(urgent) >= limit {
			break
		}
	}
	return urgent, nil
}

func (uc *caseUsecase) GetRenderData(ctx context.Context, caseCode string) (*responses.CaseRenderData, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	renderData := &responses.CaseRenderData{
		CaseCode:            caseModel.CaseCode,
		Filename:            fmt.Sprintf("%s-%s.pdf", caseModel.CaseCode, caseModel.PatientInfo.Name),
		PatientInfo:         caseModel.PatientInfo,
		RequestingPhysician: caseModel.RequestingPhysician,
		Service:             caseModel.Service,
		Samples:             caseModel.Samples,
		Result:              caseModel.Result,
		AssignedPathologist: caseModel.AssignedPathologist,
		SignedAt:            caseModel.SignedAt,
		BusinessDays:        caseModel.BusinessDays,
		CreatedAt:           caseModel.CreatedAt,
	}

	if caseModel.AssignedPathologist != nil {
		pathologist, err := uc.PathologistRepository.FindByPathologistCode(ctx, caseModel.AssignedPathologist.ID)
		if err != nil {
			return nil, err
		}
		if pathologist != nil {
			renderData.SignatureRef = pathologist.SignatureRef
		}
	}
	return renderData, nil
}

func (uc *caseUsecase) invalidateCaseCache(ctx context.Context, caseCode string) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyCaseDetailFormat, caseCode)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("caseUsecase failed to invalidate case cache",
			zap.String(constvars.LoggingCaseCodeKey, caseCode),
			zap.Error(err),
		)
	}
}

func (uc *caseUsecase) publishEvent(ctx context.Context, eventType string, caseModel *models.Case) {
	err := uc.EventPublisher.Publish(ctx, eventType, map[string]interface{}{
		"case_code": caseModel.CaseCode,
		"state":     caseModel.State,
	})
	if err != nil {
		uc.Log.Warn("caseUsecase failed to publish event",
			zap.String("event_type", eventType),
			zap.String(constvars.LoggingCaseCodeKey, caseModel.CaseCode),
			zap.Error(err),
		)
	}
}
