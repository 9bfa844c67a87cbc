package catalogs

import (
	"context"
	"io"
	"mime"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/responses"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type catalogUsecase struct {
	EntityRepository      contracts.EntityRepository
	TestRepository        contracts.TestRepository
	PathologistRepository contracts.PathologistRepository
	PersonnelRepository   contracts.PersonnelRepository
	CaseRepository        contracts.CaseRepository
	ObjectStorage         contracts.ObjectStorage
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewCatalogUsecase(
	entityRepository contracts.EntityRepository,
	testRepository contracts.TestRepository,
	pathologistRepository contracts.PathologistRepository,
	personnelRepository contracts.PersonnelRepository,
	caseRepository contracts.CaseRepository,
	objectStorage contracts.ObjectStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CatalogUsecase {
	return &catalogUsecase{
		EntityRepository:      entityRepository,
		TestRepository:        testRepository,
		PathologistRepository: pathologistRepository,
		PersonnelRepository:   personnelRepository,
		CaseRepository:        caseRepository,
		ObjectStorage:         objectStorage,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *catalogUsecase) ListEntities(ctx context.Context) ([]models.Entity, error) {
	return uc.EntityRepository.FindEntities(ctx, true)
}

func (uc *catalogUsecase) ListTests(ctx context.Context) ([]models.Test, error) {
	return uc.TestRepository.FindTests(ctx, true)
}

func (uc *catalogUsecase) ListPathologists(ctx context.Context) ([]models.Pathologist, error) {
	return uc.PathologistRepository.FindPathologists(ctx, true)
}

func (uc *catalogUsecase) ListPersonnel(ctx context.Context, role string) ([]models.Personnel, error) {
	return uc.PersonnelRepository.FindByRole(ctx, role)
}

func (uc *catalogUsecase) UploadSignature(ctx context.Context, pathologistCode, fileExtension string, reader io.Reader, size int64) (string, error) {
	pathologist, err := uc.PathologistRepository.FindByPathologistCode(ctx, pathologistCode)
	if err != nil {
		return "", err
	}
	if pathologist == nil {
		return "", exceptions.ErrPathologistNotFound(nil)
	}

	contentType := mime.TypeByExtension(fileExtension)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	objectName := utils.GenerateSignatureObjectName(pathologistCode, fileExtension)
	if _, err := uc.ObjectStorage.Upload(ctx, objectName, contentType, reader, size); err != nil {
		return "", err
	}

	if err := uc.PathologistRepository.UpdateSignatureRef(ctx, pathologistCode, objectName); err != nil {
		return "", err
	}
	return objectName, nil
}

// SyncPathologistNames pushes current catalog names back into the
// denormalized assigned_pathologist snapshots. The updates are throttled so
// a large backfill does not starve the live traffic.
func (uc *catalogUsecase) SyncPathologistNames(ctx context.Context) (*responses.BulkSyncResult, error) {
	pathologists, err := uc.PathologistRepository.FindPathologists(ctx, false)
	if err != nil {
		return nil, err
	}

	ratePerSecond := uc.InternalConfig.LIS.SyncRatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	limiter := rate.NewLimiter(rate.Limit(ratePerSecond), 1)

	result := &responses.BulkSyncResult{}
	for _, pathologist := range pathologists {
		if err := limiter.Wait(ctx); err != nil {
			return result, exceptions.ErrServerDeadlineExceeded(err)
		}

		updated, err := uc.CaseRepository.BulkUpdatePathologistName(ctx, pathologist.PathologistCode, pathologist.Name)
		if err != nil {
			uc.Log.Error("catalogUsecase.SyncPathologistNames update failed",
				zap.String("pathologist_code", pathologist.PathologistCode),
				zap.Error(err),
			)
			return result, err
		}
		if updated > 0 {
			result.MatchedPathologists++
			result.UpdatedCases += updated
		}
	}
	return result, nil
}
