package contracts

import (
	"context"
	"io"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/dto/responses"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (string, error)
	FindByPatientCode(ctx context.Context, patientCode string) (*models.Patient, error)
	FindPatients(ctx context.Context, search string, skip, limit int) ([]models.Patient, int, error)
	UpdatePatient(ctx context.Context, patient *models.Patient) error
}

type PatientUsecase interface {
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error)
	GetPatient(ctx context.Context, patientCode string) (*models.Patient, error)
	ListPatients(ctx context.Context, search string, skip, limit int) ([]models.Patient, int, error)
	UpdatePatient(ctx context.Context, patientCode string, request *requests.UpdatePatient) (*models.Patient, error)
}

type EntityRepository interface {
	FindByEntityCode(ctx context.Context, entityCode string) (*models.Entity, error)
	FindEntities(ctx context.Context, activeOnly bool) ([]models.Entity, error)
}

type TestRepository interface {
	FindByTestCode(ctx context.Context, testCode string) (*models.Test, error)
	FindTests(ctx context.Context, activeOnly bool) ([]models.Test, error)
}

type PathologistRepository interface {
	CreatePathologist(ctx context.Context, pathologist *models.Pathologist) (string, error)
	FindByPathologistCode(ctx context.Context, pathologistCode string) (*models.Pathologist, error)
	FindPathologists(ctx context.Context, activeOnly bool) ([]models.Pathologist, error)
	UpdateSignatureRef(ctx context.Context, pathologistCode, signatureRef string) error
}

type PersonnelRepository interface {
	FindByRole(ctx context.Context, role string) ([]models.Personnel, error)
}

type CatalogUsecase interface {
	ListEntities(ctx context.Context) ([]models.Entity, error)
	ListTests(ctx context.Context) ([]models.Test, error)
	ListPathologists(ctx context.Context) ([]models.Pathologist, error)
	ListPersonnel(ctx context.Context, role string) ([]models.Personnel, error)
	UploadSignature(ctx context.Context, pathologistCode, fileExtension string, reader io.Reader, size int64) (string, error)
	// SyncPathologistNames re-applies current catalog names to the
	// denormalized assigned_pathologist snapshots across all cases.
	SyncPathologistNames(ctx context.Context) (*responses.BulkSyncResult, error)
}
