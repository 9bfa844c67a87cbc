package patients

import (
	"context"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	Log               *zap.Logger
}

func NewPatientUsecase(patientRepository contracts.PatientRepository, logger *zap.Logger) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository: patientRepository,
		Log:               logger,
	}
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	existing, err := uc.PatientRepository.FindByPatientCode(ctx, request.PatientCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrPatientAlreadyExists(nil)
	}

	now := time.Now().UTC()
	patient := &models.Patient{
		PatientCode:          request.PatientCode,
		IdentificationType:   request.IdentificationType,
		IdentificationNumber: request.IdentificationNumber,
		Name:                 request.Name,
		Age:                  request.Age,
		Gender:               request.Gender,
		EntityInfo: models.EntityInfo{
			ID:   request.EntityInfo.ID,
			Name: request.EntityInfo.Name,
		},
		CareType:     request.CareType,
		Observations: request.Observations,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if _, err := uc.PatientRepository.CreatePatient(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (uc *patientUsecase) GetPatient(ctx context.Context, patientCode string) (*models.Patient, error) {
	patient, err := uc.PatientRepository.FindByPatientCode(ctx, patientCode)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}
	return patient, nil
}

func (uc *patientUsecase) ListPatients(ctx context.Context, search string, skip, limit int) ([]models.Patient, int, error) {
	return uc.PatientRepository.FindPatients(ctx, search, skip, limit)
}

// UpdatePatient edits the master record only. Patient snapshots embedded in
// existing cases stay as captured.
func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientCode string, request *requests.UpdatePatient) (*models.Patient, error) {
	patient, err := uc.GetPatient(ctx, patientCode)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		patient.Name = *request.Name
	}
	if request.Age != nil {
		patient.Age = *request.Age
	}
	if request.Gender != nil {
		patient.Gender = *request.Gender
	}
	if request.EntityInfo != nil {
		patient.EntityInfo = models.EntityInfo{
			ID:   request.EntityInfo.ID,
			Name: request.EntityInfo.Name,
		}
	}
	if request.CareType != nil {
		patient.CareType = *request.CareType
	}
	if request.Observations != nil {
		patient.Observations = *request.Observations
	}
	patient.UpdatedAt = time.Now().UTC()

	if err := uc.PatientRepository.UpdatePatient(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}
