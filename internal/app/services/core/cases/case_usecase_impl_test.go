package cases

import (
	"context"
	"fmt"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCaseRepository struct {
	cases   map[string]*models.Case
	pending []models.Case
}

func newFakeCaseRepository() *fakeCaseRepository {
	return &fakeCaseRepository{cases: make(map[string]*models.Case)}
}

func (f *fakeCaseRepository) CreateCase(ctx context.Context, caseModel *models.Case) (string, error) {
	if _, exists := f.cases[caseModel.CaseCode]; exists {
		return "", exceptions.ErrCaseCodeAlreadyExists(nil)
	}
	copied := *caseModel
	f.cases[caseModel.CaseCode] = &copied
	return caseModel.CaseCode, nil
}

func (f *fakeCaseRepository) FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error) {
	caseModel, ok := f.cases[caseCode]
	if !ok {
		return nil, nil
	}
	copied := *caseModel
	return &copied, nil
}

func (f *fakeCaseRepository) FindCases(ctx context.Context, filter *requests.CaseFilter) ([]models.Case, int, error) {
	return nil, 0, nil
}

func (f *fakeCaseRepository) ReplaceCase(ctx context.Context, caseModel *models.Case, expectedUpdatedAt time.Time) error {
	stored, ok := f.cases[caseModel.CaseCode]
	if !ok {
		return exceptions.ErrCaseNotFound(nil)
	}
	if !stored.UpdatedAt.Equal(expectedUpdatedAt) {
		return exceptions.ErrCaseUpdateConflict(nil)
	}
	copied := *caseModel
	f.cases[caseModel.CaseCode] = &copied
	return nil
}

func (f *fakeCaseRepository) DeleteByCaseCode(ctx context.Context, caseCode string) error {
	if _, ok := f.cases[caseCode]; !ok {
		return exceptions.ErrCaseNotFound(nil)
	}
	delete(f.cases, caseCode)
	return nil
}

func (f *fakeCaseRepository) FindPending(ctx context.Context, createdBefore time.Time, pathologistID string, limit int) ([]models.Case, error) {
	result := make([]models.Case, 0, len(f.pending))
	for _, candidate := range f.pending {
		if candidate.CreatedAt.After(createdBefore) {
			continue
		}
		result = append(result, candidate)
	}
	return result, nil
}

func (f *fakeCaseRepository) BulkUpdatePathologistName(ctx context.Context, pathologistID, name string) (int64, error) {
	return 0, nil
}

type fakePatientRepository struct {
	patients map[string]*models.Patient
}

func (f *fakePatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	return "", nil
}

func (f *fakePatientRepository) FindByPatientCode(ctx context.Context, patientCode string) (*models.Patient, error) {
	patient, ok := f.patients[patientCode]
	if !ok {
		return nil, nil
	}
	return patient, nil
}

func (f *fakePatientRepository) FindPatients(ctx context.Context, search string, skip, limit int) ([]models.Patient, int, error) {
	return nil, 0, nil
}

func (f *fakePatientRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	return nil
}

type fakePathologistRepository struct {
	pathologists map[string]*models.Pathologist
}

func (f *fakePathologistRepository) CreatePathologist(ctx context.Context, pathologist *models.Pathologist) (string, error) {
	return "", nil
}

func (f *fakePathologistRepository) FindByPathologistCode(ctx context.Context, pathologistCode string) (*models.Pathologist, error) {
	pathologist, ok := f.pathologists[pathologistCode]
	if !ok {
		return nil, nil
	}
	return pathologist, nil
}

func (f *fakePathologistRepository) FindPathologists(ctx context.Context, activeOnly bool) ([]models.Pathologist, error) {
	return nil, nil
}

func (f *fakePathologistRepository) UpdateSignatureRef(ctx context.Context, pathologistCode, signatureRef string) error {
	return nil
}

type fakeCounterService struct {
	seq int
}

func (f *fakeCounterService) NextCaseCode(ctx context.Context, year int) (string, error) {
	f.seq++
	return fmt.Sprintf("%d-%05d", year, f.seq), nil
}

func (f *fakeCounterService) PeekCaseNumber(ctx context.Context, year int) (int, error) {
	return f.seq + 1, nil
}

func (f *fakeCounterService) NextApprovalCode(ctx context.Context, year int) (string, error) {
	return "", nil
}

func (f *fakeCounterService) NextUnreadCaseCode(ctx context.Context, year int) (string, error) {
	return "", nil
}

type fakeRedisRepository struct{}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error { return nil }

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	p.events = append(p.events, eventType)
	return nil
}

type caseFixture struct {
	usecase   contracts.CaseUsecase
	caseRepo  *fakeCaseRepository
	publisher *recordingPublisher
}

func newCaseFixture() *caseFixture {
	caseRepo := newFakeCaseRepository()
	publisher := &recordingPublisher{}

	patientRepo := &fakePatientRepository{patients: map[string]*models.Patient{
		"P-100": {
			PatientCode:          "P-100",
			IdentificationType:   "CC",
			IdentificationNumber: "43123456",
			Name:                 "Ana Gómez",
			Age:                  45,
			Gender:               constvars.GenderFemale,
			EntityInfo:           models.EntityInfo{ID: "ENT-01", Name: "Hospital Pablo Tobón Uribe"},
			CareType:             constvars.CareTypeAmbulatory,
		},
	}}
	pathologistRepo := &fakePathologistRepository{pathologists: map[string]*models.Pathologist{
		"PAT-01": {PathologistCode: "PAT-01", Name: "Dra. García", IsActive: true, SignatureRef: "signatures/PAT-01.png"},
	}}

	internalConfig := &config.InternalConfig{
		LIS: config.LIS{
			OpportunityThresholdDays: 7,
			UrgentMinBusinessDays:    6,
		},
	}

	usecase := NewCaseUsecase(
		caseRepo,
		patientRepo,
		pathologistRepo,
		&fakeCounterService{},
		&fakeRedisRepository{},
		publisher,
		internalConfig,
		zap.NewNop(),
	)

	return &caseFixture{usecase: usecase, caseRepo: caseRepo, publisher: publisher}
}

func validCreateRequest() *requests.CreateCase {
	return &requests.CreateCase{
		PatientCode: "P-100",
		Samples: []requests.SampleRequest{
			{BodyRegion: "Gastric", Tests: []requests.SampleTestRequest{{ID: "T-001", Name: "Biopsia simple", Quantity: 1}}},
		},
	}
}

func TestCreateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocates Code And Snapshots Patient", func(t *testing.T) {
		fixture := newCaseFixture()

		created, err := fixture.usecase.CreateCase(ctx, validCreateRequest())

		assert.NoError(t, err)
		year := time.Now().UTC().Year()
		assert.Equal(t, fmt.Sprintf("%d-%05d", year, 1), created.CaseCode)
		assert.Equal(t, constvars.CaseStateInProcess, created.State)
		assert.Equal(t, constvars.CasePriorityNormal, created.Priority)
		assert.Equal(t, "Ana Gómez", created.PatientInfo.Name)
		assert.Equal(t, "CC", created.PatientInfo.IdentificationType)
		assert.Equal(t, "43123456", created.PatientInfo.IdentificationNumber)
		assert.Contains(t, fixture.publisher.events, constvars.EventCaseCreated)
	})

	t.Run("Unknown Patient Is Rejected", func(t *testing.T) {
		fixture := newCaseFixture()
		request := validCreateRequest()
		request.PatientCode = "P-999"

		_, err := fixture.usecase.CreateCase(ctx, request)

		assert.Error(t, err)
	})

	t.Run("Optional Pathologist Is Snapshotted", func(t *testing.T) {
		fixture := newCaseFixture()
		request := validCreateRequest()
		request.PathologistCode = "PAT-01"

		created, err := fixture.usecase.CreateCase(ctx, request)

		assert.NoError(t, err)
		assert.NotNil(t, created.AssignedPathologist)
		assert.Equal(t, "PAT-01", created.AssignedPathologist.ID)
	})

	t.Run("Zero Test Quantity Defaults To One", func(t *testing.T) {
		fixture := newCaseFixture()
		request := validCreateRequest()
		request.Samples[0].Tests[0].Quantity = 0

		created, err := fixture.usecase.CreateCase(ctx, request)

		assert.NoError(t, err)
		assert.Equal(t, 1, created.Samples[0].Tests[0].Quantity)
	})
}

func signReadyCase(fixture *caseFixture, ctx context.Context) *models.Case {
	request := validCreateRequest()
	request.PathologistCode = "PAT-01"
	created, _ := fixture.usecase.CreateCase(ctx, request)

	diagnosis := "Adenocarcinoma gástrico"
	updated, _ := fixture.usecase.UpdateResult(ctx, created.CaseCode, &requests.UpdateResult{Diagnosis: &diagnosis})
	return updated
}

func TestUpdateResult(t *testing.T) {
	ctx := context.Background()

	t.Run("First Result Moves To Sign", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		diagnosis := "Gastritis crónica"
		updated, err := fixture.usecase.UpdateResult(ctx, created.CaseCode, &requests.UpdateResult{Diagnosis: &diagnosis})

		assert.NoError(t, err)
		assert.Equal(t, constvars.CaseStateToSign, updated.State)
		assert.Equal(t, "Gastritis crónica", updated.Result.Diagnosis)
	})

	t.Run("Result Without Diagnosis Stays In Process", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		macro := "Fragmento de mucosa gástrica de 0.5 cm"
		updated, err := fixture.usecase.UpdateResult(ctx, created.CaseCode, &requests.UpdateResult{MacroResult: &macro})

		assert.NoError(t, err)
		assert.Equal(t, constvars.CaseStateInProcess, updated.State)
		assert.Equal(t, macro, updated.Result.MacroResult)
	})
}

func TestUpdateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("State Patch Cannot Reach To Deliver", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)

		toDeliver := constvars.CaseStateToDeliver
		_, err := fixture.usecase.UpdateCase(ctx, ready.CaseCode, &requests.UpdateCase{State: &toDeliver})

		assert.Error(t, err)
		stored, _ := fixture.caseRepo.FindByCaseCode(ctx, ready.CaseCode)
		assert.Equal(t, constvars.CaseStateToSign, stored.State)
		assert.Nil(t, stored.SignedAt)
	})

	t.Run("State Patch To Sign Requires Diagnosis", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		toSign := constvars.CaseStateToSign
		_, err := fixture.usecase.UpdateCase(ctx, created.CaseCode, &requests.UpdateCase{State: &toSign})

		assert.Error(t, err)
		stored, _ := fixture.caseRepo.FindByCaseCode(ctx, created.CaseCode)
		assert.Equal(t, constvars.CaseStateInProcess, stored.State)
	})

	t.Run("Patches Header Fields", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		physician := "Dr. Restrepo"
		updated, err := fixture.usecase.UpdateCase(ctx, created.CaseCode, &requests.UpdateCase{RequestingPhysician: &physician})

		assert.NoError(t, err)
		assert.Equal(t, "Dr. Restrepo", updated.RequestingPhysician)
	})
}

func TestSignCase(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: "U-1", Name: "Admin", Role: constvars.RoleAdministrator}
	assignedPathologist := &models.Principal{ID: "U-2", Name: "Dra. García", Role: constvars.RolePathologist, StaffCode: "PAT-01"}
	otherPathologist := &models.Principal{ID: "U-3", Name: "Dr. Mejía", Role: constvars.RolePathologist, StaffCode: "PAT-02"}

	t.Run("Assigned Pathologist Signs", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)

		signed, err := fixture.usecase.SignCase(ctx, ready.CaseCode, assignedPathologist, &requests.SignCase{})

		assert.NoError(t, err)
		assert.Equal(t, constvars.CaseStateToDeliver, signed.State)
		assert.NotNil(t, signed.SignedAt)
		assert.NotNil(t, signed.BusinessDays, "turnaround is frozen at sign time")
		assert.Contains(t, fixture.publisher.events, constvars.EventCaseSigned)
	})

	t.Run("Administrator May Sign Any Case", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)

		_, err := fixture.usecase.SignCase(ctx, ready.CaseCode, admin, &requests.SignCase{})

		assert.NoError(t, err)
	})

	t.Run("Unassigned Pathologist Is Rejected", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)

		_, err := fixture.usecase.SignCase(ctx, ready.CaseCode, otherPathologist, &requests.SignCase{})

		assert.Error(t, err)
	})

	t.Run("Diagnosis Is Required", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)

		// Clearing the diagnosis afterwards must block the signature.
		empty := ""
		_, err := fixture.usecase.UpdateResult(ctx, ready.CaseCode, &requests.UpdateResult{Diagnosis: &empty})
		assert.NoError(t, err)

		_, err = fixture.usecase.SignCase(ctx, ready.CaseCode, admin, &requests.SignCase{})
		assert.Error(t, err)
	})

	t.Run("In Process Case Cannot Be Signed", func(t *testing.T) {
		fixture := newCaseFixture()
		request := validCreateRequest()
		request.PathologistCode = "PAT-01"
		created, _ := fixture.usecase.CreateCase(ctx, request)

		_, err := fixture.usecase.SignCase(ctx, created.CaseCode, admin, &requests.SignCase{})

		assert.Error(t, err)
	})
}

func TestDeliverCase(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: "U-1", Name: "Admin", Role: constvars.RoleAdministrator}

	t.Run("Completes The Case", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)
		signed, _ := fixture.usecase.SignCase(ctx, ready.CaseCode, admin, &requests.SignCase{})

		delivered, err := fixture.usecase.DeliverCase(ctx, signed.CaseCode, &requests.DeliverCase{DeliveredTo: "Mensajería HPTU"})

		assert.NoError(t, err)
		assert.Equal(t, constvars.CaseStateCompleted, delivered.State)
		assert.NotNil(t, delivered.DeliveredAt)
		assert.Equal(t, "Mensajería HPTU", delivered.DeliveredTo)
		assert.Contains(t, fixture.publisher.events, constvars.EventCaseDelivered)
	})

	t.Run("Unsigned Case Cannot Be Delivered", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		_, err := fixture.usecase.DeliverCase(ctx, created.CaseCode, &requests.DeliverCase{DeliveredTo: "Mensajería"})

		assert.Error(t, err)
	})
}

func TestAppendAdditionalNote(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: "U-1", Name: "Admin", Role: constvars.RoleAdministrator}

	t.Run("Only Completed Cases Accept Notes", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		_, err := fixture.usecase.AppendAdditionalNote(ctx, created.CaseCode, &requests.AppendNote{Note: "Control pendiente"}, "Admin")

		assert.Error(t, err)
	})

	t.Run("Notes Are Appended With Author", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)
		signed, _ := fixture.usecase.SignCase(ctx, ready.CaseCode, admin, &requests.SignCase{})
		_, _ = fixture.usecase.DeliverCase(ctx, signed.CaseCode, &requests.DeliverCase{DeliveredTo: "Mensajería"})

		updated, err := fixture.usecase.AppendAdditionalNote(ctx, signed.CaseCode, &requests.AppendNote{Note: "Se envió copia al tratante"}, "Admin")

		assert.NoError(t, err)
		assert.Len(t, updated.AdditionalNotes, 1)
		assert.Equal(t, "Admin", updated.AdditionalNotes[0].AddedBy)
	})
}

func TestDeleteCase(t *testing.T) {
	ctx := context.Background()

	t.Run("Only Administrators May Delete", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		pathologist := &models.Principal{ID: "U-2", Role: constvars.RolePathologist, StaffCode: "PAT-01"}
		err := fixture.usecase.DeleteCase(ctx, created.CaseCode, pathologist)
		assert.Error(t, err)

		admin := &models.Principal{ID: "U-1", Role: constvars.RoleAdministrator}
		err = fixture.usecase.DeleteCase(ctx, created.CaseCode, admin)
		assert.NoError(t, err)
	})

	t.Run("Missing Principal Is Rejected", func(t *testing.T) {
		fixture := newCaseFixture()
		created, _ := fixture.usecase.CreateCase(ctx, validCreateRequest())

		err := fixture.usecase.DeleteCase(ctx, created.CaseCode, nil)

		assert.Error(t, err)
	})
}

func TestListUrgent(t *testing.T) {
	ctx := context.Background()

	t.Run("Filters By Business Day Age", func(t *testing.T) {
		fixture := newCaseFixture()
		now := time.Now().UTC()
		fixture.caseRepo.pending = []models.Case{
			{CaseCode: "OLD", State: constvars.CaseStateInProcess, TimeModel: models.TimeModel{CreatedAt: now.AddDate(0, 0, -30)}},
			{CaseCode: "FRESH", State: constvars.CaseStateInProcess, TimeModel: models.TimeModel{CreatedAt: now.AddDate(0, 0, -2)}},
		}

		urgent, err := fixture.usecase.ListUrgent(ctx, 6, 10, "")

		assert.NoError(t, err)
		assert.Len(t, urgent, 1)
		assert.Equal(t, "OLD", urgent[0].CaseCode)
		assert.GreaterOrEqual(t, urgent[0].BusinessDaysPending, 6)
	})

	t.Run("Limit Caps The Result", func(t *testing.T) {
		fixture := newCaseFixture()
		now := time.Now().UTC()
		for i := 0; i < 5; i++ {
			fixture.caseRepo.pending = append(fixture.caseRepo.pending, models.Case{
				CaseCode:  fmt.Sprintf("C-%d", i),
				State:     constvars.CaseStateInProcess,
				TimeModel: models.TimeModel{CreatedAt: now.AddDate(0, 0, -30)},
			})
		}

		urgent, err := fixture.usecase.ListUrgent(ctx, 6, 3, "")

		assert.NoError(t, err)
		assert.Len(t, urgent, 3)
	})
}

func TestGetRenderData(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: "U-1", Name: "Admin", Role: constvars.RoleAdministrator}

	t.Run("Includes Signature Reference And Filename", func(t *testing.T) {
		fixture := newCaseFixture()
		ready := signReadyCase(fixture, ctx)
		signed, _ := fixture.usecase.SignCase(ctx, ready.CaseCode, admin, &requests.SignCase{})

		renderData, err := fixture.usecase.GetRenderData(ctx, signed.CaseCode)

		assert.NoError(t, err)
		assert.Equal(t, signed.CaseCode+"-Ana Gómez.pdf", renderData.Filename)
		assert.Equal(t, "signatures/PAT-01.png", renderData.SignatureRef)
		assert.NotNil(t, renderData.SignedAt)
	})
}
