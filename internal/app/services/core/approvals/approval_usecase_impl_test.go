package approvals

import (
	"context"
	"fmt"
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

type fakeApprovalRepository struct {
	approvals map[string]*models.Approval
}

func newFakeApprovalRepository() *fakeApprovalRepository {
	return &fakeApprovalRepository{approvals: make(map[string]*models.Approval)}
}

func (f *fakeApprovalRepository) CreateApproval(ctx context.Context, approval *models.Approval) (string, error) {
	copied := *approval
	f.approvals[approval.ApprovalCode] = &copied
	return approval.ApprovalCode, nil
}

func (f *fakeApprovalRepository) FindByApprovalCode(ctx context.Context, approvalCode string) (*models.Approval, error) {
	approval, ok := f.approvals[approvalCode]
	if !ok {
		return nil, nil
	}
	copied := *approval
	return &copied, nil
}

func (f *fakeApprovalRepository) FindActiveByOriginalCase(ctx context.Context, originalCaseCode string) (*models.Approval, error) {
	for _, approval := range f.approvals {
		if approval.OriginalCaseCode != originalCaseCode {
			continue
		}
		if approval.ApprovalState == constvars.ApprovalStateRequestMade ||
			approval.ApprovalState == constvars.ApprovalStatePendingApproval {
			copied := *approval
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeApprovalRepository) FindApprovals(ctx context.Context, filter *requests.ApprovalFilter) ([]models.Approval, int, error) {
	result := make([]models.Approval, 0, len(f.approvals))
	for _, approval := range f.approvals {
		result = append(result, *approval)
	}
	return result, len(result), nil
}

func (f *fakeApprovalRepository) ReplaceApproval(ctx context.Context, approval *models.Approval, expectedUpdatedAt time.Time) error {
	stored, ok := f.approvals[approval.ApprovalCode]
	if !ok {
		return exceptions.ErrApprovalNotFound(nil)
	}
	if !stored.UpdatedAt.Equal(expectedUpdatedAt) {
		return exceptions.ErrCaseUpdateConflict(nil)
	}
	copied := *approval
	f.approvals[approval.ApprovalCode] = &copied
	return nil
}

func (f *fakeApprovalRepository) DeleteByApprovalCode(ctx context.Context, approvalCode string) error {
	delete(f.approvals, approvalCode)
	return nil
}

type fakeCaseRepository struct {
	cases map[string]*models.Case
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
	delete(f.cases, caseCode)
	return nil
}

func (f *fakeCaseRepository) FindPending(ctx context.Context, createdBefore time.Time, pathologistID string, limit int) ([]models.Case, error) {
	return nil, nil
}

func (f *fakeCaseRepository) BulkUpdatePathologistName(ctx context.Context, pathologistID, name string) (int64, error) {
	return 0, nil
}

type fakeCounterService struct {
	caseSeq     int
	approvalSeq int
}

func (f *fakeCounterService) NextCaseCode(ctx context.Context, year int) (string, error) {
	f.caseSeq++
	return fmt.Sprintf("%d-%05d", year, f.caseSeq), nil
}

func (f *fakeCounterService) PeekCaseNumber(ctx context.Context, year int) (int, error) {
	return f.caseSeq + 1, nil
}

func (f *fakeCounterService) NextApprovalCode(ctx context.Context, year int) (string, error) {
	f.approvalSeq++
	return fmt.Sprintf("AP-%d-%03d", year, f.approvalSeq), nil
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

type approvalFixture struct {
	usecase      contracts.ApprovalUsecase
	approvalRepo *fakeApprovalRepository
	caseRepo     *fakeCaseRepository
	publisher    *recordingPublisher
}

func newApprovalFixture() *approvalFixture {
	approvalRepo := newFakeApprovalRepository()
	caseRepo := newFakeCaseRepository()
	publisher := &recordingPublisher{}

	usecase := NewApprovalUsecase(
		approvalRepo,
		caseRepo,
		&fakeCounterService{},
		&fakeRedisRepository{},
		publisher,
		zap.NewNop(),
	)

	return &approvalFixture{
		usecase:      usecase,
		approvalRepo: approvalRepo,
		caseRepo:     caseRepo,
		publisher:    publisher,
	}
}

func seedOriginalCase(caseRepo *fakeCaseRepository, caseCode string) {
	now := time.Now().UTC().Add(-48 * time.Hour)
	caseRepo.cases[caseCode] = &models.Case{
		CaseCode: caseCode,
		PatientInfo: models.PatientInfo{
			PatientCode: "P-100",
			Name:        "Ana Gómez",
			Age:         45,
			Gender:      constvars.GenderFemale,
			EntityInfo:  models.EntityInfo{ID: "ENT-01", Name: "Hospital Pablo Tobón Uribe"},
			CareType:    constvars.CareTypeAmbulatory,
		},
		Samples: []models.Sample{
			{BodyRegion: "Gastric", Tests: []models.SampleTest{{ID: "T-001", Name: "Biopsia simple", Quantity: 1}}},
		},
		AssignedPathologist: &models.PathologistInfo{ID: "PAT-01", Name: "Dra. García"},
		State:               constvars.CaseStateToSign,
		Priority:            constvars.CasePriorityNormal,
		TimeModel:           models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
}

func createApprovalRequest(caseCode string) *requests.CreateApproval {
	return &requests.CreateApproval{
		OriginalCaseCode: caseCode,
		ComplementaryTests: []requests.ComplementaryTestRequest{
			{Code: "T-004", Name: "Inmunohistoquímica", Quantity: 2},
		},
		Reason: "Dudas diagnósticas en la biopsia inicial",
	}
}

func TestCreateApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates A Fresh Request", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")

		approval, err := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))

		assert.NoError(t, err)
		assert.Equal(t, "AP-"+fmt.Sprint(time.Now().UTC().Year())+"-001", approval.ApprovalCode)
		assert.Equal(t, constvars.ApprovalStateRequestMade, approval.ApprovalState)
		assert.Equal(t, "PAT-01", approval.ApprovalInfo.AssignedPathologist.ID, "pathologist should be snapshotted from the original case")
	})

	t.Run("Rejects Unknown Original Case", func(t *testing.T) {
		fixture := newApprovalFixture()

		_, err := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-09999"))

		assert.Error(t, err)
	})

	t.Run("Rejects Second Active Request", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")

		_, err := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		assert.NoError(t, err)

		_, err = fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		assert.Error(t, err, "one active approval per case at most")
	})

	t.Run("Defaults Zero Quantity To One", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		request := createApprovalRequest("2025-00001")
		request.ComplementaryTests[0].Quantity = 0

		approval, err := fixture.usecase.CreateApproval(ctx, request)

		assert.NoError(t, err)
		assert.Equal(t, 1, approval.ComplementaryTests[0].Quantity)
	})
}

func TestApprovalTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Manage Moves To Pending", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))

		managed, err := fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)

		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStatePendingApproval, managed.ApprovalState)
	})

	t.Run("Approve Requires Pending", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))

		_, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)

		assert.Error(t, err, "a request that was never managed cannot be approved")
	})

	t.Run("Reject From Request Made", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))

		rejected, err := fixture.usecase.RejectApproval(ctx, approval.ApprovalCode)

		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateRejected, rejected.ApprovalState)
	})

	t.Run("Reject From Pending", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, err := fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)

		rejected, err := fixture.usecase.RejectApproval(ctx, approval.ApprovalCode)

		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateRejected, rejected.ApprovalState)
	})

	t.Run("Terminal States Cannot Be Rejected", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)
		_, _ = fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)

		_, err := fixture.usecase.RejectApproval(ctx, approval.ApprovalCode)

		assert.Error(t, err)
	})
}

func TestUpdateApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Editable While Request Made", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))

		reason := "Se requiere panel ampliado"
		updated, err := fixture.usecase.UpdateApproval(ctx, approval.ApprovalCode, &requests.UpdateApproval{Reason: &reason})

		assert.NoError(t, err)
		assert.Equal(t, "Se requiere panel ampliado", updated.ApprovalInfo.Reason)
	})

	t.Run("Locked Once Pending", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, err := fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)

		reason := "Se requiere panel ampliado"
		_, err = fixture.usecase.UpdateApproval(ctx, approval.ApprovalCode, &requests.UpdateApproval{Reason: &reason})

		assert.Error(t, err)
	})
}

func TestApproveApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Synthesizes The Derived Case", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, err := fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)

		approved, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateApproved, approved.ApprovalState)

		year := time.Now().UTC().Year()
		derived, err := fixture.caseRepo.FindByCaseCode(ctx, fmt.Sprintf("%d-%05d", year, 1))
		assert.NoError(t, err)
		assert.NotNil(t, derived, "approving must mint the derived case")

		assert.Equal(t, constvars.CaseStateInProcess, derived.State)
		assert.Equal(t, "P-100", derived.PatientInfo.PatientCode, "patient snapshot is carried over")
		assert.Equal(t, "PAT-01", derived.AssignedPathologist.ID)
		assert.Len(t, derived.Samples, 1)
		assert.Equal(t, "Gastric", derived.Samples[0].BodyRegion, "body region comes from the original's first sample")
		assert.Equal(t, "T-004", derived.Samples[0].Tests[0].ID, "derived sample carries the complementary tests")
		assert.Equal(t, 2, derived.Samples[0].Tests[0].Quantity)
		assert.Equal(t, "Dudas diagnósticas en la biopsia inicial", derived.PatientInfo.Observations, "request reason becomes the observations")
		assert.Equal(t, derived.CaseCode, approved.DerivedCaseCode, "the minted code is recorded on the approval")
	})

	t.Run("Original Without Samples Falls Back To General", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		fixture.caseRepo.cases["2025-00001"].Samples = nil
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)

		approved, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)

		derived, _ := fixture.caseRepo.FindByCaseCode(ctx, approved.DerivedCaseCode)
		assert.Equal(t, constvars.DefaultBodyRegion, derived.Samples[0].BodyRegion)
	})

	t.Run("Reserved Code Survives A Retry", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)

		// Simulate an earlier attempt that inserted the case but failed to
		// flip the approval state.
		year := time.Now().UTC().Year()
		reserved := fmt.Sprintf("%d-%05d", year, 77)
		stored := fixture.approvalRepo.approvals[approval.ApprovalCode]
		stored.DerivedCaseCode = reserved
		fixture.caseRepo.cases[reserved] = &models.Case{CaseCode: reserved, State: constvars.CaseStateInProcess}

		approved, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)

		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateApproved, approved.ApprovalState)
		assert.Equal(t, reserved, approved.DerivedCaseCode)
		_, minted := fixture.caseRepo.cases[fmt.Sprintf("%d-%05d", year, 1)]
		assert.False(t, minted, "the retry must reuse the reserved code instead of minting a new one")
	})

	t.Run("Re-Approve Is Idempotent", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)

		_, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)
		casesAfterFirst := len(fixture.caseRepo.cases)

		again, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateApproved, again.ApprovalState)
		assert.Equal(t, casesAfterFirst, len(fixture.caseRepo.cases), "a repeated approve must not mint a second case")
	})

	t.Run("Publishes The Approved Event", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)

		_, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)

		assert.NoError(t, err)
		assert.Contains(t, fixture.publisher.events, constvars.EventApprovalApproved)
	})

	t.Run("Caches Complementary Tests On The Original", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)

		_, err := fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)

		original, _ := fixture.caseRepo.FindByCaseCode(ctx, "2025-00001")
		assert.Len(t, original.ComplementaryTests, 1)
		assert.Equal(t, "T-004", original.ComplementaryTests[0].Code)
	})
}

func TestDeleteApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Approved Requests Stay On Record", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))
		_, _ = fixture.usecase.ManageApproval(ctx, approval.ApprovalCode)
		_, _ = fixture.usecase.ApproveApproval(ctx, approval.ApprovalCode)

		err := fixture.usecase.DeleteApproval(ctx, approval.ApprovalCode)

		assert.Error(t, err)
	})

	t.Run("Pending Requests Can Be Deleted", func(t *testing.T) {
		fixture := newApprovalFixture()
		seedOriginalCase(fixture.caseRepo, "2025-00001")
		approval, _ := fixture.usecase.CreateApproval(ctx, createApprovalRequest("2025-00001"))

		err := fixture.usecase.DeleteApproval(ctx, approval.ApprovalCode)
		assert.NoError(t, err)

		_, err = fixture.usecase.GetApproval(ctx, approval.ApprovalCode)
		assert.Error(t, err)
	})
}
