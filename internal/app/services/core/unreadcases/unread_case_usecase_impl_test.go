package unreadcases

import (
	"context"
	"fmt"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUnreadCaseRepository struct {
	unreadCases map[string]*models.UnreadCase
	lastFilter  *requests.UnreadCaseFilter
}

func newFakeUnreadCaseRepository() *fakeUnreadCaseRepository {
	return &fakeUnreadCaseRepository{unreadCases: make(map[string]*models.UnreadCase)}
}

func (f *fakeUnreadCaseRepository) CreateUnreadCase(ctx context.Context, unreadCase *models.UnreadCase) (string, error) {
	copied := *unreadCase
	f.unreadCases[unreadCase.CaseCode] = &copied
	return unreadCase.CaseCode, nil
}

func (f *fakeUnreadCaseRepository) FindByCaseCode(ctx context.Context, caseCode string) (*models.UnreadCase, error) {
	unreadCase, ok := f.unreadCases[caseCode]
	if !ok {
		return nil, nil
	}
	copied := *unreadCase
	return &copied, nil
}

func (f *fakeUnreadCaseRepository) FindUnreadCases(ctx context.Context, filter *requests.UnreadCaseFilter) ([]models.UnreadCase, int, error) {
	f.lastFilter = filter
	result := make([]models.UnreadCase, 0, len(f.unreadCases))
	for _, unreadCase := range f.unreadCases {
		result = append(result, *unreadCase)
	}
	return result, len(result), nil
}

func (f *fakeUnreadCaseRepository) ReplaceUnreadCase(ctx context.Context, unreadCase *models.UnreadCase) error {
	copied := *unreadCase
	f.unreadCases[unreadCase.CaseCode] = &copied
	return nil
}

func (f *fakeUnreadCaseRepository) MarkDelivered(ctx context.Context, caseCodes []string, deliveredTo string, deliveryDate time.Time) ([]models.UnreadCase, error) {
	updated := make([]models.UnreadCase, 0, len(caseCodes))
	for _, caseCode := range caseCodes {
		unreadCase, ok := f.unreadCases[caseCode]
		if !ok || unreadCase.Status != constvars.UnreadCaseStatusInProcess {
			continue
		}
		unreadCase.Status = constvars.UnreadCaseStatusCompleted
		unreadCase.DeliveredTo = deliveredTo
		unreadCase.DeliveryDate = &deliveryDate
		updated = append(updated, *unreadCase)
	}
	return updated, nil
}

type fakeUnreadCounterService struct {
	seq int
}

func (f *fakeUnreadCounterService) NextCaseCode(ctx context.Context, year int) (string, error) {
	return "", nil
}

func (f *fakeUnreadCounterService) PeekCaseNumber(ctx context.Context, year int) (int, error) {
	return 0, nil
}

func (f *fakeUnreadCounterService) NextApprovalCode(ctx context.Context, year int) (string, error) {
	return "", nil
}

func (f *fakeUnreadCounterService) NextUnreadCaseCode(ctx context.Context, year int) (string, error) {
	f.seq++
	return fmt.Sprintf("TC%d-%05d", year, f.seq), nil
}

func histochemistryGroup(quantities ...int) requests.UnreadCaseTestGroupRequest {
	tests := make([]requests.UnreadCaseTestRequest, 0, len(quantities))
	for i, quantity := range quantities {
		tests = append(tests, requests.UnreadCaseTestRequest{
			Code:     fmt.Sprintf("HQ-%02d", i+1),
			Quantity: quantity,
		})
	}
	return requests.UnreadCaseTestGroupRequest{Type: constvars.TestGroupHistochemistry, Tests: tests}
}

func TestCreateUnreadCase(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocates TC Code When Omitted", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		unreadCase, err := usecase.CreateUnreadCase(ctx, &requests.CreateUnreadCase{PatientName: "Laura Pérez"})

		assert.NoError(t, err)
		year := time.Now().UTC().Year()
		assert.Equal(t, fmt.Sprintf("TC%d-00001", year), unreadCase.CaseCode)
		assert.Equal(t, constvars.UnreadCaseStatusInProcess, unreadCase.Status)
		assert.NotNil(t, unreadCase.EntryDate, "entry date defaults to now")
	})

	t.Run("Keeps Provided Code", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		unreadCase, err := usecase.CreateUnreadCase(ctx, &requests.CreateUnreadCase{CaseCode: "TC2025-00042"})

		assert.NoError(t, err)
		assert.Equal(t, "TC2025-00042", unreadCase.CaseCode)
	})

	t.Run("Derives Plate Count From Test Groups", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		unreadCase, err := usecase.CreateUnreadCase(ctx, &requests.CreateUnreadCase{
			TestGroups: []requests.UnreadCaseTestGroupRequest{histochemistryGroup(2, 3)},
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, unreadCase.NumberOfPlates)
	})

	t.Run("Explicit Plate Count Wins", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		unreadCase, err := usecase.CreateUnreadCase(ctx, &requests.CreateUnreadCase{
			TestGroups:     []requests.UnreadCaseTestGroupRequest{histochemistryGroup(2, 3)},
			NumberOfPlates: 9,
		})

		assert.NoError(t, err)
		assert.Equal(t, 9, unreadCase.NumberOfPlates)
	})
}

func TestListUnreadCases(t *testing.T) {
	ctx := context.Background()

	t.Run("Maps Display Name To Enum", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		_, _, err := usecase.ListUnreadCases(ctx, &requests.UnreadCaseFilter{TestGroupType: "IHQ de baja complejidad"})

		assert.NoError(t, err)
		assert.Equal(t, constvars.TestGroupLowComplexityIHQ, repo.lastFilter.TestGroupType)
	})

	t.Run("Enum Value Passes Through", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		_, _, err := usecase.ListUnreadCases(ctx, &requests.UnreadCaseFilter{TestGroupType: constvars.TestGroupSpecialIHQ})

		assert.NoError(t, err)
		assert.Equal(t, constvars.TestGroupSpecialIHQ, repo.lastFilter.TestGroupType)
	})
}

func TestUpdateUnreadCase(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *fakeUnreadCaseRepository) {
		repo.unreadCases["TC2025-00001"] = &models.UnreadCase{
			CaseCode:       "TC2025-00001",
			NumberOfPlates: 2,
			Status:         constvars.UnreadCaseStatusInProcess,
			TestGroups: []models.UnreadCaseTestGroup{
				{Type: constvars.TestGroupHistochemistry, Tests: []models.UnreadCaseTest{{Code: "HQ-01", Quantity: 2}}},
			},
		}
	}

	t.Run("Group Change Recomputes Plates", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		seed(repo)
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		updated, err := usecase.UpdateUnreadCase(ctx, "TC2025-00001", &requests.UpdateUnreadCase{
			TestGroups: []requests.UnreadCaseTestGroupRequest{histochemistryGroup(4, 4)},
		})

		assert.NoError(t, err)
		assert.Equal(t, 8, updated.NumberOfPlates)
	})

	t.Run("Explicit Plates Override The Recompute", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		seed(repo)
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		plates := 3
		updated, err := usecase.UpdateUnreadCase(ctx, "TC2025-00001", &requests.UpdateUnreadCase{
			TestGroups:     []requests.UnreadCaseTestGroupRequest{histochemistryGroup(4, 4)},
			NumberOfPlates: &plates,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, updated.NumberOfPlates)
	})

	t.Run("Unknown Code Is Not Found", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		_, err := usecase.UpdateUnreadCase(ctx, "TC2025-09999", &requests.UpdateUnreadCase{})

		assert.Error(t, err)
	})
}

func TestBulkMarkDelivered(t *testing.T) {
	ctx := context.Background()

	t.Run("Best Effort Across The Batch", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		repo.unreadCases["TC2025-00001"] = &models.UnreadCase{CaseCode: "TC2025-00001", Status: constvars.UnreadCaseStatusInProcess}
		repo.unreadCases["TC2025-00002"] = &models.UnreadCase{CaseCode: "TC2025-00002", Status: constvars.UnreadCaseStatusCompleted}
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		updated, err := usecase.BulkMarkDelivered(ctx, &requests.BulkMarkDelivered{
			CaseCodes:   []string{"TC2025-00001", "TC2025-00002", "TC2025-00003"},
			DeliveredTo: "Mensajería HPTU",
		})

		assert.NoError(t, err)
		assert.Len(t, updated, 1, "already-completed and unknown codes are skipped")
		assert.Equal(t, "TC2025-00001", updated[0].CaseCode)
		assert.Equal(t, constvars.UnreadCaseStatusCompleted, updated[0].Status)
		assert.Equal(t, "Mensajería HPTU", updated[0].DeliveredTo)
		assert.NotNil(t, updated[0].DeliveryDate)
	})

	t.Run("Nothing Updated Is Not Found", func(t *testing.T) {
		repo := newFakeUnreadCaseRepository()
		usecase := NewUnreadCaseUsecase(repo, &fakeUnreadCounterService{}, zap.NewNop())

		_, err := usecase.BulkMarkDelivered(ctx, &requests.BulkMarkDelivered{
			CaseCodes:   []string{"TC2025-00001"},
			DeliveredTo: "Mensajería",
		})

		assert.Error(t, err)
	})
}
