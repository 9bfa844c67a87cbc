package contracts

import (
	"context"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/dto/responses"
	"time"
)

type CaseRepository interface {
	CreateCase(ctx context.Context, caseModel *models.Case) (string, error)
	FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error)
	FindCases(ctx context.Context, filter *requests.CaseFilter) ([]models.Case, int, error)
	// ReplaceCase writes the full document guarded by the previous
	// updated_at value; a guard miss on an existing document is a Conflict.
	ReplaceCase(ctx context.Context, caseModel *models.Case, expectedUpdatedAt time.Time) error
	DeleteByCaseCode(ctx context.Context, caseCode string) error
	// FindPending returns non-completed cases created at or before the given
	// cutoff; the urgent view refines the candidates in application code.
	FindPending(ctx context.Context, createdBefore time.Time, pathologistID string, limit int) ([]models.Case, error)
	BulkUpdatePathologistName(ctx context.Context, pathologistID, name string) (int64, error)
}

type CaseUsecase interface {
	CreateCase(ctx context.Context, request *requests.CreateCase) (*models.Case, error)
	GetCase(ctx context.Context, caseCode string) (*models.Case, error)
	ListCases(ctx context.Context, filter *requests.CaseFilter) ([]models.Case, int, error)
	UpdateCase(ctx context.Context, caseCode string, request *requests.UpdateCase) (*models.Case, error)
	DeleteCase(ctx context.Context, caseCode string, principal *models.Principal) error
	AssignPathologist(ctx context.Context, caseCode string, request *requests.AssignPathologist) (*models.Case, error)
	UpdateResult(ctx context.Context, caseCode string, request *requests.UpdateResult) (*models.Case, error)
	SignCase(ctx context.Context, caseCode string, principal *models.Principal, request *requests.SignCase) (*models.Case, error)
	DeliverCase(ctx context.Context, caseCode string, request *requests.DeliverCase) (*models.Case, error)
	AppendAdditionalNote(ctx context.Context, caseCode string, request *requests.AppendNote, author string) (*models.Case, error)
	ListUrgent(ctx context.Context, minBusinessDays, limit int, pathologistID string) ([]responses.UrgentCase, error)
	GetRenderData(ctx context.Context, caseCode string) (*responses.CaseRenderData, error)
}
