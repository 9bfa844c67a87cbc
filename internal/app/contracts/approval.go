package contracts

import (
	"context"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/requests"
	"time"
)

type ApprovalRepository interface {
	CreateApproval(ctx context.Context, approval *models.Approval) (string, error)
	FindByApprovalCode(ctx context.Context, approvalCode string) (*models.Approval, error)
	// FindActiveByOriginalCase returns an approval in Request Made or
	// Pending Approval for the case, or nil.
	FindActiveByOriginalCase(ctx context.Context, originalCaseCode string) (*models.Approval, error)
	FindApprovals(ctx context.Context, filter *requests.ApprovalFilter) ([]models.Approval, int, error)
	ReplaceApproval(ctx context.Context, approval *models.Approval, expectedUpdatedAt time.Time) error
	DeleteByApprovalCode(ctx context.Context, approvalCode string) error
}

type ApprovalUsecase interface {
	CreateApproval(ctx context.Context, request *requests.CreateApproval) (*models.Approval, error)
	GetApproval(ctx context.Context, approvalCode string) (*models.Approval, error)
	ListApprovals(ctx context.Context, filter *requests.ApprovalFilter) ([]models.Approval, int, error)
	UpdateApproval(ctx context.Context, approvalCode string, request *requests.UpdateApproval) (*models.Approval, error)
	ManageApproval(ctx context.Context, approvalCode string) (*models.Approval, error)
	ApproveApproval(ctx context.Context, approvalCode string) (*models.Approval, error)
	RejectApproval(ctx context.Context, approvalCode string) (*models.Approval, error)
	DeleteApproval(ctx context.Context, approvalCode string) error
}
