package contracts

import (
	"context"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/requests"
	"time"
)

type UnreadCaseRepository interface {
	CreateUnreadCase(ctx context.Context, unreadCase *models.UnreadCase) (string, error)
	FindByCaseCode(ctx context.Context, caseCode string) (*models.UnreadCase, error)
	FindUnreadCases(ctx context.Context, filter *requests.UnreadCaseFilter) ([]models.UnreadCase, int, error)
	ReplaceUnreadCase(ctx context.Context, unreadCase *models.UnreadCase) error
	// MarkDelivered flips each case to Completed one document at a time;
	// the batch is best-effort and returns the documents actually updated.
	MarkDelivered(ctx context.Context, caseCodes []string, deliveredTo string, deliveryDate time.Time) ([]models.UnreadCase, error)
}

type UnreadCaseUsecase interface {
	CreateUnreadCase(ctx context.Context, request *requests.CreateUnreadCase) (*models.UnreadCase, error)
	ListUnreadCases(ctx context.Context, filter *requests.UnreadCaseFilter) ([]models.UnreadCase, int, error)
	UpdateUnreadCase(ctx context.Context, caseCode string, request *requests.UpdateUnreadCase) (*models.UnreadCase, error)
	BulkMarkDelivered(ctx context.Context, request *requests.BulkMarkDelivered) ([]models.UnreadCase, error)
}
