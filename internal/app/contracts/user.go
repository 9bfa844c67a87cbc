package contracts

import (
	"context"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/dto/responses"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, sessionID string) error
	ResolvePrincipal(ctx context.Context, sessionID string) (*models.Principal, error)
}
