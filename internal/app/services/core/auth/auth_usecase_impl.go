package auth

import (
	"context"
	"fmt"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/dto/responses"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository  contracts.UserRepository
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:  userRepository,
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
		Log:             logger,
	}
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	user, err := uc.UserRepository.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}
	if !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	sessionID := uuid.NewString()
	principal := &models.Principal{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		StaffCode: user.StaffCode,
	}

	sessionKey := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	sessionTTL := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	if err := uc.RedisRepository.Set(ctx, sessionKey, principal, sessionTTL); err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(sessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	return &responses.Login{
		Token: token,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionID string) error {
	sessionKey := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	return uc.RedisRepository.Delete(ctx, sessionKey)
}

func (uc *authUsecase) ResolvePrincipal(ctx context.Context, sessionID string) (*models.Principal, error) {
	sessionKey := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	data, err := uc.RedisRepository.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	var principal models.Principal
	if err := json.Unmarshal([]byte(data), &principal); err != nil {
		return nil, exceptions.ErrInvalidSession(err)
	}
	return &principal, nil
}
