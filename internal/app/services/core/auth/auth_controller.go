package auth

import (
	"context"
	"net/http"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AuthController struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	InternalConfig *config.InternalConfig
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase, internalConfig *config.InternalConfig) *AuthController {
	return &AuthController{
		Log:            logger,
		AuthUsecase:    authUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *AuthController) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	request := new(requests.Login)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.AuthUsecase.Login(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, result)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := ctrl.sessionIDFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	if err := ctrl.AuthUsecase.Logout(ctx, sessionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccessMessage, nil)
}

func (ctrl *AuthController) sessionIDFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constvars.HeaderAuthorization)
	if authHeader == "" {
		return "", exceptions.ErrTokenMissing(nil)
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	sessionID, err := utils.ParseSessionJWT(token, ctrl.InternalConfig.JWT.Secret)
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	return sessionID, nil
}
