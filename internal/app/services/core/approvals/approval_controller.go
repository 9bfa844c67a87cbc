package approvals

import (
	"context"
	"net/http"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ApprovalController struct {
	Log             *zap.Logger
	ApprovalUsecase contracts.ApprovalUsecase
	InternalConfig  *config.InternalConfig
}

func NewApprovalController(logger *zap.Logger, approvalUsecase contracts.ApprovalUsecase, internalConfig *config.InternalConfig) *ApprovalController {
	return &ApprovalController{
		Log:             logger,
		ApprovalUsecase: approvalUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *ApprovalController) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

func (ctrl *ApprovalController) CreateApproval(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateApproval)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ApprovalUsecase.CreateApproval(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) GetApproval(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, constvars.URLParamApprovalCode)
	if approvalCode == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamApprovalCode))
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ApprovalUsecase.GetApproval(ctx, approvalCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) ListApprovals(w http.ResponseWriter, r *http.Request) {
	skip, limit := utils.ParseSkipLimitQuery(r, 20, 100)
	filter := &requests.ApprovalFilter{
		State:            r.URL.Query().Get(constvars.URLQueryParamState),
		OriginalCaseCode: r.URL.Query().Get(constvars.URLParamCaseCode),
		Skip:             skip,
		Limit:            limit,
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, total, err := ctrl.ApprovalUsecase.ListApprovals(ctx, filter)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	page := skip/limit + 1
	pagination := utils.BuildPaginationResponse(total, page, limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListApprovalsSuccessMessage, pagination, result)
}

func (ctrl *ApprovalController) UpdateApproval(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, constvars.URLParamApprovalCode)
	request := new(requests.UpdateApproval)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ApprovalUsecase.UpdateApproval(ctx, approvalCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) ManageApproval(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, constvars.URLParamApprovalCode)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ApprovalUsecase.ManageApproval(ctx, approvalCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ManageApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) ApproveApproval(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, constvars.URLParamApprovalCode)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ApprovalUsecase.ApproveApproval(ctx, approvalCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) RejectApproval(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, constvars.URLParamApprovalCode)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ApprovalUsecase.RejectApproval(ctx, approvalCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RejectApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) DeleteApproval(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, constvars.URLParamApprovalCode)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	if err := ctrl.ApprovalUsecase.DeleteApproval(ctx, approvalCode); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteApprovalSuccessMessage, nil)
}
