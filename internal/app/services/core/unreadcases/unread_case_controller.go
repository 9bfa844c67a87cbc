package unreadcases

import (
	"context"
	"net/http"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UnreadCaseController struct {
	Log               *zap.Logger
	UnreadCaseUsecase contracts.UnreadCaseUsecase
	InternalConfig    *config.InternalConfig
}

func NewUnreadCaseController(logger *zap.Logger, unreadCaseUsecase contracts.UnreadCaseUsecase, internalConfig *config.InternalConfig) *UnreadCaseController {
	return &UnreadCaseController{
		Log:               logger,
		UnreadCaseUsecase: unreadCaseUsecase,
		InternalConfig:    internalConfig,
	}
}

func (ctrl *UnreadCaseController) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

func (ctrl *UnreadCaseController) CreateUnreadCase(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateUnreadCase)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.UnreadCaseUsecase.CreateUnreadCase(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateUnreadCaseSuccessMessage, result)
}

func (ctrl *UnreadCaseController) ListUnreadCases(w http.ResponseWriter, r *http.Request) {
	skip, limit := utils.ParseSkipLimitQuery(r, 20, 100)

	entryDateFrom, err := utils.ParseDateQuery(r, constvars.URLQueryParamDateFrom)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	entryDateTo, err := utils.ParseDateQuery(r, constvars.URLQueryParamDateTo)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	filter := &requests.UnreadCaseFilter{
		Search:        r.URL.Query().Get(constvars.URLQueryParamSearch),
		Institution:   r.URL.Query().Get(constvars.URLQueryParamInstitution),
		TestGroupType: r.URL.Query().Get(constvars.URLQueryParamTestGroupType),
		Status:        r.URL.Query().Get(constvars.URLQueryParamStatus),
		EntryDateFrom: entryDateFrom,
		EntryDateTo:   entryDateTo,
		Skip:          skip,
		Limit:         limit,
		SortBy:        r.URL.Query().Get(constvars.URLQueryParamSortBy),
		SortOrder:     r.URL.Query().Get(constvars.URLQueryParamSortOrder),
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, total, err := ctrl.UnreadCaseUsecase.ListUnreadCases(ctx, filter)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	page := skip/limit + 1
	pagination := utils.BuildPaginationResponse(total, page, limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListUnreadCasesSuccessMessage, pagination, result)
}

func (ctrl *UnreadCaseController) UpdateUnreadCase(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	request := new(requests.UpdateUnreadCase)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.UnreadCaseUsecase.UpdateUnreadCase(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateUnreadCaseSuccessMessage, result)
}

func (ctrl *UnreadCaseController) BulkMarkDelivered(w http.ResponseWriter, r *http.Request) {
	request := new(requests.BulkMarkDelivered)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.UnreadCaseUsecase.BulkMarkDelivered(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MarkDeliveredSuccessMessage, result)
}
