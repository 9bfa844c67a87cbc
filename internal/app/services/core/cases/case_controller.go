package cases

import (
	"context"
	"net/http"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CaseController struct {
	Log            *zap.Logger
	CaseUsecase    contracts.CaseUsecase
	InternalConfig *config.InternalConfig
}

func NewCaseController(logger *zap.Logger, caseUsecase contracts.CaseUsecase, internalConfig *config.InternalConfig) *CaseController {
	return &CaseController{
		Log:            logger,
		CaseUsecase:    caseUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *CaseController) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

func principalFromRequest(r *http.Request) *models.Principal {
	principal, _ := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
	return principal
}

func (ctrl *CaseController) CreateCase(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateCase)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY))

	result, err := ctrl.CaseUsecase.CreateCase(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCaseSuccessMessage, result)
}

func (ctrl *CaseController) GetCase(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	if caseCode == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamCaseCode))
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.GetCase(ctx, caseCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseSuccessMessage, result)
}

func (ctrl *CaseController) ListCases(w http.ResponseWriter, r *http.Request) {
	filter, err := buildCaseFilter(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, total, err := ctrl.CaseUsecase.ListCases(ctx, filter)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	page := filter.Skip/filter.Limit + 1
	pagination := utils.BuildPaginationResponse(total, page, filter.Limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListCasesSuccessMessage, pagination, result)
}

func (ctrl *CaseController) UpdateCase(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	request := new(requests.UpdateCase)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.UpdateCase(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateCaseSuccessMessage, result)
}

func (ctrl *CaseController) DeleteCase(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	principal := principalFromRequest(r)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	if err := ctrl.CaseUsecase.DeleteCase(ctx, caseCode, principal); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteCaseSuccessMessage, nil)
}

func (ctrl *CaseController) AssignPathologist(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	request := new(requests.AssignPathologist)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.AssignPathologist(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AssignPathologistSuccessMessage, result)
}

func (ctrl *CaseController) UpdateResult(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	request := new(requests.UpdateResult)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.UpdateResult(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateResultSuccessMessage, result)
}

func (ctrl *CaseController) SignCase(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	principal := principalFromRequest(r)

	request := new(requests.SignCase)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.SignCase(ctx, caseCode, principal, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignCaseSuccessMessage, result)
}

func (ctrl *CaseController) DeliverCase(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	request := new(requests.DeliverCase)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.DeliverCase(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeliverCaseSuccessMessage, result)
}

func (ctrl *CaseController) AppendNote(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	request := new(requests.AppendNote)
	if err := utils.ParseRequestBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	author := ""
	if principal := principalFromRequest(r); principal != nil {
		author = principal.Name
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.AppendAdditionalNote(ctx, caseCode, request, author)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppendNoteSuccessMessage, result)
}

func (ctrl *CaseController) ListUrgent(w http.ResponseWriter, r *http.Request) {
	minDays := utils.ParseIntQuery(r, constvars.URLQueryParamMinDays, ctrl.InternalConfig.LIS.UrgentMinBusinessDays)
	limit := utils.ParseIntQuery(r, constvars.URLQueryParamLimit, constvars.DefaultUrgentLimit)
	pathologistID := r.URL.Query().Get(constvars.URLQueryParamPathologist)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.ListUrgent(ctx, minDays, limit, pathologistID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListUrgentCasesSuccessMessage, result)
}

func (ctrl *CaseController) GetRenderData(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, constvars.URLParamCaseCode)
	if caseCode == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamCaseCode))
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CaseUsecase.GetRenderData(ctx, caseCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRenderDataSuccessMessage, result)
}

func buildCaseFilter(r *http.Request) (*requests.CaseFilter, error) {
	skip, limit := utils.ParseSkipLimitQuery(r, 20, 100)

	dateFrom, err := utils.ParseDateQuery(r, constvars.URLQueryParamDateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := utils.ParseDateQuery(r, constvars.URLQueryParamDateTo)
	if err != nil {
		return nil, err
	}

	entityName := ""
	if institution := r.URL.Query().Get(constvars.URLQueryParamInstitution); institution != "" {
		entityName = institution
		if expanded, ok := constvars.EntityAbbreviations[institution]; ok {
			entityName = expanded
		}
	}

	return &requests.CaseFilter{
		Search:          r.URL.Query().Get(constvars.URLQueryParamSearch),
		State:           r.URL.Query().Get(constvars.URLQueryParamState),
		Priority:        r.URL.Query().Get(constvars.URLQueryParamPriority),
		PathologistID:   r.URL.Query().Get(constvars.URLQueryParamPathologist),
		EntityID:        r.URL.Query().Get(constvars.URLQueryParamEntity),
		EntityName:      entityName,
		PatientCode:     r.URL.Query().Get(constvars.URLParamPatientCode),
		TestID:          r.URL.Query().Get(constvars.URLQueryParamTest),
		DateFrom:        dateFrom,
		DateTo:          dateTo,
		SignedDateRange: r.URL.Query().Get(constvars.URLQueryParamDateField) == "signed_at",
		Skip:            skip,
		Limit:           limit,
		SortBy:          r.URL.Query().Get(constvars.URLQueryParamSortBy),
		SortOrder:       r.URL.Query().Get(constvars.URLQueryParamSortOrder),
	}, nil
}
