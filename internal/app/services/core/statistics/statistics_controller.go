package statistics

import (
	"context"
	"net/http"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type StatisticsController struct {
	Log                *zap.Logger
	StatisticsUsecase  contracts.StatisticsUsecase
	InternalConfig     *config.InternalConfig
}

func NewStatisticsController(logger *zap.Logger, statisticsUsecase contracts.StatisticsUsecase, internalConfig *config.InternalConfig) *StatisticsController {
	return &StatisticsController{
		Log:               logger,
		StatisticsUsecase: statisticsUsecase,
		InternalConfig:    internalConfig,
	}
}

// Statistics scan bounded but larger windows than the CRUD endpoints, so
// they run under their own timeout.
func (ctrl *StatisticsController) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.StatisticsTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

// yearFromRequest prefers the path segment, falling back to the query
// string for callers that still send ?year=.
func (ctrl *StatisticsController) yearFromRequest(r *http.Request) int {
	if raw := chi.URLParam(r, constvars.URLParamYear); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			return year
		}
	}
	return utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)
}

func (ctrl *StatisticsController) entityFilterFromQuery(r *http.Request) string {
	institution := r.URL.Query().Get(constvars.URLQueryParamInstitution)
	if institution == "" {
		return ""
	}
	if expanded, ok := constvars.EntityAbbreviations[institution]; ok {
		return expanded
	}
	return institution
}

func (ctrl *StatisticsController) DashboardOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.DashboardOverview(ctx)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) CasesByMonth(w http.ResponseWriter, r *http.Request) {
	year := ctrl.yearFromRequest(r)
	pathologistID := r.URL.Query().Get(constvars.URLQueryParamPathologist)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.CasesByMonth(ctx, year, pathologistID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) GeneralMetrics(w http.ResponseWriter, r *http.Request) {
	pathologistID := chi.URLParam(r, constvars.URLParamPathologistCode)
	if pathologistID == "" {
		pathologistID = r.URL.Query().Get(constvars.URLQueryParamPathologist)
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.GeneralMetrics(ctx, pathologistID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) OpportunityGeneral(w http.ResponseWriter, r *http.Request) {
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)
	pathologistID := chi.URLParam(r, constvars.URLParamPathologistCode)
	if pathologistID == "" {
		pathologistID = r.URL.Query().Get(constvars.URLQueryParamPathologist)
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.OpportunityGeneral(ctx, thresholdDays, pathologistID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) OpportunityMonthly(w http.ResponseWriter, r *http.Request) {
	month := utils.ParseIntQuery(r, constvars.URLQueryParamMonth, 0)
	year := utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)
	pathologistID := r.URL.Query().Get(constvars.URLQueryParamPathologist)
	entityName := ctrl.entityFilterFromQuery(r)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.OpportunityMonthly(ctx, month, year, thresholdDays, entityName, pathologistID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) OpportunityYearly(w http.ResponseWriter, r *http.Request) {
	year := ctrl.yearFromRequest(r)
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.OpportunityYearly(ctx, year, thresholdDays)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) EntityMonthlyPerformance(w http.ResponseWriter, r *http.Request) {
	month := utils.ParseIntQuery(r, constvars.URLQueryParamMonth, 0)
	year := utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.EntityMonthlyPerformance(ctx, month, year)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) EntityDetails(w http.ResponseWriter, r *http.Request) {
	entityName := ctrl.entityFilterFromQuery(r)
	if entityName == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLQueryParamInstitution))
		return
	}

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.EntityDetails(ctx, entityName)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) TestMonthlyPerformance(w http.ResponseWriter, r *http.Request) {
	month := utils.ParseIntQuery(r, constvars.URLQueryParamMonth, 0)
	year := utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)
	entityFilter := ctrl.entityFilterFromQuery(r)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.TestMonthlyPerformance(ctx, month, year, entityFilter)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) TestDetails(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, constvars.URLParamTestCode)
	if testID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamTestCode))
		return
	}
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.TestDetails(ctx, testID, thresholdDays)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) TestPathologists(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, constvars.URLParamTestCode)
	if testID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamTestCode))
		return
	}
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.TestPathologists(ctx, testID, thresholdDays)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) TestsOpportunitySummary(w http.ResponseWriter, r *http.Request) {
	month := utils.ParseIntQuery(r, constvars.URLQueryParamMonth, 0)
	year := utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.TestsOpportunitySummary(ctx, month, year, thresholdDays)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) TestsMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	year := utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.TestsMonthlyTrends(ctx, year)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) PathologistPanel(w http.ResponseWriter, r *http.Request) {
	pathologistID := chi.URLParam(r, constvars.URLParamPathologistCode)
	if pathologistID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamPathologistCode))
		return
	}
	thresholdDays := utils.ParseIntQuery(r, constvars.URLQueryParamThresholdDays, 0)
	year := utils.ParseIntQuery(r, constvars.URLQueryParamYear, 0)

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.StatisticsUsecase.PathologistPanel(ctx, pathologistID, thresholdDays, year)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}
