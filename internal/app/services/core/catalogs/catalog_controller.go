package catalogs

import (
	"context"
	"net/http"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"
	"patholab-service/internal/pkg/utils"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const signatureMaxUploadBytes = 2 << 20

type CatalogController struct {
	Log            *zap.Logger
	CatalogUsecase contracts.CatalogUsecase
	InternalConfig *config.InternalConfig
}

func NewCatalogController(logger *zap.Logger, catalogUsecase contracts.CatalogUsecase, internalConfig *config.InternalConfig) *CatalogController {
	return &CatalogController{
		Log:            logger,
		CatalogUsecase: catalogUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *CatalogController) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

func (ctrl *CatalogController) ListEntities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CatalogUsecase.ListEntities(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCatalogSuccessMessage, result)
}

func (ctrl *CatalogController) ListTests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CatalogUsecase.ListTests(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCatalogSuccessMessage, result)
}

func (ctrl *CatalogController) ListPathologists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CatalogUsecase.ListPathologists(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCatalogSuccessMessage, result)
}

func (ctrl *CatalogController) ListResidents(w http.ResponseWriter, r *http.Request) {
	ctrl.listPersonnel(w, constvars.RoleResident)
}

func (ctrl *CatalogController) ListAuxiliaries(w http.ResponseWriter, r *http.Request) {
	ctrl.listPersonnel(w, constvars.RoleAuxiliary)
}

func (ctrl *CatalogController) ListBillingStaff(w http.ResponseWriter, r *http.Request) {
	ctrl.listPersonnel(w, constvars.RoleBilling)
}

func (ctrl *CatalogController) listPersonnel(w http.ResponseWriter, role string) {
	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.CatalogUsecase.ListPersonnel(ctx, role)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCatalogSuccessMessage, result)
}

func (ctrl *CatalogController) UploadSignature(w http.ResponseWriter, r *http.Request) {
	pathologistCode := chi.URLParam(r, constvars.URLParamPathologistCode)
	if pathologistCode == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamPathologistCode))
		return
	}

	if err := r.ParseMultipartForm(signatureMaxUploadBytes); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	file, fileHeader, err := r.FormFile("signature")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	defer file.Close()

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	objectName, err := ctrl.CatalogUsecase.UploadSignature(ctx, pathologistCode, filepath.Ext(fileHeader.Filename), file, fileHeader.Size)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UploadSignatureSuccessMessage, map[string]string{
		"signature_ref": objectName,
	})
}

func (ctrl *CatalogController) SyncPathologists(w http.ResponseWriter, r *http.Request) {
	// The sync walks every pathologist; give it the statistics budget.
	timeout := time.Duration(ctrl.InternalConfig.App.StatisticsTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := ctrl.CatalogUsecase.SyncPathologistNames(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SyncPathologistsSuccessMessage, result)
}
