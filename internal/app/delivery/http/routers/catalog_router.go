package routers

import (
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/catalogs"
	"patholab-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachCatalogRoutes(router chi.Router, middlewares *middlewares.Middlewares, catalogController *catalogs.CatalogController) {
	router.Route("/catalogs", func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Get("/entities", catalogController.ListEntities)
		r.Get("/tests", catalogController.ListTests)
		r.Get("/pathologists", catalogController.ListPathologists)
		r.Get("/residents", catalogController.ListResidents)
		r.Get("/auxiliaries", catalogController.ListAuxiliaries)
		r.Get("/billing", catalogController.ListBillingStaff)
	})

	router.With(middlewares.Authenticate).
		Post("/pathologists/{pathologist_code}/signature", catalogController.UploadSignature)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireRole(constvars.RoleAdministrator))

		r.Post("/sync-pathologists", catalogController.SyncPathologists)
	})
}
