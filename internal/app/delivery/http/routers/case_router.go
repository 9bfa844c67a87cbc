package routers

import (
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/cases"
	"patholab-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachCaseRoutes(router chi.Router, middlewares *middlewares.Middlewares, caseController *cases.CaseController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", caseController.CreateCase)
	router.Get("/", caseController.ListCases)
	router.Get("/urgent", caseController.ListUrgent)

	router.Route("/{case_code}", func(r chi.Router) {
		r.Get("/", caseController.GetCase)
		r.Put("/", caseController.UpdateCase)
		r.With(middlewares.RequireRole(constvars.RoleAdministrator)).Delete("/", caseController.DeleteCase)

		r.Put("/assign", caseController.AssignPathologist)
		r.Put("/result", caseController.UpdateResult)
		r.With(middlewares.RequireRole(constvars.RoleAdministrator, constvars.RolePathologist)).Put("/sign", caseController.SignCase)
		r.Put("/deliver", caseController.DeliverCase)
		r.Post("/notes", caseController.AppendNote)
		r.Get("/render-data", caseController.GetRenderData)
	})
}
