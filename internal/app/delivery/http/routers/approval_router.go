package routers

import (
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/approvals"

	"github.com/go-chi/chi/v5"
)

func attachApprovalRoutes(router chi.Router, middlewares *middlewares.Middlewares, approvalController *approvals.ApprovalController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", approvalController.CreateApproval)
	router.Get("/", approvalController.ListApprovals)

	router.Route("/{approval_code}", func(r chi.Router) {
		r.Get("/", approvalController.GetApproval)
		r.Put("/", approvalController.UpdateApproval)
		r.Delete("/", approvalController.DeleteApproval)

		r.Post("/manage", approvalController.ManageApproval)
		r.Post("/approve", approvalController.ApproveApproval)
		r.Post("/reject", approvalController.RejectApproval)
	})
}
