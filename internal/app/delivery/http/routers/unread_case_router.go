package routers

import (
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/unreadcases"

	"github.com/go-chi/chi/v5"
)

func attachUnreadCaseRoutes(router chi.Router, middlewares *middlewares.Middlewares, unreadCaseController *unreadcases.UnreadCaseController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", unreadCaseController.ListUnreadCases)
	router.Post("/", unreadCaseController.CreateUnreadCase)
	router.Patch("/{case_code}", unreadCaseController.UpdateUnreadCase)
	router.Post("/batch/mark-delivered", unreadCaseController.BulkMarkDelivered)
}
