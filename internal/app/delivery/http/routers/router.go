package routers

import (
	"fmt"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/approvals"
	"patholab-service/internal/app/services/core/auth"
	"patholab-service/internal/app/services/core/cases"
	"patholab-service/internal/app/services/core/catalogs"
	"patholab-service/internal/app/services/core/patients"
	"patholab-service/internal/app/services/core/statistics"
	"patholab-service/internal/app/services/core/unreadcases"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *auth.AuthController,
	caseController *cases.CaseController,
	statisticsController *statistics.StatisticsController,
	approvalController *approvals.ApprovalController,
	unreadCaseController *unreadcases.UnreadCaseController,
	patientController *patients.PatientController,
	catalogController *catalogs.CatalogController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, authController)
			})

			r.Route("/cases", func(r chi.Router) {
				r.Route("/statistics", func(r chi.Router) {
					attachStatisticsRoutes(r, middlewares, statisticsController)
				})
				// Case routes carry their own middleware stack.
				r.Group(func(r chi.Router) {
					attachCaseRoutes(r, middlewares, caseController)
				})
			})

			r.Route("/approvals", func(r chi.Router) {
				attachApprovalRoutes(r, middlewares, approvalController)
			})

			r.Route("/unread-cases", func(r chi.Router) {
				attachUnreadCaseRoutes(r, middlewares, unreadCaseController)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, middlewares, patientController)
			})

			attachCatalogRoutes(r, middlewares, catalogController)
		})
	})
}
