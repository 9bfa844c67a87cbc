package routers

import (
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/statistics"

	"github.com/go-chi/chi/v5"
)

func attachStatisticsRoutes(router chi.Router, middlewares *middlewares.Middlewares, statisticsController *statistics.StatisticsController) {
	router.Use(middlewares.Authenticate)

	router.Route("/dashboard", func(r chi.Router) {
		r.Get("/overview", statisticsController.DashboardOverview)
		r.Get("/cases-by-month/{year}", statisticsController.CasesByMonth)
	})

	router.Route("/metrics", func(r chi.Router) {
		r.Get("/general", statisticsController.GeneralMetrics)
		r.Get("/pathologist/{pathologist_code}", statisticsController.GeneralMetrics)
	})

	router.Route("/opportunity", func(r chi.Router) {
		r.Get("/general", statisticsController.OpportunityGeneral)
		r.Get("/pathologist/{pathologist_code}", statisticsController.OpportunityGeneral)
		r.Get("/monthly", statisticsController.OpportunityMonthly)
		r.Get("/yearly/{year}", statisticsController.OpportunityYearly)
		r.Get("/tests", statisticsController.TestsOpportunitySummary)
		r.Get("/pathologists", statisticsController.OpportunityMonthly)
	})

	router.Route("/entities", func(r chi.Router) {
		r.Get("/monthly-performance", statisticsController.EntityMonthlyPerformance)
		r.Get("/details", statisticsController.EntityDetails)
		r.Get("/pathologists", statisticsController.OpportunityMonthly)
	})

	router.Route("/tests", func(r chi.Router) {
		r.Get("/monthly-performance", statisticsController.TestMonthlyPerformance)
		r.Get("/details/{test_code}", statisticsController.TestDetails)
		r.Get("/pathologists/{test_code}", statisticsController.TestPathologists)
		r.Get("/opportunity-summary", statisticsController.TestsOpportunitySummary)
		r.Get("/monthly-trends", statisticsController.TestsMonthlyTrends)
	})

	router.Get("/pathologists/{pathologist_code}/panel", statisticsController.PathologistPanel)
}
