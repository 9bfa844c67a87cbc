package routers

import (
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/services/core/patients"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *patients.PatientController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", patientController.CreatePatient)
	router.Get("/", patientController.ListPatients)
	router.Get("/{patient_code}", patientController.GetPatient)
	router.Put("/{patient_code}", patientController.UpdatePatient)
}
