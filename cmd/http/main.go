package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/delivery/http/middlewares"
	"patholab-service/internal/app/delivery/http/routers"
	"patholab-service/internal/app/drivers/database"
	"patholab-service/internal/app/drivers/logger"
	"patholab-service/internal/app/drivers/messaging"
	"patholab-service/internal/app/drivers/storage"
	"patholab-service/internal/app/services/core/approvals"
	"patholab-service/internal/app/services/core/auth"
	"patholab-service/internal/app/services/core/cases"
	"patholab-service/internal/app/services/core/catalogs"
	"patholab-service/internal/app/services/core/counters"
	"patholab-service/internal/app/services/core/patients"
	"patholab-service/internal/app/services/core/statistics"
	"patholab-service/internal/app/services/core/unreadcases"
	"patholab-service/internal/app/services/shared/events"
	redisrepo "patholab-service/internal/app/services/shared/redis"
	miniostorage "patholab-service/internal/app/services/shared/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)
	rabbitChannel := messaging.NewRabbitMQChannel(driverConfig, internalConfig, log)
	minioClient := storage.NewMinio(driverConfig, log)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	database.EnsureIndexes(indexCtx, mongoDB, driverConfig, log)
	indexCancel()

	bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitChannel,
		Minio:          minioClient,
		Logger:         log,
		ZapLogger:      zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	objectStorage := miniostorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig)
	eventPublisher := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.EventQueueName, bootstrap.ZapLogger)

	// Counters
	counterMongoRepository := counters.NewCounterMongoRepository(bootstrap.MongoDB, dbName)
	counterService := counters.NewCounterService(counterMongoRepository)

	// Catalogs
	entityMongoRepository := catalogs.NewEntityMongoRepository(bootstrap.MongoDB, dbName)
	testMongoRepository := catalogs.NewTestMongoRepository(bootstrap.MongoDB, dbName)
	pathologistMongoRepository := catalogs.NewPathologistMongoRepository(bootstrap.MongoDB, dbName)
	personnelMongoRepository := catalogs.NewPersonnelMongoRepository(bootstrap.MongoDB, dbName)

	// Patients
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	patientUsecase := patients.NewPatientUsecase(patientMongoRepository, bootstrap.ZapLogger)
	patientController := patients.NewPatientController(bootstrap.ZapLogger, patientUsecase, bootstrap.InternalConfig)

	// Cases
	caseMongoRepository := cases.NewCaseMongoRepository(bootstrap.MongoDB, dbName)
	caseUsecase := cases.NewCaseUsecase(
		caseMongoRepository,
		patientMongoRepository,
		pathologistMongoRepository,
		counterService,
		redisRepository,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.ZapLogger,
	)
	caseController := cases.NewCaseController(bootstrap.ZapLogger, caseUsecase, bootstrap.InternalConfig)

	// Approvals
	approvalMongoRepository := approvals.NewApprovalMongoRepository(bootstrap.MongoDB, dbName)
	approvalUsecase := approvals.NewApprovalUsecase(
		approvalMongoRepository,
		caseMongoRepository,
		counterService,
		redisRepository,
		eventPublisher,
		bootstrap.ZapLogger,
	)
	approvalController := approvals.NewApprovalController(bootstrap.ZapLogger, approvalUsecase, bootstrap.InternalConfig)

	// Statistics
	statisticsMongoRepository := statistics.NewStatisticsMongoRepository(bootstrap.MongoDB, dbName)
	statisticsUsecase := statistics.NewStatisticsUsecase(
		statisticsMongoRepository,
		pathologistMongoRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.ZapLogger,
	)
	statisticsController := statistics.NewStatisticsController(bootstrap.ZapLogger, statisticsUsecase, bootstrap.InternalConfig)

	// Unread cases
	unreadCaseMongoRepository := unreadcases.NewUnreadCaseMongoRepository(bootstrap.MongoDB, dbName)
	unreadCaseUsecase := unreadcases.NewUnreadCaseUsecase(unreadCaseMongoRepository, counterService, bootstrap.ZapLogger)
	unreadCaseController := unreadcases.NewUnreadCaseController(bootstrap.ZapLogger, unreadCaseUsecase, bootstrap.InternalConfig)

	// Catalog surface
	catalogUsecase := catalogs.NewCatalogUsecase(
		entityMongoRepository,
		testMongoRepository,
		pathologistMongoRepository,
		personnelMongoRepository,
		caseMongoRepository,
		objectStorage,
		bootstrap.InternalConfig,
		bootstrap.ZapLogger,
	)
	catalogController := catalogs.NewCatalogController(bootstrap.ZapLogger, catalogUsecase, bootstrap.InternalConfig)

	// Auth
	userMongoRepository := auth.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	authUsecase := auth.NewAuthUsecase(userMongoRepository, redisRepository, bootstrap.InternalConfig, bootstrap.ZapLogger)
	authController := auth.NewAuthController(bootstrap.ZapLogger, authUsecase, bootstrap.InternalConfig)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.ZapLogger, authUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		authController,
		caseController,
		statisticsController,
		approvalController,
		unreadCaseController,
		patientController,
		catalogController,
	)
}
