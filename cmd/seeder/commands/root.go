package commands

import (
	"patholab-service/internal/app/config"
	"patholab-service/internal/app/drivers/database"
	"patholab-service/internal/app/drivers/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

type seederEnv struct {
	MongoDB        *mongo.Client
	DriverConfig   *config.DriverConfig
	InternalConfig *config.InternalConfig
	Log            *logrus.Logger
}

var rootCmd = &cobra.Command{
	Use:           "seeder",
	Short:         "Seed and import utilities for the pathology service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func newSeederEnv() *seederEnv {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogger(internalConfig)

	return &seederEnv{
		MongoDB:        database.NewMongoDB(driverConfig, log),
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
		Log:            log,
	}
}
