package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"patholab-service/internal/app/models"
	"patholab-service/internal/app/services/core/catalogs"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	importFile   string
	importDryRun bool
)

var importPathologistsCmd = &cobra.Command{
	Use:   "import-pathologists",
	Short: "Import pathologists from a CSV file (code,name,email,medical_license)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImportPathologists()
	},
}

func init() {
	importPathologistsCmd.Flags().StringVar(&importFile, "file", "pathologists.csv", "CSV file to import")
	importPathologistsCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "log what would be imported without writing")
	rootCmd.AddCommand(importPathologistsCmd)
}

func runImportPathologists() error {
	env := newSeederEnv()
	ctx := context.Background()

	pathologistRepository := catalogs.NewPathologistMongoRepository(env.MongoDB, env.DriverConfig.MongoDB.DbName)

	file, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", importFile, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	limiter := rate.NewLimiter(rate.Limit(env.InternalConfig.LIS.SyncRatePerSecond), 1)

	imported := 0
	skipped := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", importFile, err)
		}
		line++

		if len(record) < 2 {
			env.Log.Printf("line %d: skipping malformed record", line)
			skipped++
			continue
		}

		pathologist := &models.Pathologist{
			PathologistCode: record[0],
			Name:            record[1],
			IsActive:        true,
		}
		if len(record) > 2 {
			pathologist.Email = record[2]
		}
		if len(record) > 3 {
			pathologist.MedicalLicense = record[3]
		}

		existing, err := pathologistRepository.FindByPathologistCode(ctx, pathologist.PathologistCode)
		if err != nil {
			return err
		}
		if existing != nil {
			env.Log.Printf("line %d: %s already exists, skipping", line, pathologist.PathologistCode)
			skipped++
			continue
		}

		if importDryRun {
			env.Log.Printf("dry-run: would import %s (%s)", pathologist.PathologistCode, pathologist.Name)
			imported++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		now := time.Now().UTC()
		pathologist.CreatedAt = now
		pathologist.UpdatedAt = now
		if _, err := pathologistRepository.CreatePathologist(ctx, pathologist); err != nil {
			return fmt.Errorf("importing %s: %w", pathologist.PathologistCode, err)
		}
		imported++
	}

	env.Log.Printf("imported %d pathologists, skipped %d", imported, skipped)
	return nil
}
