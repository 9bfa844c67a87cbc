package commands

import (
	"context"
	"fmt"
	"patholab-service/internal/app/models"
	"patholab-service/internal/app/services/core/cases"
	"patholab-service/internal/app/services/core/counters"
	"patholab-service/internal/pkg/constvars"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	seedCount       int
	seedYear        int
	seedStartNumber int
	seedDryRun      bool
)

// Small fixture pool the generator cycles through. The point is realistic
// shape, not realistic volume distribution.
var seedPatients = []models.PatientInfo{
	{PatientCode: "SEED-0001", Name: "María Fernanda López", Age: 54, Gender: constvars.GenderFemale, EntityInfo: models.EntityInfo{ID: "ENT-01", Name: "Hospital Alma Máter de Antioquia"}, CareType: constvars.CareTypeAmbulatory},
	{PatientCode: "SEED-0002", Name: "Carlos Andrés Restrepo", Age: 61, Gender: constvars.GenderMale, EntityInfo: models.EntityInfo{ID: "ENT-02", Name: "Hospital General de Medellín Luz Castro G."}, CareType: constvars.CareTypeHospitalized},
	{PatientCode: "SEED-0003", Name: "Luisa Marín Ortiz", Age: 37, Gender: constvars.GenderFemale, EntityInfo: models.EntityInfo{ID: "ENT-03", Name: "Hospital Pablo Tobón Uribe"}, CareType: constvars.CareTypeAmbulatory},
	{PatientCode: "SEED-0004", Name: "Jorge Iván Zapata", Age: 72, Gender: constvars.GenderMale, EntityInfo: models.EntityInfo{ID: "ENT-04", Name: "IPS Universitaria"}, CareType: constvars.CareTypeHospitalized},
}

var seedTests = []models.SampleTest{
	{ID: "T-001", Name: "Biopsia simple", Quantity: 1},
	{ID: "T-002", Name: "Biopsia compleja", Quantity: 1},
	{ID: "T-003", Name: "Citología", Quantity: 2},
	{ID: "T-004", Name: "Inmunohistoquímica", Quantity: 1},
}

var seedCasesCmd = &cobra.Command{
	Use:   "seed-cases",
	Short: "Insert synthetic cases for a given year",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeedCases()
	},
}

func init() {
	seedCasesCmd.Flags().IntVar(&seedCount, "count", 100, "number of cases to insert")
	seedCasesCmd.Flags().IntVar(&seedYear, "year", time.Now().UTC().Year(), "allocation year for the case codes")
	seedCasesCmd.Flags().IntVar(&seedStartNumber, "start-number", 1, "first consecutive to use")
	seedCasesCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "log what would be inserted without writing")
	rootCmd.AddCommand(seedCasesCmd)
}

func runSeedCases() error {
	env := newSeederEnv()
	ctx := context.Background()

	caseRepository := cases.NewCaseMongoRepository(env.MongoDB, env.DriverConfig.MongoDB.DbName)
	counterRepository := counters.NewCounterMongoRepository(env.MongoDB, env.DriverConfig.MongoDB.DbName)

	if seedStartNumber+seedCount-1 > constvars.CaseConsecutiveMax {
		return fmt.Errorf("seed range exceeds the yearly capacity of %d", constvars.CaseConsecutiveMax)
	}

	limiter := rate.NewLimiter(rate.Limit(env.InternalConfig.LIS.SyncRatePerSecond), 1)

	now := time.Now().UTC()
	for i := 0; i < seedCount; i++ {
		caseCode := fmt.Sprintf("%d-%05d", seedYear, seedStartNumber+i)
		patient := seedPatients[i%len(seedPatients)]
		test := seedTests[i%len(seedTests)]
		createdAt := now.AddDate(0, 0, -(seedCount - i))

		caseModel := &models.Case{
			CaseCode:    caseCode,
			PatientInfo: patient,
			Service:     "Patología quirúrgica",
			Samples: []models.Sample{
				{BodyRegion: constvars.DefaultBodyRegion, Tests: []models.SampleTest{test}},
			},
			State:           constvars.CaseStateInProcess,
			Priority:        constvars.CasePriorityNormal,
			AdditionalNotes: []models.AdditionalNote{},
			TimeModel:       models.TimeModel{CreatedAt: createdAt, UpdatedAt: createdAt},
		}

		if seedDryRun {
			env.Log.Printf("dry-run: would insert case %s (%s)", caseCode, patient.Name)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := caseRepository.CreateCase(ctx, caseModel); err != nil {
			return fmt.Errorf("inserting case %s: %w", caseCode, err)
		}
		env.Log.Printf("inserted case %s", caseCode)
	}

	if seedDryRun {
		env.Log.Printf("dry-run: would advance the %d case counter past %d", seedYear, seedStartNumber+seedCount-1)
		return nil
	}

	// Advance the counter so the next live allocation does not collide with
	// the seeded range.
	target := seedStartNumber + seedCount - 1
	for {
		current, err := counterRepository.CurrentSequence(ctx, constvars.CounterCaseConsecutive, seedYear)
		if err != nil {
			return err
		}
		if current >= target {
			break
		}
		if _, err := counterRepository.NextSequence(ctx, constvars.CounterCaseConsecutive, seedYear); err != nil {
			return err
		}
	}

	env.Log.Printf("seeded %d cases for %d starting at %d", seedCount, seedYear, seedStartNumber)
	return nil
}
