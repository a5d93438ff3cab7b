package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/campusreg/internal/app/models"
	appRepos "github.com/yigit/campusreg/internal/app/repositories"
)

// InstitutionWriter is the part of the institution store the seeder needs
type InstitutionWriter interface {
	FindByEmail(ctx context.Context, email string) (*appModels.Institution, error)
	Insert(ctx context.Context, inst *appModels.Institution) error
}

// demoInstitutions covers each review state so the directory can be explored locally
func demoInstitutions() []appModels.Institution {
	return []appModels.Institution{
		{
			Name:          "Northfield College",
			Email:         "registrar@northfield.example",
			AccountNumber: "0001000100",
			Address:       "12 College Road",
			Phone:         "5550100",
			IsActive:      appModels.InstitutionApproved,
		},
		{
			Name:          "Riverside Institute",
			Email:         "admissions@riverside.example",
			AccountNumber: "0002000200",
			Address:       "3 River Lane",
			Phone:         "5550200",
			IsActive:      appModels.InstitutionPending,
		},
		{
			Name:          "Hilltop Academy",
			Email:         "office@hilltop.example",
			AccountNumber: "0003000300",
			Address:       "7 Summit Ave",
			Phone:         "5550300",
			IsActive:      appModels.InstitutionDenied,
		},
	}
}

// CreateDemoData inserts the demo institutions that are not present yet.
// It is idempotent and meant for development mode only.
func CreateDemoData(ctx context.Context, store InstitutionWriter, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo institutions...")
	var finalErr error // collect errors without stopping the process
	created := 0

	for _, inst := range demoInstitutions() {
		existing, err := store.FindByEmail(ctx, inst.Email)
		if err != nil {
			lgr.Error().Err(err).Str("email", inst.Email).Msg("Error checking demo institution")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if existing != nil {
			continue
		}

		inst.ID = uuid.New()
		inst.Role = appModels.RoleInstitution

		err = store.Insert(ctx, &inst)
		switch {
		case err == nil:
			created++
		case errors.Is(err, appRepos.ErrDuplicateInstitutionEmail), errors.Is(err, appRepos.ErrDuplicateInstitutionName):
			lgr.Warn().Str("name", inst.Name).Msg("Demo institution already exists")
		default:
			lgr.Error().Err(err).Str("name", inst.Name).Msg("Error creating demo institution")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("created", created).Msg("Demo institutions ready")
	return finalErr
}
