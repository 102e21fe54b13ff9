package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/env"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
	"github.com/angelmondragon/fleetdesk-backend/pkg/security"
)

const (
	envSeedAdminCoynoID  = "SEED_ADMIN_COYNO_ID"
	envSeedAdminEmail    = "SEED_ADMIN_EMAIL"
	envSeedAdminPassword = "SEED_ADMIN_PASSWORD"
)

var defaultDepartments = []models.Department{
	{Code: "ADMIN", Name: "Administration"},
	{Code: "OPS", Name: "Operations"},
	{Code: "LOG", Name: "Logistics"},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	admin := adminSeed{
		CoynoID:  env.Get(envSeedAdminCoynoID, "ADMIN001"),
		Email:    env.Get(envSeedAdminEmail, "admin@fleet.local"),
		Password: os.Getenv(envSeedAdminPassword),
	}
	if err := run(ctx, dbClient, cfg.Password, admin); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "admin", admin.CoynoID), "seed complete")
}

type adminSeed struct {
	CoynoID  string
	Email    string
	Password string
}

// run inserts the default departments and the bootstrap admin. Rows that
// already exist are left alone so the command can be re-run safely.
func run(ctx context.Context, client *db.Client, pwCfg config.PasswordConfig, admin adminSeed) error {
	if admin.Password == "" {
		return fmt.Errorf("%s is required", envSeedAdminPassword)
	}
	return client.WithTx(ctx, func(tx *gorm.DB) error {
		var errs error
		var adminDept *uint
		for _, dept := range defaultDepartments {
			row := dept
			if err := tx.Where("code = ?", row.Code).Attrs(models.Department{Name: row.Name, IsActive: true}).FirstOrCreate(&row).Error; err != nil {
				errs = multierr.Append(errs, fmt.Errorf("department %s: %w", dept.Code, err))
				continue
			}
			if row.Code == "ADMIN" {
				id := row.ID
				adminDept = &id
			}
		}
		if errs != nil {
			return errs
		}

		var existing models.User
		err := tx.Where("coyno_id = ?", admin.CoynoID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup admin: %w", err)
		}

		hash, err := security.HashPassword(admin.Password, pwCfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		user := models.User{
			CoynoID:      admin.CoynoID,
			Email:        admin.Email,
			PasswordHash: &hash,
			FirstName:    "System",
			LastName:     "Administrator",
			UserRole:     enums.UserRoleAdmin,
			DepartmentID: adminDept,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	})
}
