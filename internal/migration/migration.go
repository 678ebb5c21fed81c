// Package migration applies the embedded schema migrations at startup.
package migration

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

// Run brings the schema up to date. Postgres goes through the versioned SQL
// migrations; any other dialect (sqlite in local dev) syncs from the models
// directly.
func Run(db *gorm.DB, cfg config.Config, log *zap.Logger) error {
	log = log.Named("migration")

	if cfg.DB.Type != "postgres" {
		log.Info("non-postgres database, syncing schema from models",
			zap.String("type", cfg.DB.Type),
		)
		return db.AutoMigrate(
			&scheduledomain.RecurringWindow{},
			&scheduledomain.WindowDog{},
			&bookingdomain.PendingService{},
			&pricingdomain.PricingRule{},
			&approvaldomain.DogInteraction{},
		)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, cfg.DB.Name, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info("schema up to date",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
