package database

import (
	"prosper-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists")
// when running behind connection poolers (PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all ledger models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Member{},
		&domain.ContributionWindow{},
		&domain.Contribution{},
		&domain.Penalty{},
		&domain.Investment{},
		&domain.HoldingShare{},
		&domain.Asset{},
		&domain.AssetShare{},
		&domain.BuyOut{},
		&domain.ExitRequest{},
		&domain.Reversal{},
	)
}
