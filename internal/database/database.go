package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bungalowpark/internal/domain"

	_ "modernc.org/sqlite"
)

// Connect picks the driver from the DSN: postgres URLs go to the postgres
// driver, everything else is treated as a sqlite path (local dev, tests).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate applies the schema for every entity, leaves first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Bungalow{},
		&domain.Customer{},
		&domain.ExtraService{},
		&domain.Reservation{},
		&domain.Setting{},
		&domain.EmailTemplate{},
		&domain.TermsDocument{},
		&domain.ActivityLog{},
	)
}
