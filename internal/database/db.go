package database

import (
	"log"

	"tailorpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError lets the services distinguish unique-constraint conflicts
// (duplicate email, phone, invoice number) from generic write failures.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs auto-migration for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Client{},
		&model.CardInfo{},
		&model.Category{},
		&model.Product{},
		&model.ProductCategory{},
		&model.Invoice{},
		&model.Transaction{},
		&model.Tailoring{},
		&model.Retrieved{},
		&model.Report{},
		&model.Notification{},
	)
}
