package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendas-ahora/api-vendas/internal/models"
)

// NewTestDB opens a fresh in-memory database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Client{},
		&models.Address{},
		&models.Phone{},
		&models.Product{},
		&models.Sale{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	return db
}
