package database

import (
	"stockledger/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the postgres pool and migrates the stock tables.
func NewConnection(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.WithField("module", "database").Warn("Failed to auto-migrate models: " + err.Error())
	}
	return db, nil
}

// Migrate creates or updates every table the stores use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Item{},
		&model.LedgerEntry{},
		&model.OrderLine{},
		&model.DirectoryEntry{},
	)
}
