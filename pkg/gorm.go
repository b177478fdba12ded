package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/config"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
)

// InitDatabase opens the PostgreSQL connection used by the repositories
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate applies the schema for all persisted models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Word{},
		&models.Student{},
		&models.AnswerRecord{},
		&models.StatisticsRecord{},
		&models.Message{},
	)
}
