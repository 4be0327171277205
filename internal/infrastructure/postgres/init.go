package postgres

import (
	"log"

	"github.com/bonuslab/loyalty-analytics-service/internal/config"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.AnalyticsConfig) *gorm.DB {
	dsn := cfg.AnalyticsDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.MerchantModel{},
		&models.MerchantSettingsModel{},
		&models.MerchantKpiDailyModel{},
		&models.WalletModel{},
		&models.ReceiptModel{},
		&models.TransactionModel{},
		&models.BirthdayGreetingModel{},
		&models.CustomerStatsModel{},
	)

	return db
}
