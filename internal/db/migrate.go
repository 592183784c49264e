package db

import (
	"frontoffice/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}
	return db.Gorm.AutoMigrate(
		&models.Team{},
		&models.Player{},
		&models.TradeProposal{},
	)
}
