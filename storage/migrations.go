package storage

import "launchpad-engine/models"

// AutoMigrate ensures all engine tables exist.
func (db *DBClient) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.TokenCollect{},
		&models.TokenCollectAddress{},
		&models.FactoryConfig{},
		&models.FactoryRecord{},
		&models.FeeVaultDeposit{},
		&models.CampaignCollect{},
		&models.CampaignContribution{},
		&models.CampaignWhitelist{},
		&models.LiquidityPair{},
		&models.VestingCollect{},
		&models.VestingTranche{},
	)
}
