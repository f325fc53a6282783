package migration

import (
	"plantflow/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UploadBatch{},
		&models.ShipmentRecord{},
		&models.UploadLog{},
	)
}
