package repositories

import (
	"context"
	"plantflow/models"

	"gorm.io/gorm"
)

type ShipmentRepository struct {
	DB *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{DB: db}
}

func (r *ShipmentRepository) RecordsByBatch(ctx context.Context, batchID uint) ([]models.ShipmentRecord, error) {
	var records []models.ShipmentRecord
	err := r.DB.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

// BoardByBatch orders records the way the TV board lists them.
func (r *ShipmentRepository) BoardByBatch(ctx context.Context, batchID uint) ([]models.ShipmentRecord, error) {
	var records []models.ShipmentRecord
	err := r.DB.WithContext(ctx).
		Select("id", "batch_id", "plant", "location", "is_ready").
		Where("batch_id = ?", batchID).
		Order("plant ASC").
		Order("id ASC").
		Find(&records).Error
	return records, err
}

func (r *ShipmentRepository) RecordsForPlant(ctx context.Context, plant string, batchIDs []uint) ([]models.ShipmentRecord, error) {
	var records []models.ShipmentRecord
	if len(batchIDs) == 0 {
		return records, nil
	}
	err := r.DB.WithContext(ctx).
		Where("plant = ? AND batch_id IN ?", plant, batchIDs).
		Order("batch_id DESC").
		Order("id ASC").
		Find(&records).Error
	return records, err
}

func (r *ShipmentRepository) FindRecord(ctx context.Context, id uint) (*models.ShipmentRecord, error) {
	var record models.ShipmentRecord
	if err := r.DB.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// UpdateRecord applies only the given columns. A map is used so false and 0
// are written too.
func (r *ShipmentRepository) UpdateRecord(ctx context.Context, id uint, fields map[string]interface{}) (*models.ShipmentRecord, error) {
	var record models.ShipmentRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&record).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&record, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *ShipmentRepository) DeleteRecord(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.ShipmentRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
