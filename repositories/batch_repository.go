package repositories

import (
	"context"
	"plantflow/models"

	"gorm.io/gorm"
)

type BatchRepository struct {
	DB        *gorm.DB
	chunkSize int
}

func NewBatchRepository(db *gorm.DB, chunkSize int) *BatchRepository {
	if chunkSize < 1 {
		chunkSize = 500
	}
	return &BatchRepository{DB: db, chunkSize: chunkSize}
}

func (r *BatchRepository) Transaction(ctx context.Context, fn func(tx BatchStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BatchRepository{DB: tx, chunkSize: r.chunkSize})
	})
}

// deleteBatches removes the matching batches and their shipments and returns
// the deleted batch ids. Shipments are deleted explicitly so drivers without
// enforced cascades end up the same.
func (r *BatchRepository) deleteBatches(ctx context.Context, query string, arg interface{}) ([]uint, error) {
	db := r.DB.WithContext(ctx)
	var ids []uint
	if err := db.Model(&models.UploadBatch{}).Where(query, arg).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := db.Where("batch_id IN ?", ids).Delete(&models.ShipmentRecord{}).Error; err != nil {
		return nil, err
	}
	if err := db.Where("id IN ?", ids).Delete(&models.UploadBatch{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *BatchRepository) DeleteBatchesByDate(ctx context.Context, date string) ([]uint, error) {
	return r.deleteBatches(ctx, "upload_date = ?", date)
}

func (r *BatchRepository) DeleteBatchesOlderThan(ctx context.Context, date string) ([]uint, error) {
	return r.deleteBatches(ctx, "upload_date < ?", date)
}

func (r *BatchRepository) InsertBatch(ctx context.Context, date string) (*models.UploadBatch, error) {
	batch := models.UploadBatch{UploadDate: date}
	if err := r.DB.WithContext(ctx).Create(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *BatchRepository) BulkInsertRecords(ctx context.Context, batchID uint, records []models.ShipmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		records[i].BatchID = batchID
	}
	return r.DB.WithContext(ctx).CreateInBatches(records, r.chunkSize).Error
}

func (r *BatchRepository) FindBatch(ctx context.Context, id uint) (*models.UploadBatch, error) {
	var batch models.UploadBatch
	if err := r.DB.WithContext(ctx).First(&batch, id).Error; err != nil {
		return nil, translate(err)
	}
	return &batch, nil
}

func (r *BatchRepository) LatestBatch(ctx context.Context) (*models.UploadBatch, error) {
	var batch models.UploadBatch
	if err := r.DB.WithContext(ctx).Order("upload_date DESC").First(&batch).Error; err != nil {
		return nil, translate(err)
	}
	return &batch, nil
}

func (r *BatchRepository) ListBatches(ctx context.Context, limit int) ([]models.UploadBatch, error) {
	var batches []models.UploadBatch
	err := r.DB.WithContext(ctx).Order("upload_date DESC").Limit(limit).Find(&batches).Error
	return batches, err
}

func (r *BatchRepository) BatchesSince(ctx context.Context, date string) ([]models.UploadBatch, error) {
	var batches []models.UploadBatch
	err := r.DB.WithContext(ctx).
		Where("upload_date >= ?", date).
		Order("upload_date DESC").
		Find(&batches).Error
	return batches, err
}
