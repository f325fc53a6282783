package repositories

import (
	"context"
	"plantflow/models"

	"gorm.io/gorm"
)

type UploadLogRepository struct {
	DB *gorm.DB
}

func NewUploadLogRepository(db *gorm.DB) *UploadLogRepository {
	return &UploadLogRepository{DB: db}
}

func (r *UploadLogRepository) CreateLog(ctx context.Context, entry *models.UploadLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *UploadLogRepository) RecentLogs(ctx context.Context, limit int) ([]models.UploadLog, error) {
	var logs []models.UploadLog
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
