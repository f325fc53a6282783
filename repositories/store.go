package repositories

import (
	"context"
	"errors"
	"plantflow/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a batch or record id does not exist.
var ErrNotFound = errors.New("not found")

// BatchStore is the write side used by ingestion. Transaction runs fn against
// a store bound to one database transaction; returning an error rolls back.
// The delete methods return the ids of the batches they removed.
type BatchStore interface {
	DeleteBatchesByDate(ctx context.Context, date string) ([]uint, error)
	InsertBatch(ctx context.Context, date string) (*models.UploadBatch, error)
	BulkInsertRecords(ctx context.Context, batchID uint, records []models.ShipmentRecord) error
	DeleteBatchesOlderThan(ctx context.Context, date string) ([]uint, error)
	Transaction(ctx context.Context, fn func(tx BatchStore) error) error
}

// BatchReader looks batches up for the dashboard.
type BatchReader interface {
	FindBatch(ctx context.Context, id uint) (*models.UploadBatch, error)
	LatestBatch(ctx context.Context) (*models.UploadBatch, error)
	ListBatches(ctx context.Context, limit int) ([]models.UploadBatch, error)
	BatchesSince(ctx context.Context, date string) ([]models.UploadBatch, error)
}

type RecordStore interface {
	RecordsByBatch(ctx context.Context, batchID uint) ([]models.ShipmentRecord, error)
	BoardByBatch(ctx context.Context, batchID uint) ([]models.ShipmentRecord, error)
	RecordsForPlant(ctx context.Context, plant string, batchIDs []uint) ([]models.ShipmentRecord, error)
	FindRecord(ctx context.Context, id uint) (*models.ShipmentRecord, error)
	UpdateRecord(ctx context.Context, id uint, fields map[string]interface{}) (*models.ShipmentRecord, error)
	DeleteRecord(ctx context.Context, id uint) error
}

type UploadLogStore interface {
	CreateLog(ctx context.Context, entry *models.UploadLog) error
	RecentLogs(ctx context.Context, limit int) ([]models.UploadLog, error)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var (
	_ BatchStore     = (*BatchRepository)(nil)
	_ BatchReader    = (*BatchRepository)(nil)
	_ RecordStore    = (*ShipmentRepository)(nil)
	_ UploadLogStore = (*UploadLogRepository)(nil)
)
