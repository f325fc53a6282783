package services

import (
	"bytes"
	"context"
	"plantflow/ingest"
	"plantflow/models"
	"plantflow/repositories"
)

type BatchStats struct {
	Total     int `json:"total"`
	Ready     int `json:"ready"`
	InProcess int `json:"in_process"`
}

type BatchDetail struct {
	Batch     *models.UploadBatch     `json:"batch"`
	Shipments []models.ShipmentRecord `json:"shipments"`
	Stats     BatchStats              `json:"stats"`
}

type BatchService struct {
	batches repositories.BatchReader
	records repositories.RecordStore
	limit   int
}

func NewBatchService(batches repositories.BatchReader, records repositories.RecordStore, limit int) *BatchService {
	if limit < 1 {
		limit = 7
	}
	return &BatchService{batches: batches, records: records, limit: limit}
}

// List returns the most recent batches, newest first.
func (s *BatchService) List(ctx context.Context) ([]models.UploadBatch, error) {
	batches, err := s.batches.ListBatches(ctx, s.limit)
	if err != nil {
		return nil, storeErr("Failed to fetch batches.", err)
	}
	if batches == nil {
		batches = []models.UploadBatch{}
	}
	return batches, nil
}

func (s *BatchService) Detail(ctx context.Context, id uint) (*BatchDetail, error) {
	batch, err := s.batches.FindBatch(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to fetch batch.", err)
	}
	shipments, err := s.records.RecordsByBatch(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to fetch shipments.", err)
	}
	if shipments == nil {
		shipments = []models.ShipmentRecord{}
	}

	stats := BatchStats{Total: len(shipments)}
	for _, r := range shipments {
		if r.IsReady {
			stats.Ready++
		}
	}
	stats.InProcess = stats.Total - stats.Ready

	return &BatchDetail{Batch: batch, Shipments: shipments, Stats: stats}, nil
}

// Export renders a batch as a workbook that can be uploaded again.
func (s *BatchService) Export(ctx context.Context, id uint) (*bytes.Buffer, *models.UploadBatch, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	buf, err := ingest.WriteRecords(detail.Shipments)
	if err != nil {
		return nil, nil, &StoreError{Message: "Failed to export batch.", Err: err}
	}
	return buf, detail.Batch, nil
}
