package services

import (
	"context"
	"errors"
	"io"
	"log"
	"plantflow/ingest"
	"plantflow/metrics"
	"plantflow/models"
	"plantflow/repositories"
	"plantflow/utils"
	"time"
)

type UploadConfig struct {
	RetentionDays int
	StrictHeaders bool
	Location      *time.Location
}

// UploadResult is returned to the uploader on success.
type UploadResult struct {
	BatchID    uint   `json:"batch_id"`
	UploadDate string `json:"upload_date"`
	RowCount   int    `json:"row_count"`
}

type UploadService struct {
	store repositories.BatchStore
	logs  repositories.UploadLogStore
	board BoardCache
	cfg   UploadConfig
	now   utils.Clock
}

func NewUploadService(store repositories.BatchStore, logs repositories.UploadLogStore, board BoardCache, cfg UploadConfig) *UploadService {
	if cfg.Location == nil {
		cfg.Location = utils.IST
	}
	if cfg.RetentionDays < 1 {
		cfg.RetentionDays = 1
	}
	return &UploadService{
		store: store,
		logs:  logs,
		board: orNoop(board),
		cfg:   cfg,
		now:   time.Now,
	}
}

// WithClock replaces the clock used to decide the batch date.
func (s *UploadService) WithClock(c utils.Clock) *UploadService {
	s.now = c
	return s
}

// Ingest validates an uploaded workbook and stores it as today's batch,
// replacing any batch already uploaded today, then prunes batches that fell
// out of the retention window.
//
// Validation failures are *ingest.ValidationError and leave the store
// untouched. Store failures are *StoreError; the replace, create and insert
// steps share one transaction so a failure never leaves a partial batch.
func (s *UploadService) Ingest(ctx context.Context, filename string, src io.Reader) (*UploadResult, error) {
	parsed, err := s.parse(filename, src)
	if err != nil {
		s.finish(ctx, filename, models.UploadStatusRejected, nil, err)
		return nil, err
	}

	now := s.now()
	today := utils.Today(now, s.cfg.Location)

	var (
		batch    *models.UploadBatch
		replaced []uint
	)
	err = s.store.Transaction(ctx, func(tx repositories.BatchStore) error {
		ids, err := tx.DeleteBatchesByDate(ctx, today)
		if err != nil {
			return &StoreError{Message: MsgReplaceFailed, Err: err}
		}
		b, err := tx.InsertBatch(ctx, today)
		if err != nil {
			return &StoreError{Message: MsgBatchFailed, Err: err}
		}
		if err := tx.BulkInsertRecords(ctx, b.ID, parsed.Records); err != nil {
			return &StoreError{Message: MsgInsertFailed, Err: err}
		}
		batch, replaced = b, ids
		return nil
	})
	if err != nil {
		var serr *StoreError
		if !errors.As(err, &serr) {
			err = &StoreError{Message: MsgCommitFailed, Err: err}
		}
		log.Printf("[Upload] %s: %v", filename, err)
		s.finish(ctx, filename, models.UploadStatusFailed, nil, err)
		return nil, err
	}

	keys := []string{BoardKey(0), BoardKey(batch.ID)}
	for _, id := range append(replaced, s.prune(ctx, now)...) {
		keys = append(keys, BoardKey(id))
	}
	s.board.Invalidate(ctx, keys...)

	result := &UploadResult{
		BatchID:    batch.ID,
		UploadDate: batch.UploadDate,
		RowCount:   len(parsed.Records),
	}

	metrics.RowsIngested.Add(float64(result.RowCount))
	metrics.RowsSkipped.Add(float64(parsed.Report.SkippedRows))
	metrics.CellsDefaulted.WithLabelValues("date").Add(float64(parsed.Report.DefaultedDate))
	metrics.CellsDefaulted.WithLabelValues("number").Add(float64(parsed.Report.DefaultedNum))
	log.Printf("[Upload] %s: batch %d (%s) stored %d rows, skipped %d, unmapped headers %v",
		filename, result.BatchID, result.UploadDate, result.RowCount, parsed.Report.SkippedRows, parsed.Headers.Unmapped)

	s.finish(ctx, filename, models.UploadStatusSuccess, result, nil)
	return result, nil
}

func (s *UploadService) parse(filename string, src io.Reader) (*ingest.Result, error) {
	if src == nil {
		return nil, &ingest.ValidationError{Message: ingest.MsgInvalidFile}
	}
	if err := ingest.ValidateFilename(filename); err != nil {
		return nil, err
	}
	return ingest.Parse(src, ingest.Options{StrictHeaders: s.cfg.StrictHeaders})
}

// prune is best-effort: a failure is logged and the upload still succeeds.
// It returns the ids of the pruned batches.
func (s *UploadService) prune(ctx context.Context, now time.Time) []uint {
	cutoff := utils.DaysBefore(now, s.cfg.Location, s.cfg.RetentionDays)
	ids, err := s.store.DeleteBatchesOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[Upload] Pruning batches before %s failed: %v", cutoff, err)
		return nil
	}
	if len(ids) > 0 {
		metrics.BatchesPruned.Add(float64(len(ids)))
		log.Printf("[Upload] Pruned %d batches dated before %s", len(ids), cutoff)
	}
	return ids
}

func (s *UploadService) finish(ctx context.Context, filename, status string, result *UploadResult, cause error) {
	metrics.UploadsTotal.WithLabelValues(status).Inc()
	if s.logs == nil {
		return
	}

	entry := &models.UploadLog{
		Filename: filename,
		Status:   status,
	}
	if result != nil {
		entry.BatchID = result.BatchID
		entry.UploadDate = result.UploadDate
		entry.RowCount = result.RowCount
	}
	if cause != nil {
		entry.Message = cause.Error()
	}
	if err := s.logs.CreateLog(ctx, entry); err != nil {
		log.Printf("[Upload] Failed to write upload log for %s: %v", filename, err)
	}
}

// RecentUploads lists the latest upload attempts, newest first.
func (s *UploadService) RecentUploads(ctx context.Context, limit int) ([]models.UploadLog, error) {
	if s.logs == nil {
		return []models.UploadLog{}, nil
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	logs, err := s.logs.RecentLogs(ctx, limit)
	if err != nil {
		return nil, storeErr(MsgFetchFailed, err)
	}
	if logs == nil {
		logs = []models.UploadLog{}
	}
	return logs, nil
}
