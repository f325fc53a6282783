package services

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"plantflow/models"
	"plantflow/repositories"

	"github.com/xuri/excelize/v2"
)

// memStore is an in-memory stand-in for the gorm repositories. Transaction
// snapshots state and restores it when fn fails.
type memStore struct {
	mu         sync.Mutex
	batches    []models.UploadBatch
	records    []models.ShipmentRecord
	logs       []models.UploadLog
	nextBatch  uint
	nextRecord uint

	failInsert error
	failPrune  error
	failFetch  error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) Transaction(ctx context.Context, fn func(tx repositories.BatchStore) error) error {
	s.mu.Lock()
	batches := append([]models.UploadBatch(nil), s.batches...)
	records := append([]models.ShipmentRecord(nil), s.records...)
	nextBatch, nextRecord := s.nextBatch, s.nextRecord
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.batches, s.records = batches, records
		s.nextBatch, s.nextRecord = nextBatch, nextRecord
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) deleteWhere(match func(models.UploadBatch) bool) []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	gone := map[uint]bool{}
	kept := s.batches[:0]
	for _, b := range s.batches {
		if match(b) {
			gone[b.ID] = true
			ids = append(ids, b.ID)
			continue
		}
		kept = append(kept, b)
	}
	s.batches = kept
	rest := s.records[:0]
	for _, r := range s.records {
		if !gone[r.BatchID] {
			rest = append(rest, r)
		}
	}
	s.records = rest
	return ids
}

func (s *memStore) DeleteBatchesByDate(ctx context.Context, date string) ([]uint, error) {
	return s.deleteWhere(func(b models.UploadBatch) bool { return b.UploadDate == date }), nil
}

func (s *memStore) DeleteBatchesOlderThan(ctx context.Context, date string) ([]uint, error) {
	if s.failPrune != nil {
		return nil, s.failPrune
	}
	return s.deleteWhere(func(b models.UploadBatch) bool { return b.UploadDate < date }), nil
}

func (s *memStore) InsertBatch(ctx context.Context, date string) (*models.UploadBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBatch++
	b := models.UploadBatch{ID: s.nextBatch, UploadDate: date}
	s.batches = append(s.batches, b)
	return &b, nil
}

func (s *memStore) BulkInsertRecords(ctx context.Context, batchID uint, records []models.ShipmentRecord) error {
	if s.failInsert != nil {
		return s.failInsert
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.nextRecord++
		r.ID = s.nextRecord
		r.BatchID = batchID
		s.records = append(s.records, r)
	}
	return nil
}

// seedBatch adds a batch dated date holding records, outside any upload.
func (s *memStore) seedBatch(date string, records ...models.ShipmentRecord) uint {
	b, _ := s.InsertBatch(context.Background(), date)
	_ = s.BulkInsertRecords(context.Background(), b.ID, records)
	return b.ID
}

func (s *memStore) sortedBatches() []models.UploadBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.UploadBatch(nil), s.batches...)
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDate > out[j].UploadDate })
	return out
}

func (s *memStore) FindBatch(ctx context.Context, id uint) (*models.UploadBatch, error) {
	if s.failFetch != nil {
		return nil, s.failFetch
	}
	for _, b := range s.sortedBatches() {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) LatestBatch(ctx context.Context) (*models.UploadBatch, error) {
	if s.failFetch != nil {
		return nil, s.failFetch
	}
	all := s.sortedBatches()
	if len(all) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &all[0], nil
}

func (s *memStore) ListBatches(ctx context.Context, limit int) ([]models.UploadBatch, error) {
	all := s.sortedBatches()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memStore) BatchesSince(ctx context.Context, date string) ([]models.UploadBatch, error) {
	var out []models.UploadBatch
	for _, b := range s.sortedBatches() {
		if b.UploadDate >= date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) RecordsByBatch(ctx context.Context, batchID uint) ([]models.ShipmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ShipmentRecord
	for _, r := range s.records {
		if r.BatchID == batchID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) BoardByBatch(ctx context.Context, batchID uint) ([]models.ShipmentRecord, error) {
	out, _ := s.RecordsByBatch(ctx, batchID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Plant < out[j].Plant })
	return out, nil
}

func (s *memStore) RecordsForPlant(ctx context.Context, plant string, batchIDs []uint) ([]models.ShipmentRecord, error) {
	var out []models.ShipmentRecord
	for _, id := range batchIDs {
		rs, _ := s.RecordsByBatch(ctx, id)
		for _, r := range rs {
			if r.Plant == plant {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (s *memStore) FindRecord(ctx context.Context, id uint) (*models.ShipmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) UpdateRecord(ctx context.Context, id uint, fields map[string]interface{}) (*models.ShipmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		r := &s.records[i]
		if r.ID != id {
			continue
		}
		for col, v := range fields {
			switch col {
			case "is_ready":
				r.IsReady = v.(bool)
			case "remark":
				r.Remark = v.(string)
			case "dispatch_remark":
				r.DispatchRemark = v.(string)
			case "nc_cc":
				r.NcCc = v.(string)
			case "mode":
				r.Mode = v.(string)
			case "preferred_mode":
				r.PreferredMode = v.(string)
			case "preferred_edd":
				r.PreferredEdd = v.(string)
			case "location":
				r.Location = v.(string)
			case "case_count":
				r.CaseCount = v.(int)
			case "weight":
				r.Weight = v.(float64)
			case "volume":
				r.Volume = v.(float64)
			case "amount":
				r.Amount = v.(float64)
			}
		}
		out := *r
		return &out, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) DeleteRecord(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *memStore) CreateLog(ctx context.Context, entry *models.UploadLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = 1
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *memStore) RecentLogs(ctx context.Context, limit int) ([]models.UploadLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.UploadLog{}
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}

// memCache records board cache traffic.
type memCache struct {
	data        map[string][]byte
	sets        int
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(ctx context.Context, key string, data []byte) {
	c.sets++
	c.data[key] = data
}

func (c *memCache) Invalidate(ctx context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.data, k)
		c.invalidated = append(c.invalidated, k)
	}
}

func fixedClock(date string) func() time.Time {
	return func() time.Time {
		t, _ := time.ParseInLocation("2006-01-02 15:04", date+" 10:30", time.UTC)
		return t
	}
}

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

var headerRow = []interface{}{
	"Plant", "Location", "PGI No.", "PGI Date", "Invoice No.", "Mode", "No. of Case", "Weight", "Volume", "Amount",
}

func shipmentRow(plant string, cases int) []interface{} {
	return []interface{}{plant, "Pune", "PG-" + plant, "15.03.2026", "INV-" + plant, "Road", cases, 10, 1, "1,000.50"}
}
