package services

import (
	"context"
	"errors"
	"testing"

	"plantflow/ingest"
	"plantflow/models"

	"github.com/xuri/excelize/v2"
)

func TestBatchListAndDetail(t *testing.T) {
	store := newMemStore()
	latest := seededRecords(store)
	svc := NewBatchService(store, store, 1)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != latest {
		t.Fatalf("unexpected list %+v", list)
	}

	detail, err := svc.Detail(context.Background(), latest)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Stats != (BatchStats{Total: 3, Ready: 1, InProcess: 2}) || len(detail.Shipments) != 3 {
		t.Fatalf("unexpected detail %+v", detail)
	}

	if _, err := svc.Detail(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBatchExport(t *testing.T) {
	store := newMemStore()
	latest := seededRecords(store)
	buf, batch, err := NewBatchService(store, store, 7).Export(context.Background(), latest)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if batch.UploadDate != "2026-03-15" {
		t.Fatalf("unexpected batch %+v", batch)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("export is not a workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || rows[0][0] != ingest.TemplateHeaders[0] || rows[1][0] != "P1" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestPlantHistory(t *testing.T) {
	store := newMemStore()
	store.seedBatch("2026-03-01", models.ShipmentRecord{Plant: "P1", Weight: 100})
	store.seedBatch("2026-03-10", models.ShipmentRecord{Plant: "P1", Weight: 5, Amount: 10, Volume: 1, InvoiceNo: "A"})
	store.seedBatch("2026-03-15",
		models.ShipmentRecord{Plant: "P1", Weight: 2.5, Amount: 20, Volume: 2, InvoiceNo: "B", IsReady: true},
		models.ShipmentRecord{Plant: "P2", Weight: 50},
	)
	svc := NewPlantService(store, store, nil, PlantConfig{HistoryDays: 7}).WithClock(fixedClock("2026-03-15"))

	got, err := svc.History(context.Background(), " P1 ")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(got.History) != 2 || got.History[0].UploadDate != "2026-03-15" || got.History[1].InvoiceNo != "A" {
		t.Fatalf("unexpected history %+v", got.History)
	}
	want := HistorySummary{TotalWeight: 7.5, TotalAmount: 30, TotalVolume: 3, DaysPresent: 2}
	if got.Summary == nil || *got.Summary != want {
		t.Fatalf("summary = %+v, want %+v", got.Summary, want)
	}
}

func TestPlantHistoryEdges(t *testing.T) {
	svc := NewPlantService(newMemStore(), newMemStore(), nil, PlantConfig{}).WithClock(fixedClock("2026-03-15"))

	_, err := svc.History(context.Background(), "  ")
	var ierr *InputError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected input error, got %v", err)
	}

	got, err := svc.History(context.Background(), "P1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if got.Summary != nil || len(got.History) != 0 || got.History == nil {
		t.Fatalf("expected empty history, got %+v", got)
	}
}

func TestPlantStatusUsesCache(t *testing.T) {
	store := newMemStore()
	latest := seededRecords(store)
	cache := newMemCache()
	plants := NewPlantService(store, store, cache, PlantConfig{BoardTTL: 15})
	records := NewRecordService(store, store, cache)
	ctx := context.Background()

	first, err := plants.Status(ctx, 0)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if first.Batch.ID != latest || first.Summary != (BoardSummary{Total: 3, Ready: 1, Pending: 2}) {
		t.Fatalf("unexpected status %+v", first)
	}
	if cache.sets != 1 {
		t.Fatalf("expected board to be cached, sets=%d", cache.sets)
	}
	if _, err := plants.Status(ctx, 0); err != nil || cache.sets != 1 {
		t.Fatalf("expected cache hit, sets=%d err=%v", cache.sets, err)
	}

	ready := true
	if _, err := records.Update(ctx, first.Entries[0].ID, RecordPatch{IsReady: &ready}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	after, err := plants.Status(ctx, 0)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if after.Summary.Ready != 2 || cache.sets != 2 {
		t.Fatalf("stale board after update: %+v sets=%d", after.Summary, cache.sets)
	}
}

func TestPlantStatusNoBatch(t *testing.T) {
	svc := NewPlantService(newMemStore(), newMemStore(), nil, PlantConfig{})
	got, err := svc.Status(context.Background(), 0)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if got.Batch != nil || got.Entries == nil || got.Summary.Total != 0 {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestPlantStatusDropsReplacedBatch(t *testing.T) {
	store := newMemStore()
	cache := newMemCache()
	plants := NewPlantService(store, store, cache, PlantConfig{BoardTTL: 15})
	uploads := newUploader(store, cache, "2026-03-15")
	ctx := context.Background()

	first, err := uploads.Ingest(ctx, "a.xlsx", workbook(t, headerRow, shipmentRow("A1", 1)))
	if err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if got, err := plants.Status(ctx, first.BatchID); err != nil || len(got.Entries) != 1 || cache.sets != 1 {
		t.Fatalf("expected cached board, got %+v sets=%d err=%v", got, cache.sets, err)
	}

	second, err := uploads.Ingest(ctx, "b.xlsx", workbook(t, headerRow, shipmentRow("B1", 1)))
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if second.BatchID == first.BatchID {
		t.Fatalf("expected a new batch id")
	}

	got, err := plants.Status(ctx, first.BatchID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if got.Batch != nil || len(got.Entries) != 0 {
		t.Fatalf("replaced batch %d still served: %+v", first.BatchID, got)
	}
}

func TestIngestInvalidatesPrunedBoards(t *testing.T) {
	store := newMemStore()
	old := store.seedBatch("2026-02-01", models.ShipmentRecord{Plant: "OLD"})
	cache := newMemCache()
	plants := NewPlantService(store, store, cache, PlantConfig{BoardTTL: 15})
	ctx := context.Background()

	if _, err := plants.Status(ctx, old); err != nil || cache.sets != 1 {
		t.Fatalf("expected old board cached, sets=%d err=%v", cache.sets, err)
	}
	if _, err := newUploader(store, cache, "2026-03-15").Ingest(ctx, "daily.xlsx", workbook(t, headerRow, shipmentRow("P1", 1))); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if !containsKey(cache.invalidated, BoardKey(old)) {
		t.Fatalf("pruned board not invalidated: %v", cache.invalidated)
	}
	got, err := plants.Status(ctx, old)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if got.Batch != nil {
		t.Fatalf("pruned batch still served: %+v", got.Batch)
	}
}
