package seed

import (
	"context"
	"errors"
	"io"
	"log"
	"plantflow/ingest"
	"plantflow/models"
	"plantflow/repositories"
	"plantflow/services"
)

type Uploader interface {
	Ingest(ctx context.Context, filename string, src io.Reader) (*services.UploadResult, error)
}

// DemoRecords is the sample day loaded into an empty dashboard.
var DemoRecords = []models.ShipmentRecord{
	{Plant: "1001", Location: "Pune", PgiNo: "8000001", PgiDate: "2026-01-05", InvoiceNo: "INV-1001", Mode: "Road", CaseCount: 12, Weight: 340.5, Volume: 2.4, Amount: 125000},
	{Plant: "1002", Location: "Chennai", PgiNo: "8000002", PgiDate: "2026-01-05", InvoiceNo: "INV-1002", Mode: "Air", CaseCount: 3, Weight: 42, Volume: 0.3, Amount: 56000.75, PreferredMode: "Air"},
	{Plant: "1003", Location: "Delhi", PgiNo: "8000003", PgiDate: "2026-01-04", InvoiceNo: "INV-1003", NcCc: "NO", Mode: "Road", CaseCount: 20, Weight: 910, Volume: 6.1, Amount: 256675.96},
}

// SeedDemo uploads DemoRecords as today's batch when no batch exists yet. It
// goes through the regular upload path so the demo data obeys the same rules.
func SeedDemo(ctx context.Context, batches repositories.BatchReader, up Uploader) error {
	_, err := batches.LatestBatch(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	buf, err := ingest.WriteRecords(DemoRecords)
	if err != nil {
		return err
	}
	res, err := up.Ingest(ctx, "demo.xlsx", buf)
	if err != nil {
		return err
	}
	log.Printf("[Seeder] Seeded demo batch %d with %d rows", res.BatchID, res.RowCount)
	return nil
}
