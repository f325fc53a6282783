package repositories

import (
	"context"
	"testing"

	"plantflow/migration"
	"plantflow/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory SQLite database. Foreign keys are
// not enforced, so child rows only go away when the repository deletes them.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBatch(t *testing.T, repo *BatchRepository, date string, plants ...string) uint {
	t.Helper()
	ctx := context.Background()
	batch, err := repo.InsertBatch(ctx, date)
	if err != nil {
		t.Fatalf("insert batch %s: %v", date, err)
	}
	records := make([]models.ShipmentRecord, len(plants))
	for i, p := range plants {
		records[i] = models.ShipmentRecord{Plant: p, Location: "Pune", CaseCount: i + 1}
	}
	if err := repo.BulkInsertRecords(ctx, batch.ID, records); err != nil {
		t.Fatalf("insert records: %v", err)
	}
	return batch.ID
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}
