package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"plantflow/cache"
	"plantflow/config"
	"plantflow/controllers/idgen"
	"plantflow/database"
	"plantflow/migration"
	"plantflow/repositories"
	"plantflow/services"
	"plantflow/utils"
	"syscall"
	"time"
)

// Imports every .xlsx workbook waiting in the inbox folder through the same
// upload path as the HTTP endpoint, then moves each file to processed/ or
// failed/.
func main() {
	cfg := config.LoadConfig()

	dir := flag.String("dir", cfg.Import.Dir, "folder to import workbooks from")
	processed := flag.String("processed", cfg.Import.ProcessedDir, "folder for imported workbooks")
	failed := flag.String("failed", cfg.Import.FailedDir, "folder for rejected workbooks")
	flag.Parse()

	if err := idgen.Init(cfg.Snowflake.Node); err != nil {
		log.Fatalf("[Import] Snowflake init failed: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[Import] Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("[Import] Failed to auto migrate: %v", err)
	}

	board := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	defer board.Close()

	uploads := services.NewUploadService(
		repositories.NewBatchRepository(db, cfg.Ingest.InsertChunkSize),
		repositories.NewUploadLogRepository(db),
		board,
		services.UploadConfig{
			RetentionDays: cfg.Ingest.RetentionDays,
			StrictHeaders: cfg.Ingest.StrictHeaders,
			Location:      utils.LoadLocation(cfg.Ingest.Timezone),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	im := &importer{dir: *dir, processedDir: *processed, failedDir: *failed, up: uploads, now: time.Now}
	sum, err := im.run(ctx)
	if err != nil {
		log.Fatalf("[Import] %v", err)
	}
	log.Printf("[Import] Done: %d imported, %d failed", sum.Imported, sum.Failed)
}
