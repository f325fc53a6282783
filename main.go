package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"plantflow/cache"
	"plantflow/config"
	"plantflow/controllers"
	"plantflow/controllers/idgen"
	"plantflow/database"
	"plantflow/middleware"
	"plantflow/migration"
	"plantflow/repositories"
	"plantflow/routes"
	seed "plantflow/seeder"
	"plantflow/services"
	"plantflow/utils"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Database.AutoCreate {
		if err := database.EnsureDatabaseExists(cfg); err != nil {
			log.Fatalf("[Database] Failed to ensure database exists: %v", err)
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[Database] Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("[Database] Failed to auto migrate: %v", err)
	}

	if err := idgen.Init(cfg.Snowflake.Node); err != nil {
		log.Fatalf("[Config] Snowflake init failed: %v", err)
	}

	ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	board := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, ttl)
	loc := utils.LoadLocation(cfg.Ingest.Timezone)

	batchRepo := repositories.NewBatchRepository(db, cfg.Ingest.InsertChunkSize)
	shipmentRepo := repositories.NewShipmentRepository(db)
	logRepo := repositories.NewUploadLogRepository(db)

	uploadService := services.NewUploadService(batchRepo, logRepo, board, services.UploadConfig{
		RetentionDays: cfg.Ingest.RetentionDays,
		StrictHeaders: cfg.Ingest.StrictHeaders,
		Location:      loc,
	})
	recordService := services.NewRecordService(batchRepo, shipmentRepo, board)
	batchService := services.NewBatchService(batchRepo, shipmentRepo, cfg.Ingest.BatchListLimit)
	plantService := services.NewPlantService(batchRepo, shipmentRepo, board, services.PlantConfig{
		HistoryDays: cfg.Ingest.HistoryDays,
		Location:    loc,
		BoardTTL:    ttl,
	})

	if cfg.Database.SeedDemo {
		if err := seed.SeedDemo(context.Background(), batchRepo, uploadService); err != nil {
			log.Printf("[Seeder] Demo seed failed: %v", err)
		}
	}

	var cachePinger controllers.Pinger
	if board.Enabled() {
		cachePinger = board
	}
	dbPinger := controllers.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) })

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.Metrics())
	config.SetupCORS(app, cfg.Server.AllowedOrigins)

	routes.SetupRoutes(app, cfg.Server.MainRoutes, routes.Controllers{
		Upload: controllers.NewUploadController(uploadService),
		Record: controllers.NewRecordController(recordService),
		Batch:  controllers.NewBatchController(batchService),
		Plant:  controllers.NewPlantController(plantService),
		Health: controllers.NewHealthController(dbPinger, cachePinger),
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	go func() {
		log.Printf("[Server] Listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("[Server] %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
	if err := board.Close(); err != nil {
		log.Printf("[Cache] Close error: %v", err)
	}
	database.Close(db)
}
