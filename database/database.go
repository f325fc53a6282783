package database

import (
	"context"
	"fmt"
	"log"
	"plantflow/config"
	"regexp"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var validDBName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Open connects to the configured database and tunes the pool.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg, cfg.Database.Name)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("[Database] Connected to %s database %s", cfg.Database.Driver, cfg.Database.Name)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[Database] Close failed: %v", err)
	}
}

// Ping checks that the pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func dialectorFor(cfg *config.Config, dbName string) (gorm.Dialector, error) {
	d := cfg.Database
	switch d.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			d.Host, d.User, d.Password, dbName, d.Port)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, dbName)
		return mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			d.User, d.Password, d.Host, d.Port, dbName)
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", d.Driver)
	}
}

// EnsureDatabaseExists creates the configured database when it is missing.
func EnsureDatabaseExists(cfg *config.Config) error {
	name := cfg.Database.Name
	if !validDBName.MatchString(name) {
		return fmt.Errorf("invalid database name %q", name)
	}

	var server string
	switch cfg.Database.Driver {
	case "postgres":
		server = "postgres"
	case "mysql":
		server = ""
	case "mssql":
		server = "master"
	}

	dialector, err := dialectorFor(cfg, server)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return fmt.Errorf("connect to DB server: %w", err)
	}
	defer Close(db)

	switch cfg.Database.Driver {
	case "postgres":
		var exists bool
		if err := db.Raw("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)", name).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			return nil
		}
		return db.Exec("CREATE DATABASE " + name).Error
	case "mysql":
		return db.Exec("CREATE DATABASE IF NOT EXISTS " + name).Error
	default:
		return db.Exec("IF DB_ID('" + name + "') IS NULL CREATE DATABASE " + name).Error
	}
}
