package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port           string   `mapstructure:"port"`
		MainRoutes     string   `mapstructure:"main_routes"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		BodyLimitMB    int      `mapstructure:"body_limit_mb"`
	} `mapstructure:"server"`

	Database struct {
		Driver     string `mapstructure:"driver"`
		Host       string `mapstructure:"host"`
		Port       string `mapstructure:"port"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		Name       string `mapstructure:"name"`
		AutoCreate bool   `mapstructure:"auto_create"`
		SeedDemo   bool   `mapstructure:"seed_demo"`
	} `mapstructure:"database"`

	Ingest struct {
		RetentionDays   int    `mapstructure:"retention_days"`
		HistoryDays     int    `mapstructure:"history_days"`
		BatchListLimit  int    `mapstructure:"batch_list_limit"`
		InsertChunkSize int    `mapstructure:"insert_chunk_size"`
		Timezone        string `mapstructure:"timezone"`
		StrictHeaders   bool   `mapstructure:"strict_headers"`
	} `mapstructure:"ingest"`

	Redis struct {
		Addr       string `mapstructure:"addr"`
		Password   string `mapstructure:"password"`
		DB         int    `mapstructure:"db"`
		TTLSeconds int    `mapstructure:"ttl_seconds"`
	} `mapstructure:"redis"`

	// Import drives the folder importer in processor/.
	Import struct {
		Dir          string `mapstructure:"dir"`
		ProcessedDir string `mapstructure:"processed_dir"`
		FailedDir    string `mapstructure:"failed_dir"`
	} `mapstructure:"import"`

	Snowflake struct {
		Node int64 `mapstructure:"node"`
	} `mapstructure:"snowflake"`
}

// LoadConfig reads configs/config.yaml (optional), then environment variables.
// Keys map to env as SECTION_KEY, e.g. INGEST_RETENTION_DAYS. The short DB_*,
// APP_PORT and ALLOWED_ORIGINS variables are honoured as well.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] .env file not found, using system environment variables")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(getEnv("CONFIG_FILE", "configs/config.yaml"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "9000")
	v.SetDefault("server.main_routes", "/api")
	v.SetDefault("server.allowed_origins", []string{"http://127.0.0.1:3000", "http://localhost:3000"})
	v.SetDefault("server.body_limit_mb", 10)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "plantflow")
	v.SetDefault("database.auto_create", false)
	v.SetDefault("database.seed_demo", false)

	v.SetDefault("ingest.retention_days", 24)
	v.SetDefault("ingest.history_days", 7)
	v.SetDefault("ingest.batch_list_limit", 7)
	v.SetDefault("ingest.insert_chunk_size", 500)
	v.SetDefault("ingest.timezone", "Asia/Kolkata")
	v.SetDefault("ingest.strict_headers", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_seconds", 15)

	v.SetDefault("import.dir", "data/inbox")
	v.SetDefault("import.processed_dir", "data/processed")
	v.SetDefault("import.failed_dir", "data/failed")

	v.SetDefault("snowflake.node", 1)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg
}

// applyEnvOverrides keeps the short variable names used by existing deployments.
func applyEnvOverrides(cfg *Config) {
	cfg.Server.Port = getEnv("APP_PORT", cfg.Server.Port)
	cfg.Server.MainRoutes = getEnv("MAIN_ROUTES", cfg.Server.MainRoutes)
	if origins := parseOrigins(getEnv("ALLOWED_ORIGINS", "")); len(origins) > 0 {
		cfg.Server.AllowedOrigins = origins
	}

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.AutoCreate = getEnvAsBool("DB_AUTO_CREATE", cfg.Database.AutoCreate)
	cfg.Database.SeedDemo = getEnvAsBool("DB_SEED_DEMO", cfg.Database.SeedDemo)

	cfg.Ingest.RetentionDays = getEnvAsInt("RETENTION_DAYS", cfg.Ingest.RetentionDays)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)

	if cfg.Ingest.RetentionDays < 1 {
		cfg.Ingest.RetentionDays = 1
	}
	if cfg.Ingest.InsertChunkSize < 1 {
		cfg.Ingest.InsertChunkSize = 500
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func parseOrigins(originsStr string) []string {
	var origins []string
	for _, origin := range strings.Split(originsStr, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// SetupCORS allows credentialed requests from the configured dashboard origins.
func SetupCORS(app *fiber.App, origins []string) {
	allowedOrigins := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowedOrigins[o] = true
	}

	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}
