package database

import (
	"plantflow/config"
	"testing"
)

func TestDialectorFor(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "u"

	for driver, name := range map[string]string{"postgres": "postgres", "mysql": "mysql", "mssql": "sqlserver"} {
		cfg.Database.Driver = driver
		d, err := dialectorFor(cfg, "plantflow")
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if d.Name() != name {
			t.Fatalf("%s: dialector %q", driver, d.Name())
		}
	}

	cfg.Database.Driver = "oracle"
	if _, err := dialectorFor(cfg, "plantflow"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestEnsureDatabaseExistsRejectsBadName(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "postgres"
	cfg.Database.Name = "plantflow; DROP TABLE x"
	if err := EnsureDatabaseExists(cfg); err == nil {
		t.Fatal("expected invalid name error")
	}
}
