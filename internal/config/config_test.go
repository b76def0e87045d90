package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.MaxDBConcurrency != 3 {
		t.Errorf("MaxDBConcurrency = %d, want 3", cfg.MaxDBConcurrency)
	}
	if cfg.QueryTimeout != 5*time.Minute {
		t.Errorf("QueryTimeout = %v, want 5m", cfg.QueryTimeout)
	}
	if cfg.StorageType != "local" {
		t.Errorf("StorageType = %q, want local", cfg.StorageType)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MYSQL_DSN", "root:secret@tcp(db:3306)/app")
	t.Setenv("MAX_DB_CONCURRENCY", "10")
	t.Setenv("QUERY_TIMEOUT", "30s")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg := Load()
	if cfg.MySQLDSN != "root:secret@tcp(db:3306)/app" {
		t.Errorf("MySQLDSN = %q", cfg.MySQLDSN)
	}
	if cfg.MaxDBConcurrency != 10 {
		t.Errorf("MaxDBConcurrency = %d, want 10", cfg.MaxDBConcurrency)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Errorf("QueryTimeout = %v, want 30s", cfg.QueryTimeout)
	}
	if !cfg.S3PathStyle {
		t.Errorf("S3PathStyle = false, want true")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_DB_CONCURRENCY", "not-a-number")
	t.Setenv("QUERY_TIMEOUT", "soon")

	cfg := Load()
	if cfg.MaxDBConcurrency != 3 {
		t.Errorf("MaxDBConcurrency = %d, want fallback 3", cfg.MaxDBConcurrency)
	}
	if cfg.QueryTimeout != 5*time.Minute {
		t.Errorf("QueryTimeout = %v, want fallback 5m", cfg.QueryTimeout)
	}
}
