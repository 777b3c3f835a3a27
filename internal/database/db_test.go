package database

import (
	"testing"
	"time"

	"github.com/content-platform-api/internal/config"
	"github.com/rs/zerolog"
)

// sql.Open does not dial, so Open succeeds without a running server
func TestOpen_ConfiguresPool(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		User:         "postgres",
		Password:     "postgres",
		Name:         "tensquare_article",
		SSLMode:      "disable",
		MaxOpenConns: 7,
		MaxIdleConns: 2,
		MaxLifetime:  time.Minute,
	}

	db, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open returned unexpected error: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 7 {
		t.Errorf("Expected max open connections 7, got %d", got)
	}
}
