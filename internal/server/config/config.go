// Package config handles configuration for the quiz server and the one-shot
// data sync command, including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/dbx"
)

// Config holds runtime settings.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint (health service).
//   - DatabaseDriver: "sqlite" (modernc, file path DSN) or "pgx" (PostgreSQL DSN).
//   - DatabaseDSN: connection string for DatabaseDriver.
//   - DataSyncEnabled: run the startup reconciliation; when false it never runs.
//   - DataSyncLocation: where the desired-state document lives
//     ("bundled:<name>", "file:<path>", a bare path, or "s3://bucket/key").
//   - DataSyncTimeout: optional deadline for the whole run; zero means none.
//   - S3RootUser / S3RootPassword / S3Region / S3BaseEndpoint: S3-compatible
//     store used for s3:// document locations.
//   - LogLevel / LogFile: slog level and optional rotated log file.
type Config struct {
	EndpointAddrGRPC string
	DatabaseDriver   string
	DatabaseDSN      string
	DataSyncEnabled  bool
	DataSyncLocation string
	DataSyncTimeout  time.Duration
	S3RootUser       string
	S3RootPassword   string
	S3Region         string
	S3BaseEndpoint   string
	LogLevel         string
	LogFile          string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials are MinIO defaults and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = dbx.DriverSQLite
	c.DatabaseDSN = "data/quiz.db"
	c.DataSyncEnabled = true
	c.DataSyncLocation = common.DefaultDataSyncLocation
	c.DataSyncTimeout = 0
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
	c.LogFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
