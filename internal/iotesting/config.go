// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gnclimate/pkg/config"
	"github.com/jackc/pgx/v5"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnclimate_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database settings can be changed with GNCLIMATE_DATABASE_HOST, _PORT,
// _USER and _PASSWORD environment variables. The database name is always
// TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("GNCLIMATE_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNCLIMATE_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("GNCLIMATE_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNCLIMATE_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts,
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptDatabaseBatchSize(3),
	)
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SkipWithoutDatabase skips an integration test in short mode or when
// the test database does not answer.
func SkipWithoutDatabase(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := GetTestDatabaseConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	connCfg, err := pgx.ParseConfig("")
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}
	connCfg.Host = cfg.Host
	connCfg.Port = uint16(cfg.Port)
	connCfg.User = cfg.User
	connCfg.Password = cfg.Password
	connCfg.Database = cfg.Database
	connCfg.TLSConfig = nil
	connCfg.Fallbacks = nil

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		t.Skipf("Skipping integration test, %s is not reachable: %v",
			TestDatabaseName, err)
	}
	_ = conn.Close(ctx)
}
