// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgrestest starts a throwaway PostgreSQL container for
// integration tests and applies the project migrations to it.
package postgrestest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/ghibli/internal/platform/migration"
)

// Database is a running, migrated PostgreSQL container.
type Database struct {
	DSN       string
	container tc.Container
}

// Start launches postgres:16-alpine and runs every UP migration.
func Start(ctx context.Context) (*Database, error) {
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "ghibli",
				"POSTGRES_PASSWORD": "ghibli",
				"POSTGRES_DB":       "ghibli_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgrestest: failed to start container: %w", err)
	}

	database := &Database{container: container}

	host, err := container.Host(ctx)
	if err != nil {
		database.Stop(ctx)
		return nil, fmt.Errorf("postgrestest: failed to resolve host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		database.Stop(ctx)
		return nil, fmt.Errorf("postgrestest: failed to resolve port: %w", err)
	}
	database.DSN = fmt.Sprintf("postgres://ghibli:ghibli@%s:%s/ghibli_test?sslmode=disable", host, port.Port())

	if err := migration.RunUp(database.DSN, migrationsPath(), slog.Default()); err != nil {
		database.Stop(ctx)
		return nil, err
	}

	return database, nil
}

// Stop terminates the container.
func (database *Database) Stop(ctx context.Context) {
	_ = database.container.Terminate(ctx)
}

// migrationsPath resolves data/migrations relative to this source file.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
