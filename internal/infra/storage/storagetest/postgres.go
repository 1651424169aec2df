//go:build integration

package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
	testDB       = "shop_booking"
)

// NewPostgres поднимает postgres в контейнере, применяет миграции и возвращает подключение.
// Контейнер останавливается в t.Cleanup.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	dsn := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			testUser, testPassword, host, port.Port(), testDB)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			Tmpfs:      map[string]string{"/var/lib/postgresql/data": "rw"},
			WaitingFor: wait.ForSQL("5432/tcp", "postgres", dsn).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		_ = container.Terminate(stopCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn(host, port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, string(readMigration(t, "001_init.sql")))
	require.NoError(t, err, "apply migration")

	return db
}

// readMigration ищет каталог migrations вверх от рабочей директории пакета
func readMigration(t *testing.T, name string) []byte {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		data, err := os.ReadFile(filepath.Join(dir, "migrations", name))
		if err == nil {
			return data
		}
		dir = filepath.Dir(dir)
	}

	t.Fatalf("migration %s not found", name)
	return nil
}
