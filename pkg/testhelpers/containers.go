package testhelpers

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"olistInsights/pkg/config"
	"olistInsights/pkg/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const PostgresImage = "postgres:16-alpine"

// TestDB is a migrated Postgres shared by every integration test in a run.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	Config    *config.Config
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB starts the container on first use and returns the shared handle.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        PostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "olist_test",
			"POSTGRES_USER":     "olist",
			"POSTGRES_PASSWORD": "test_password",
		},
		// the server restarts once after running init scripts
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	cfg := &config.Config{
		App: config.AppConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			Host:          host,
			Port:          port.Port(),
			User:          "olist",
			Password:      "test_password",
			Name:          "olist_test",
			SSLMode:       "disable",
			MigrationsDir: MigrationsDir(),
			BatchSize:     500,
		},
	}

	var db *gorm.DB
	for i := 0; i < 10; i++ {
		if db, err = database.InitPostgres(cfg); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		return nil, err
	}

	return &TestDB{
		Container: container,
		DB:        db,
		Config:    cfg,
	}, nil
}

// MigrationsDir is the absolute path of the repository migrations folder.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
