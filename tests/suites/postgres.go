package suites

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/database"
)

const (
	postgresImage = "postgres:17.5-alpine3.21"
	postgresPort  = "5432/tcp"
)

// PostgresContainer is a throwaway postgres with the config to reach it
type PostgresContainer struct {
	testcontainers.Container
	Config database.Config
}

// StartPostgres boots a postgres container and waits until it answers queries
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	cfg := database.Config{
		User:            "arena",
		Password:        "arena-test",
		Database:        "arena_test",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}

	url := func(host string, port nat.Port) string {
		c := cfg
		c.Host, c.Port = host, port.Port()
		return c.URL()
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{postgresPort},
			Cmd:          []string{"postgres", "-c", "fsync=off"},
			Env: map[string]string{
				"POSTGRES_DB":       cfg.Database,
				"POSTGRES_USER":     cfg.User,
				"POSTGRES_PASSWORD": cfg.Password,
			},
			WaitingFor: wait.ForSQL(postgresPort, "postgres", url).
				WithStartupTimeout(30 * time.Second).
				WithQuery("SELECT 1"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	cfg.Host, cfg.Port = host, port.Port()

	return &PostgresContainer{Container: container, Config: cfg}, nil
}

// RepositoryTestSuite runs repository tests against a migrated postgres.
// Every table except the migrations bookkeeping is truncated before each test.
type RepositoryTestSuite struct {
	suite.Suite
	Postgres       *PostgresContainer
	DB             *gorm.DB
	SkipMigrations bool
}

func (suite *RepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration tests in short mode")
	}

	ctx := context.Background()
	pg, err := StartPostgres(ctx)
	suite.Require().NoError(err)
	suite.Postgres = pg
	suite.T().Cleanup(func() { _ = pg.Terminate(context.Background()) })

	if !suite.SkipMigrations {
		pg.Config.MigrationsPath = migrationsDir()
		_, err := database.Migrate(&pg.Config)
		suite.Require().NoError(err, "migrations")
	}

	db, err := database.New(&pg.Config)
	suite.Require().NoError(err)
	suite.DB = db
	suite.T().Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

func (suite *RepositoryTestSuite) BeforeTest(_, _ string) {
	suite.truncateAll()
}

func (suite *RepositoryTestSuite) truncateAll() {
	if suite.DB == nil {
		return
	}

	var tables []string
	suite.DB.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		AND table_name <> 'schema_migrations'
	`).Scan(&tables)
	if len(tables) == 0 {
		return
	}

	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	suite.Require().NoError(suite.DB.Exec("TRUNCATE TABLE " + strings.Join(quoted, ", ") + " CASCADE").Error)
}

// migrationsDir walks up from the test's package to the module root
func migrationsDir() string {
	wd, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return filepath.Join(wd, "migrations")
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "migrations"
		}
		wd = parent
	}
}

func (suite *RepositoryTestSuite) CountRecords(table string) int64 {
	var c int64
	suite.DB.Table(table).Count(&c)
	return c
}

func (suite *RepositoryTestSuite) AssertNoDBError(err error, args ...interface{}) {
	suite.Assert().NoError(err, args...)
}

func (suite *RepositoryTestSuite) WithTransaction(fn func(tx *gorm.DB) error) error {
	return suite.DB.Transaction(fn)
}
