package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jordan/postboard/internal/api"
	"github.com/jordan/postboard/internal/config"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/generation"
	"github.com/jordan/postboard/internal/quota"
	repoPostgres "github.com/jordan/postboard/internal/repository/postgres"
	"github.com/jordan/postboard/internal/service"
	"github.com/jordan/postboard/internal/storage"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_postboard"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Review{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return testDB
}

// Truncate clears all tables between test cases
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{"reviews", "posts", "users"}
	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a config suitable for tests. The quota ceiling is kept
// small so rate-limit tests stay fast.
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		ClientURL:          "http://localhost:5173",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 24,
		S3Region:           "us-east-1",
		S3Bucket:           "test-images",
		S3AccessKey:        "test",
		S3SecretKey:        "test",
		S3UsePathStyle:     true,
		S3URLExpiry:        time.Hour,
		QuotaCeiling:       3,
		QuotaWindow:        time.Hour,
	}
}

// TestServer wires the real router against a containerized database, an
// in-memory blob store and a canned generation provider.
type TestServer struct {
	DB       *TestDB
	Server   *httptest.Server
	Cfg      *config.Config
	Blob     *BlobServer
	Provider *httptest.Server
	Quota    *quota.MemoryStore
}

// NewTestServer starts a full server for end-to-end handler tests
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	blob := NewBlobServer(t)
	cfg.S3Endpoint = blob.URL()

	provider := NewProviderServer(t)
	cfg.GenerationURL = provider.URL

	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg)

	uploader, err := storage.NewUploader(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create uploader: %v", err)
	}

	genClient := generation.NewClient(cfg.GenerationURL, "test-key")

	quotaStore := quota.NewMemoryStore(cfg.QuotaCeiling, cfg.QuotaWindow)
	t.Cleanup(quotaStore.Stop)

	router := api.NewRouter(services, repos, uploader, genClient, quotaStore, cfg)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		DB:       testDB,
		Server:   server,
		Cfg:      cfg,
		Blob:     blob,
		Provider: provider,
		Quota:    quotaStore,
	}
}

// APIURL builds a full URL for an API v1 path
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + "/api/v1" + path
}
