// Package testutil provisions a migrated Postgres database for tests.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"notes-admin-be/internal/model"
	"notes-admin-be/pkg/database"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	once     sync.Once
	dsn      string
	setupErr error
)

func startPostgres(ctx context.Context) (string, error) {
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("notes"),
		postgres.WithUsername("notes"),
		postgres.WithPassword("notes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", err
	}
	return container.ConnectionString(ctx, "sslmode=disable")
}

// DSN returns a connection string to a migrated database. DB_CONNECTION_STRING
// wins when set; otherwise a Postgres container is started once per test
// binary. The test is skipped when neither is available.
func DSN(t *testing.T) string {
	t.Helper()

	if os.Getenv("DB_CONNECTION_STRING") == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	once.Do(func() {
		dsn = os.Getenv("DB_CONNECTION_STRING")
		if dsn == "" {
			dsn, setupErr = startPostgres(context.Background())
			if setupErr != nil {
				return
			}
		}
		setupErr = database.Migrate(dsn)
	})

	if setupErr != nil {
		t.Fatalf("prepare test database: %v", setupErr)
	}
	return dsn
}

// NewDB connects to the test database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), database.Options{
		DSN:             DSN(t),
		ConnectAttempts: 3,
		LogLevel:        "silent",
	})
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a unique username and returns it. The row
// and everything cascading from it is removed when the test ends.
func CreateUser(t *testing.T, db *gorm.DB, role string, password string) *model.User {
	t.Helper()

	u := &model.User{
		Id:       uuid.New(),
		Username: "user_" + uuid.NewString()[:8],
		Email:    "test-" + uuid.NewString() + "@example.com",
		FullName: "Test User",
		Role:     role,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		h := string(hash)
		u.PasswordHash = &h
	}

	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		db.Where("id = ?", u.Id).Delete(&model.User{})
	})
	return u
}

// UniqueToken returns a string no other test row contains, for search tests.
func UniqueToken() string {
	return "tok" + uuid.NewString()[:12]
}
