// Package dbtest opens throwaway sqlite databases carrying the fleet schema.
package dbtest

import (
	"testing"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
)

// Open returns a client over a private in-memory sqlite database with every
// model auto-migrated. The pool is pinned to one connection because each
// connection to :memory: is its own database.
func Open(t testing.TB) *db.Client {
	t.Helper()

	client, err := db.Open(sqlite.Open("file::memory:"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := client.DB().AutoMigrate(models.All()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
