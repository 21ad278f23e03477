package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/smith3v/fitness-ai/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenTestDB returns a private in-memory sqlite database without any tables.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})
	return gdb
}

// SetupTestDB returns a private in-memory database with the full schema applied.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := OpenTestDB(t)
	if err := db.CreateSchemaIfAbsent(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return gdb
}
