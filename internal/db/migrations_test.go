package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TitogeremitoDev/mealplan-cli/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "mealplan.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 2 {
		t.Fatalf("expected 2 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"plans", "meals", "meal_options", "foods", "app_config"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var snapshotColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('foods') WHERE name = 'snapshot_basis'`).Scan(&snapshotColCount); err != nil {
		t.Fatalf("check foods snapshot_basis column: %v", err)
	}
	if snapshotColCount != 1 {
		t.Fatalf("expected snapshot_basis column in foods table")
	}

	var parentColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('foods') WHERE name = 'parent_id'`).Scan(&parentColCount); err != nil {
		t.Fatalf("check foods parent_id column: %v", err)
	}
	if parentColCount != 1 {
		t.Fatalf("expected parent_id column in foods table")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}
