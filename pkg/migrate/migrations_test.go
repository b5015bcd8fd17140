package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations should validate: %v", err)
	}
}

func TestSnapshotsMigrationCreatesTable(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	found := false
	for _, e := range entries {
		if !strings.Contains(e.Name(), "create_snapshots") {
			continue
		}
		found = true
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		if err != nil {
			t.Fatalf("read migration: %v", err)
		}
		sql := string(b)
		if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS snapshots") {
			t.Fatalf("expected snapshots table DDL, got:\n%s", sql)
		}
		if !strings.Contains(sql, "key TEXT PRIMARY KEY") {
			t.Fatalf("snapshots.key should be the primary key")
		}
	}
	if !found {
		t.Fatal("create_snapshots migration is missing")
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Promo Columns!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_promo_columns.sql") {
		t.Fatalf("unexpected migration filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}
