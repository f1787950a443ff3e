package migrate

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopstate/pkg/config"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestCatalogMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_catalog_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog migration file found")
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS catalog_products",
		"CHECK (price >= 0)",
		"CREATE TABLE IF NOT EXISTS catalog_banners",
		"CREATE TABLE IF NOT EXISTS catalog_payment_methods",
		"REFERENCES catalog_payment_methods(id)",
		"DROP TABLE IF EXISTS catalog_orders",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestDialect(t *testing.T) {
	cases := map[string]string{
		config.DBDriverSQLite:   "sqlite3",
		" Postgres ":            "postgres",
		config.DBDriverPostgres: "postgres",
	}
	for driver, want := range cases {
		got, err := Dialect(driver)
		if err != nil {
			t.Fatalf("Dialect(%q) error: %v", driver, err)
		}
		if got != want {
			t.Fatalf("Dialect(%q) = %q, want %q", driver, got, want)
		}
	}
	if _, err := Dialect("mysql"); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestRunAppliesEmbeddedMigrationsOnSQLite(t *testing.T) {
	sqlDB := openSQLite(t)
	ctx := context.Background()

	if err := Run(ctx, sqlDB, config.DBDriverSQLite, "", "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}

	var products int
	if err := sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_products").Scan(&products); err != nil {
		t.Fatalf("count products: %v", err)
	}
	if products != 6 {
		t.Fatalf("expected 6 seeded products, got %d", products)
	}

	if err := MigrateToVersion(ctx, sqlDB, config.DBDriverSQLite, DefaultDir, "20260105090000"); err != nil {
		t.Fatalf("migrate down to schema: %v", err)
	}
	if err := sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_products").Scan(&products); err != nil {
		t.Fatalf("count products after down: %v", err)
	}
	if products != 0 {
		t.Fatalf("expected seed rollback, got %d products", products)
	}
}

func TestRunRequiresDB(t *testing.T) {
	if err := Run(context.Background(), nil, config.DBDriverSQLite, "", "up"); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestCreateSQLMigrationProducesValidFile(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	path, err := CreateSQLMigration(dir, "Add Product Ratings!", at)
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Base(path) != "20260301123000_add_product_ratings.sql" {
		t.Fatalf("unexpected filename %q", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("validate created migration: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "add product ratings", at.Add(time.Hour)); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if _, err := CreateSQLMigration(dir, "!!!", at); err == nil {
		t.Fatal("expected sanitized-empty name error")
	}
}
