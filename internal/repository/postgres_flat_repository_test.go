package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/pkg/database"
)

// connectFlatTestDB connects with a single-connection pool so the temp
// table shadowing flats stays visible to every repository query. Skips
// when integration tests are not enabled.
func connectFlatTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()

	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := database.DefaultPostgresConfig()
	if host := os.Getenv("TEST_POSTGRES_HOST"); host != "" {
		cfg.Host = host
	}
	if user := os.Getenv("TEST_POSTGRES_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("TEST_POSTGRES_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if dbname := os.Getenv("TEST_POSTGRES_DATABASE"); dbname != "" {
		cfg.Database = dbname
	}
	cfg.MaxConns = 1
	cfg.MinConns = 1

	db, err := database.NewPostgres(context.Background(), cfg)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

// createScratchFlats shadows the flats table with a session-local copy
// carrying the same column constraints, minus the user references.
func createScratchFlats(t *testing.T, db *database.PostgresDB) {
	t.Helper()

	ddl := `CREATE TEMP TABLE flats (
		id           UUID PRIMARY KEY,
		name         VARCHAR(255)  NOT NULL,
		owner_id     UUID          NOT NULL,
		tenant_id    UUID,
		monthly_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		description  TEXT          NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
		deleted_at   TIMESTAMPTZ
	)`
	if err := db.Exec(context.Background(), ddl); err != nil {
		t.Fatalf("create temp flats table: %v", err)
	}
}

// An omitted description must not trip the NOT NULL column constraint.
func TestPostgresFlatCreateEmptyDescription(t *testing.T) {
	db := connectFlatTestDB(t)
	createScratchFlats(t, db)
	ctx := context.Background()

	repo := NewPostgresFlatRepository(db.Pool())

	flat, err := domain.NewFlat(uuid.New().String(), "Flat 5C", 950, "")
	if err != nil {
		t.Fatalf("NewFlat: %v", err)
	}
	if err := repo.Create(ctx, flat); err != nil {
		t.Fatalf("create flat without description: %v", err)
	}

	got, err := repo.GetByID(ctx, flat.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("flat not found after create")
	}
	if got.Description != "" {
		t.Errorf("description = %q, want empty", got.Description)
	}
}

func TestPostgresFlatDescriptionRoundTrip(t *testing.T) {
	db := connectFlatTestDB(t)
	createScratchFlats(t, db)
	ctx := context.Background()

	repo := NewPostgresFlatRepository(db.Pool())

	flat, err := domain.NewFlat(uuid.New().String(), "Flat 7A", 1100, "corner unit, south facing")
	if err != nil {
		t.Fatalf("NewFlat: %v", err)
	}
	if err := repo.Create(ctx, flat); err != nil {
		t.Fatalf("create flat: %v", err)
	}

	got, err := repo.GetByID(ctx, flat.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("flat not found after create")
	}
	if got.Description != "corner unit, south facing" {
		t.Errorf("description = %q, want %q", got.Description, "corner unit, south facing")
	}
}
