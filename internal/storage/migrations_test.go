package storage

import (
	"context"
	"testing"
)

func TestMigrate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("version = %d, want %d", version, ExpectedSchemaVersion)
	}

	// Re-running is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, index := range []string{"idx_expenses_date", "idx_expenses_category", "idx_chat_messages_date"} {
		var count int
		err := store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`, index).Scan(&count)
		if err != nil {
			t.Fatalf("failed to check index %s: %v", index, err)
		}
		if count != 1 {
			t.Errorf("index %s was not created", index)
		}
	}
}

func TestMigrationsAreOrdered(t *testing.T) {
	for i, m := range migrations {
		if m.Version != i+1 {
			t.Errorf("migration %d has version %d", i, m.Version)
		}
	}
	if migrations[len(migrations)-1].Version != ExpectedSchemaVersion {
		t.Errorf("ExpectedSchemaVersion = %d, last migration = %d", ExpectedSchemaVersion, migrations[len(migrations)-1].Version)
	}
}
