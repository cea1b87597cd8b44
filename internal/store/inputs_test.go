package store

import (
	"testing"
)

// setupTestDB creates an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestInputs(t *testing.T) {
	db := setupTestDB(t)

	t.Run("GetInput returns empty for missing key", func(t *testing.T) {
		got, err := db.GetInput("race_distance")
		if err != nil {
			t.Fatalf("GetInput() error = %v", err)
		}
		if got != "" {
			t.Errorf("GetInput() = %q, want empty", got)
		}
	})

	t.Run("SetInput inserts and updates", func(t *testing.T) {
		if err := db.SetInput("race_distance", "10"); err != nil {
			t.Fatalf("SetInput() error = %v", err)
		}
		if err := db.SetInput("race_distance", "21.0975"); err != nil {
			t.Fatalf("SetInput() update error = %v", err)
		}

		got, err := db.GetInput("race_distance")
		if err != nil {
			t.Fatalf("GetInput() error = %v", err)
		}
		if got != "21.0975" {
			t.Errorf("GetInput() = %q, want 21.0975", got)
		}
	})

	t.Run("SetInput with empty value removes the key", func(t *testing.T) {
		if err := db.SetInput("pb5k", "20:00"); err != nil {
			t.Fatalf("SetInput() error = %v", err)
		}
		if err := db.SetInput("pb5k", ""); err != nil {
			t.Fatalf("SetInput() clear error = %v", err)
		}

		fields, err := db.GetInputs()
		if err != nil {
			t.Fatalf("GetInputs() error = %v", err)
		}
		if _, ok := fields["pb5k"]; ok {
			t.Error("pb5k still stored after clearing")
		}
	})

	t.Run("GetInputs returns every field", func(t *testing.T) {
		if err := db.SetInput("runner_age", "35"); err != nil {
			t.Fatalf("SetInput() error = %v", err)
		}

		fields, err := db.GetInputs()
		if err != nil {
			t.Fatalf("GetInputs() error = %v", err)
		}
		if len(fields) != 2 {
			t.Errorf("GetInputs() = %v, want 2 fields", fields)
		}
		if fields["runner_age"] != "35" {
			t.Errorf("runner_age = %q, want 35", fields["runner_age"])
		}
	})

	t.Run("ClearInputs removes everything", func(t *testing.T) {
		if err := db.ClearInputs(); err != nil {
			t.Fatalf("ClearInputs() error = %v", err)
		}

		fields, err := db.GetInputs()
		if err != nil {
			t.Fatalf("GetInputs() error = %v", err)
		}
		if len(fields) != 0 {
			t.Errorf("GetInputs() = %v, want empty", fields)
		}
	})
}
