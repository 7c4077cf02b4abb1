package testutil

import (
	"testing"

	"sbp-go/internal/database"
)

// NewTestStore creates an in-memory client store with migrations applied.
// The store is closed when the test completes.
func NewTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	store, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open client store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
