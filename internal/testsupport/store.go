package testsupport

import (
	"context"
	"testing"

	"reelmatch/internal/catalog"
)

// MustOpenStore opens a catalog store backed by a per-test temp directory and
// closes it when the test finishes.
func MustOpenStore(t testing.TB) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SeedEntries upserts the provided entries, failing the test on error.
func SeedEntries(t testing.TB, store *catalog.Store, entries ...catalog.Entry) {
	t.Helper()
	ctx := context.Background()
	for _, entry := range entries {
		if err := store.Upsert(ctx, entry); err != nil {
			t.Fatalf("seed entry %d: %v", entry.ID, err)
		}
	}
}
