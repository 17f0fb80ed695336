package testsupport

import (
	"context"
	"testing"

	"vendormatch/internal/catalog"
	"vendormatch/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewBusiness creates a business (and its implicit default keyword) for tests.
func NewBusiness(t testing.TB, store *catalog.Store, name string) *catalog.Business {
	t.Helper()

	business, err := store.CreateBusiness(context.Background(), name)
	if err != nil {
		t.Fatalf("store.CreateBusiness: %v", err)
	}
	return business
}

// NewKeyword adds a keyword to an existing business for tests.
func NewKeyword(t testing.TB, store *catalog.Store, businessID int64, text string, caseSensitive bool, kind catalog.MatchKind) *catalog.Keyword {
	t.Helper()

	keyword, err := store.InsertKeyword(context.Background(), businessID, text, caseSensitive, kind)
	if err != nil {
		t.Fatalf("store.InsertKeyword: %v", err)
	}
	return keyword
}
