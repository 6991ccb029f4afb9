package badger

import "github.com/happy6team/ooh-marketing-sales/storage"

// NewMemoryCatalogStore creates an in-memory catalog store for testing.
// Caller must close it when done.
func NewMemoryCatalogStore() (storage.CatalogStore, error) {
	return NewCatalogStore("", true)
}
