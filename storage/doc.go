// Package storage defines the storage contracts used by the matching pipeline.
//
// Two stores exist:
//
//   - CatalogStore: embedded media records with nearest-neighbor search,
//     implemented by storage/badger
//   - SalesStore: brands and brand-media matches in a relational database,
//     implemented by storage/sql on gorm
//
// Public constructors in the implementation packages return these
// interfaces. Internal constructors may return concrete types.
//
// # Usage
//
//	catalog, err := badger.NewCatalogStore("/var/lib/oohsales/catalog", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer catalog.Close()
//
//	sales, err := sqlstore.Open(ctx, sqlstore.Config{Driver: "sqlite", DSN: "oohsales.db"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sales.Close()
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. Catalog reads may
// run in parallel. SalesStore serializes identity allocation internally.
package storage
