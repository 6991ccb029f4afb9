// Package catalog builds and queries the vector index over the advertising
// media inventory.
//
// Records are loaded from CSV or XLSX, turned into a composite text of
// location, target audience, characteristics and past campaigns, embedded in
// parallel batches with retry, normalized, and written to a
// storage.CatalogStore in one write. Search embeds a free-text query and
// returns the nearest media by cosine distance.
package catalog
