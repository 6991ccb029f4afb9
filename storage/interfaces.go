package storage

import (
	"context"
	"time"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// CatalogEntry is one embedded media record in a catalog collection.
type CatalogEntry struct {
	Media  core.MediaRecord `json:"media"`
	Text   string           `json:"text"`
	Vector []float32        `json:"vector"`
}

// Manifest describes the last build of a catalog collection.
type Manifest struct {
	Collection string    `json:"collection"`
	Mode       string    `json:"mode"`
	Count      int       `json:"count"`
	Digest     string    `json:"digest"`
	BuiltAt    time.Time `json:"built_at"`
}

// CatalogStore persists embedded media records and answers nearest-neighbor queries.
type CatalogStore interface {
	// ReplaceCollection atomically clears the collection and writes entries.
	ReplaceCollection(ctx context.Context, collection string, entries []CatalogEntry, manifest Manifest) error

	// PutEntries upserts entries by media_id, leaving other entries in place.
	// The stored manifest is replaced with manifest.
	PutEntries(ctx context.Context, collection string, entries []CatalogEntry, manifest Manifest) error

	// Nearest returns up to k entries ordered by ascending cosine distance to
	// vector, ties broken by ascending media_id.
	// An empty or missing collection yields an empty slice and no error.
	Nearest(ctx context.Context, collection string, vector []float32, k int) ([]core.ScoredMedia, error)

	// Count returns the number of entries in the collection.
	Count(ctx context.Context, collection string) (int, error)

	// Manifest returns the manifest of the collection, or nil if it was never built.
	Manifest(ctx context.Context, collection string) (*Manifest, error)

	// Close releases the store.
	Close() error
}

// SaveResult reports what SalesStore.SaveMatch wrote.
type SaveResult struct {
	BrandID      core.ID
	MatchID      core.ID
	BrandCreated bool
	MatchCreated bool

	// Match is the persisted match. When MatchCreated is false it is the
	// previously stored row, unchanged.
	Match core.MatchResult
}

// SalesStore is the relational store for brands and brand-media matches.
type SalesStore interface {
	// SaveMatch upserts the brand by exact name and the match by
	// (brand, media) in one unit of work. On error nothing is written.
	SaveMatch(ctx context.Context, brand core.BrandIssueRecord, category string, match *core.MatchResult) (*SaveResult, error)

	// FindBrand looks a brand up by exact name.
	// Returns ErrNotFound if no such brand exists.
	FindBrand(ctx context.Context, name string) (*core.Brand, error)

	// ListMatches returns a brand's matches ordered by id.
	ListMatches(ctx context.Context, brandID core.ID) ([]core.MatchResult, error)

	// MarkUsed flags a match as used in a sales contact.
	// Returns ErrNotFound if the match does not exist.
	MarkUsed(ctx context.Context, matchID core.ID) error

	// UpdateSalesStatus sets a brand's sales stage and note.
	// Returns ErrNotFound if no such brand exists.
	UpdateSalesStatus(ctx context.Context, name string, status core.SalesStatus, note string) error

	// Close releases the store.
	Close() error
}
