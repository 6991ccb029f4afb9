package badger

import (
	"cmp"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/storage"
)

// CatalogStore implements storage.CatalogStore for BadgerDB.
// Entries are scanned in full on every query; catalogs are small.
type CatalogStore struct {
	backend     *Backend
	ownsBackend bool
	logger      *slog.Logger

	// writeMu serializes builds so each one owns its generation.
	writeMu sync.Mutex
}

var _ storage.CatalogStore = (*CatalogStore)(nil)

// newCatalogStore wraps an open backend. The caller keeps ownership of it.
func newCatalogStore(backend *Backend) *CatalogStore {
	return &CatalogStore{
		backend: backend,
		logger:  backend.logger.With("store", "catalog"),
	}
}

// NewCatalogStore opens a catalog store at path, or in memory.
func NewCatalogStore(path string, inMemory bool) (storage.CatalogStore, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}
	store := newCatalogStore(backend)
	store.ownsBackend = true
	return store, nil
}

// ReplaceCollection writes entries under a new generation, then switches
// the collection to it in one small transaction and removes the old
// generation. Readers see either the old entries or the new ones.
func (s *CatalogStore) ReplaceCollection(ctx context.Context, collection string, entries []storage.CatalogEntry, manifest storage.Manifest) error {
	if err := s.check(ctx, collection); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.generation(collection)
	if err != nil {
		return err
	}
	next := current + 1

	// A build that failed before switching may have left entries behind.
	if err := s.deletePrefix(makeGenerationPrefix(collection, next)); err != nil {
		return err
	}
	if err := s.writeEntries(collection, next, entries); err != nil {
		s.dropGeneration(collection, next)
		return err
	}
	if err := s.commitGeneration(collection, current, next, &manifest); err != nil {
		s.dropGeneration(collection, next)
		return err
	}
	if current != 0 {
		s.dropGeneration(collection, current)
	}

	s.logger.Debug("replaced collection", "collection", collection, "generation", next, "written", len(entries))
	return nil
}

// PutEntries upserts entries by media_id into the live generation.
// Entries become visible as they are written.
func (s *CatalogStore) PutEntries(ctx context.Context, collection string, entries []storage.CatalogEntry, manifest storage.Manifest) error {
	if err := s.check(ctx, collection); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.generation(collection)
	if err != nil {
		return err
	}
	gen := current
	if gen == 0 {
		gen = 1
	}
	if err := s.writeEntries(collection, gen, entries); err != nil {
		return err
	}
	return s.commitGeneration(collection, current, gen, &manifest)
}

// generation returns the live generation of a collection, 0 if it was never built.
func (s *CatalogStore) generation(collection string) (uint64, error) {
	var gen uint64
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		gen, err = readGeneration(tx, collection)
		return err
	}, false)
	return gen, err
}

func readGeneration(tx *badger.Txn, collection string) (uint64, error) {
	item, err := tx.Get(makeGenerationKey(collection))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var gen uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("%w: generation of %q", storage.ErrSerializationFailed, collection)
		}
		gen = binary.BigEndian.Uint64(val)
		return nil
	})
	return gen, err
}

func (s *CatalogStore) writeEntries(collection string, gen uint64, entries []storage.CatalogEntry) error {
	wb := s.backend.NewWriteBatch()
	for i := range entries {
		value := storage.MarshalCatalogEntry(&entries[i])
		if err := wb.Set(makeMediaEntryKey(collection, gen, entries[i].Media.MediaID), value); err != nil {
			wb.Cancel()
			return fmt.Errorf("failed to write media %d: %w", entries[i].Media.MediaID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to flush catalog entries: %w", err)
	}
	return nil
}

// commitGeneration points the collection at gen and stores the manifest.
// It fails if the pointer moved since expected was read.
func (s *CatalogStore) commitGeneration(collection string, expected, gen uint64, manifest *storage.Manifest) error {
	manifest.Collection = collection
	return s.backend.WithTx(func(tx *badger.Txn) error {
		current, err := readGeneration(tx, collection)
		if err != nil {
			return err
		}
		if current != expected {
			return fmt.Errorf("%w: collection %q changed during build", storage.ErrTransactionFailed, collection)
		}

		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], gen)
		if err := tx.Set(makeGenerationKey(collection), buf[:]); err != nil {
			return err
		}
		if err := tx.Set(makeManifestKey(collection), storage.MarshalManifest(manifest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// dropGeneration removes a generation nobody reads any more. Failures only
// leave unreachable keys behind, so they are logged.
func (s *CatalogStore) dropGeneration(collection string, gen uint64) {
	if err := s.deletePrefix(makeGenerationPrefix(collection, gen)); err != nil {
		s.logger.Warn("failed to remove old generation", "collection", collection, "generation", gen, "err", err)
	}
}

func (s *CatalogStore) deletePrefix(prefix []byte) error {
	var keys [][]byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		keys = keysWithPrefix(tx, prefix)
		return nil
	}, false)
	if err != nil || len(keys) == 0 {
		return err
	}

	wb := s.backend.NewWriteBatch()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			wb.Cancel()
			return err
		}
	}
	return wb.Flush()
}

// Nearest returns up to k entries by ascending cosine distance.
func (s *CatalogStore) Nearest(ctx context.Context, collection string, vector []float32, k int) ([]core.ScoredMedia, error) {
	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", storage.ErrInvalidQuery, k)
	}

	results := []core.ScoredMedia{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := readGeneration(tx, collection)
		if err != nil || gen == 0 {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeGenerationPrefix(collection, gen)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *storage.CatalogEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalCatalogEntry(val)
				return err
			})
			if err != nil {
				return err
			}

			if len(entry.Vector) == 0 {
				continue
			}
			if len(entry.Vector) != len(vector) {
				return fmt.Errorf("%w: query has %d dimensions, media %d has %d",
					storage.ErrDimensionMismatch, len(vector), entry.Media.MediaID, len(entry.Vector))
			}

			results = append(results, core.ScoredMedia{
				Media:    entry.Media,
				Distance: cosineDistance(vector, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b core.ScoredMedia) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Media.MediaID, b.Media.MediaID)
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of entries in the collection.
func (s *CatalogStore) Count(ctx context.Context, collection string) (int, error) {
	if err := s.check(ctx, collection); err != nil {
		return 0, err
	}

	var count int
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := readGeneration(tx, collection)
		if err != nil || gen == 0 {
			return err
		}
		count = len(keysWithPrefix(tx, makeGenerationPrefix(collection, gen)))
		return nil
	}, false)
	return count, err
}

// Manifest returns the stored manifest, or nil if the collection was never built.
func (s *CatalogStore) Manifest(ctx context.Context, collection string) (*storage.Manifest, error) {
	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}

	var manifest *storage.Manifest
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeManifestKey(collection))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			manifest, unmarshalErr = storage.UnmarshalManifest(val)
			return unmarshalErr
		})
	}, false)

	return manifest, err
}

// Close closes the backend if this store opened it.
func (s *CatalogStore) Close() error {
	if !s.ownsBackend {
		return nil
	}
	return s.backend.Close()
}

func (s *CatalogStore) check(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return validateCollection(collection)
}

// cosineDistance returns 1 - cos(a, b). Zero vectors are at distance 1.
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
