package badger

import (
	"encoding/binary"
	"fmt"
	"regexp"

	"github.com/happy6team/ooh-marketing-sales/storage"
)

// Key prefixes for different data types
const (
	mediaEntryPrefix = "media"
	manifestPrefix   = "manifest"
	generationPrefix = "generation"
)

var collectionNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validateCollection rejects names that could collide with another
// collection's key prefix.
func validateCollection(collection string) error {
	if !collectionNamePattern.MatchString(collection) {
		return fmt.Errorf("%w: collection name %q", storage.ErrInvalidQuery, collection)
	}
	return nil
}

// makeCollectionPrefix generates the prefix shared by every entry in a collection.
// Format: media:collection:
func makeCollectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", mediaEntryPrefix, collection))
}

// makeGenerationPrefix generates the prefix of one build generation of a collection.
// Format: media:collection:gen
func makeGenerationPrefix(collection string, gen uint64) []byte {
	prefix := makeCollectionPrefix(collection)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], gen)
	return buf
}

// makeMediaEntryKey generates a key for one media record in a generation.
// Format: media:collection:gen mediaID
func makeMediaEntryKey(collection string, gen uint64, mediaID int64) []byte {
	prefix := makeGenerationPrefix(collection, gen)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so iteration order follows media_id
	binary.BigEndian.PutUint64(buf[offset:], uint64(mediaID))
	return buf
}

// makeGenerationKey generates the key pointing at a collection's live generation.
func makeGenerationKey(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s", generationPrefix, collection))
}

// makeManifestKey generates the key holding a collection's build manifest.
func makeManifestKey(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s", manifestPrefix, collection))
}
