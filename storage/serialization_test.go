package storage

import (
	"testing"
	"time"

	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEntry() *CatalogEntry {
	return &CatalogEntry{
		Media: core.MediaRecord{
			MediaID:              7,
			Name:                 "강남대로 미디어폴",
			Location:             "Gangnam",
			Specification:        "1920x1080",
			SlotCount:            6,
			MediaType:            "디지털 사이니지",
			OperatingHours:       "06:00-24:00",
			GuaranteedExposure:   4200000,
			DurationSeconds:      15,
			Quantity:             12,
			UnitPrice:            1250000.5,
			ImageDayURL:          "https://img.example.com/day.jpg",
			ImageNightURL:        "https://img.example.com/night.jpg",
			ImageMapURL:          "https://img.example.com/map.jpg",
			PopulationTarget:     "20s-30s",
			MediaCharacteristics: "고해상도 LED",
			CaseExamples:         "팝업 런칭",
		},
		Text:   "위치: Gangnam",
		Vector: []float32{0.6, 0.8, -0.25},
	}
}

func TestCatalogEntryRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry *CatalogEntry
	}{
		{name: "all fields", entry: fullEntry()},
		{name: "negative ids and counts", entry: &CatalogEntry{
			Media:  core.MediaRecord{MediaID: -3, SlotCount: -1, Name: "x"},
			Vector: []float32{1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalCatalogEntry(MarshalCatalogEntry(tt.entry))
			require.NoError(t, err)
			assert.Equal(t, tt.entry, decoded)
		})
	}
}

func TestCatalogEntry_VectorIsCompact(t *testing.T) {
	entry := fullEntry()
	entry.Vector = make([]float32, 1536)
	for i := range entry.Vector {
		entry.Vector[i] = float32(i) / 1536
	}

	data := MarshalCatalogEntry(entry)
	// Four bytes per dimension plus the record fields.
	assert.Less(t, len(data), 4*1536+512)

	decoded, err := UnmarshalCatalogEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry.Vector, decoded.Vector)
}

func TestManifestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		manifest *Manifest
	}{
		{name: "built", manifest: &Manifest{
			Collection: "media",
			Mode:       "replace",
			Count:      1200,
			Digest:     "9f2c",
			BuiltAt:    time.Date(2025, 5, 20, 9, 30, 0, 123456789, time.UTC),
		}},
		{name: "zero time", manifest: &Manifest{Collection: "media", Mode: "append"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalManifest(MarshalManifest(tt.manifest))
			require.NoError(t, err)
			assert.Equal(t, tt.manifest.Collection, decoded.Collection)
			assert.Equal(t, tt.manifest.Mode, decoded.Mode)
			assert.Equal(t, tt.manifest.Count, decoded.Count)
			assert.Equal(t, tt.manifest.Digest, decoded.Digest)
			assert.True(t, tt.manifest.BuiltAt.Equal(decoded.BuiltAt))
		})
	}
}

func TestUnmarshal_Truncated(t *testing.T) {
	entry := MarshalCatalogEntry(fullEntry())
	manifest := MarshalManifest(&Manifest{Collection: "media", Count: 3, BuiltAt: time.Now()})

	tests := []struct {
		name   string
		decode func() error
	}{
		{name: "empty entry", decode: func() error { _, err := UnmarshalCatalogEntry(nil); return err }},
		{name: "entry cut in vector", decode: func() error { _, err := UnmarshalCatalogEntry(entry[:len(entry)-2]); return err }},
		{name: "entry cut in record", decode: func() error { _, err := UnmarshalCatalogEntry(entry[:5]); return err }},
		{name: "empty manifest", decode: func() error { _, err := UnmarshalManifest([]byte{}); return err }},
		{name: "manifest cut in time", decode: func() error { _, err := UnmarshalManifest(manifest[:len(manifest)-1]); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.decode(), ErrSerializationFailed)
		})
	}
}
