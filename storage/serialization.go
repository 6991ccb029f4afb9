package storage

import (
	"fmt"
	"time"

	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MarshalCatalogEntry serializes a CatalogEntry to bytes.
func MarshalCatalogEntry(entry *CatalogEntry) []byte {
	buf := make([]byte, CatalogEntryMUS.Size(*entry))
	CatalogEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalCatalogEntry deserializes a CatalogEntry from bytes.
func UnmarshalCatalogEntry(data []byte) (*CatalogEntry, error) {
	entry, _, err := CatalogEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog entry: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(manifest *Manifest) []byte {
	buf := make([]byte, ManifestMUS.Size(*manifest))
	ManifestMUS.Marshal(*manifest, buf)
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	manifest, _, err := ManifestMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %w", ErrSerializationFailed, err)
	}
	return &manifest, nil
}

// Field serializers. Vectors are fixed-width floats, integers are varints.
var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

var (
	CatalogEntryMUS = catalogEntryMUS{}
	ManifestMUS     = manifestMUS{}
	MediaRecordMUS  = mediaRecordMUS{}
)

type catalogEntryMUS struct{}

func (s catalogEntryMUS) Marshal(v CatalogEntry, bs []byte) (n int) {
	n = MediaRecordMUS.Marshal(v.Media, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	return n + vectorMUS.Marshal(v.Vector, bs[n:])
}

func (s catalogEntryMUS) Unmarshal(bs []byte) (v CatalogEntry, n int, err error) {
	v.Media, n, err = MediaRecordMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s catalogEntryMUS) Size(v CatalogEntry) (size int) {
	size = MediaRecordMUS.Size(v.Media)
	size += ord.String.Size(v.Text)
	return size + vectorMUS.Size(v.Vector)
}

type mediaRecordMUS struct{}

func (s mediaRecordMUS) strings(v *core.MediaRecord) []*string {
	return []*string{
		&v.Name, &v.Location, &v.Specification, &v.MediaType, &v.OperatingHours,
		&v.ImageDayURL, &v.ImageNightURL, &v.ImageMapURL,
		&v.PopulationTarget, &v.MediaCharacteristics, &v.CaseExamples,
	}
}

func (s mediaRecordMUS) Marshal(v core.MediaRecord, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.MediaID, bs)
	n += varint.Int64.Marshal(int64(v.SlotCount), bs[n:])
	n += varint.Int64.Marshal(v.GuaranteedExposure, bs[n:])
	n += varint.Int64.Marshal(int64(v.DurationSeconds), bs[n:])
	n += varint.Int64.Marshal(int64(v.Quantity), bs[n:])
	n += raw.Float64.Marshal(v.UnitPrice, bs[n:])
	for _, field := range s.strings(&v) {
		n += ord.String.Marshal(*field, bs[n:])
	}
	return n
}

func (s mediaRecordMUS) Unmarshal(bs []byte) (v core.MediaRecord, n int, err error) {
	var n1 int
	v.MediaID, n1, err = varint.Int64.Unmarshal(bs)
	n += n1
	if err != nil {
		return
	}
	var ints [4]int64
	for i := range ints {
		ints[i], n1, err = varint.Int64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.SlotCount = int(ints[0])
	v.GuaranteedExposure = ints[1]
	v.DurationSeconds = int(ints[2])
	v.Quantity = int(ints[3])

	v.UnitPrice, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for _, field := range s.strings(&v) {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s mediaRecordMUS) Size(v core.MediaRecord) (size int) {
	size = varint.Int64.Size(v.MediaID)
	size += varint.Int64.Size(int64(v.SlotCount))
	size += varint.Int64.Size(v.GuaranteedExposure)
	size += varint.Int64.Size(int64(v.DurationSeconds))
	size += varint.Int64.Size(int64(v.Quantity))
	size += raw.Float64.Size(v.UnitPrice)
	for _, field := range s.strings(&v) {
		size += ord.String.Size(*field)
	}
	return size
}

type manifestMUS struct{}

func (s manifestMUS) Marshal(v Manifest, bs []byte) (n int) {
	n = ord.String.Marshal(v.Collection, bs)
	n += ord.String.Marshal(v.Mode, bs[n:])
	n += varint.Int64.Marshal(int64(v.Count), bs[n:])
	n += ord.String.Marshal(v.Digest, bs[n:])
	return n + timeMUS.Marshal(v.BuiltAt, bs[n:])
}

func (s manifestMUS) Unmarshal(bs []byte) (v Manifest, n int, err error) {
	var n1 int
	for _, field := range []*string{&v.Collection, &v.Mode} {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	var count int64
	count, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Count = int(count)
	v.Digest, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BuiltAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s manifestMUS) Size(v Manifest) (size int) {
	size = ord.String.Size(v.Collection)
	size += ord.String.Size(v.Mode)
	size += varint.Int64.Size(int64(v.Count))
	size += ord.String.Size(v.Digest)
	return size + timeMUS.Size(v.BuiltAt)
}

// timeMUS stores UTC seconds and nanoseconds since the Unix epoch.
var timeMUS = utcTimeMUS{}

type utcTimeMUS struct{}

func (s utcTimeMUS) Marshal(v time.Time, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.Unix(), bs)
	return n + varint.Int64.Marshal(int64(v.Nanosecond()), bs[n:])
}

func (s utcTimeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	sec, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	nsec, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	return time.Unix(sec, nsec).UTC(), n, nil
}

func (s utcTimeMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.Unix()) + varint.Int64.Size(int64(v.Nanosecond()))
}
