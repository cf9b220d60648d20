// Package terraindb persists finished terrain generation runs in a leveldb
// database. It sits outside the generation core at the serialization
// boundary: a stored run carries the full configuration, the measured
// metrics and the derived sub-seeds, enough to reproduce the identical
// terrain from a bare config and to audit that a reproduction matched.
package terraindb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/terragen/terrain"
	"github.com/df-mc/terragen/terrain/field"
	"github.com/pelletier/go-toml"
	"github.com/segmentio/fasthash/fnv1a"
	"golang.org/x/mod/semver"
)

// FormatVersion is the semver of the run document format. Documents with a
// different major version are rejected on load.
const FormatVersion = "v1.0.0"

var (
	// ErrNotFound is returned when no run is stored under a key.
	ErrNotFound = errors.New("terraindb: run not found")
	// ErrFormatVersion is returned when a stored document's format major
	// version does not match this package's.
	ErrFormatVersion = errors.New("terraindb: incompatible run document version")
	// ErrCorrupted is returned when a stored height blob fails its digest
	// check.
	ErrCorrupted = errors.New("terraindb: height data corrupted")
)

// DB is a handle to a run database. It is safe for use by a single process;
// leveldb locks the directory.
type DB struct {
	ldb *leveldb.DB
	log *slog.Logger
}

// Open opens (or creates) the run database in the directory passed.
func Open(dir string, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}
	ldb, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}
	return &DB{ldb: ldb, log: log}, nil
}

// Close releases the database.
func (db *DB) Close() error {
	return db.ldb.Close()
}

// RunKey identifies a stored run. Keys are derived from the configuration,
// so storing two runs of the same config overwrites rather than duplicates.
type RunKey uint64

// KeyFor derives the run key of a config: an fnv1a hash of its canonical
// TOML encoding.
func KeyFor(conf terrain.Config) (RunKey, error) {
	data, err := toml.Marshal(conf)
	if err != nil {
		return 0, fmt.Errorf("encode config for key: %w", err)
	}
	return RunKey(fnv1a.HashBytes64(data)), nil
}

// Document is the versioned TOML text stored beside the raw heights.
type Document struct {
	FormatVersion string         `toml:"format_version"`
	RunID         string         `toml:"run_id"`
	Config        terrain.Config `toml:"config"`
	SeaLevel      float64        `toml:"sea_level"`
	// ElevationDigest is the xxhash64 of the height grid, stored as hex.
	ElevationDigest string           `toml:"elevation_digest"`
	SubSeeds        map[string]int64 `toml:"sub_seeds"`
	WaterActual     float64          `toml:"water_actual"`
	Passed          bool             `toml:"passed"`
}

// StoredRun is a run loaded back from the database.
type StoredRun struct {
	Key       RunKey
	Document  Document
	Elevation *field.Field
}

func docKey(k RunKey) []byte    { return appendKey([]byte("doc:"), k) }
func heightKey(k RunKey) []byte { return appendKey([]byte("heights:"), k) }

func appendKey(prefix []byte, k RunKey) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return append(prefix, buf[:]...)
}

// Store writes a finished run into the database and returns its key.
func (db *DB) Store(conf terrain.Config, data *terrain.TerrainData) (RunKey, error) {
	key, err := KeyFor(conf)
	if err != nil {
		return 0, err
	}
	subSeeds := make(map[string]int64, len(data.SubSeeds))
	for label, seed := range data.SubSeeds {
		subSeeds[label] = int64(seed)
	}
	doc := Document{
		FormatVersion:   FormatVersion,
		RunID:           data.Metrics.RunID.String(),
		Config:          conf,
		SeaLevel:        data.SeaLevel,
		ElevationDigest: strconv.FormatUint(data.Elevation.Digest(), 16),
		SubSeeds:        subSeeds,
		WaterActual:     data.Metrics.ActualWaterPercentage,
		Passed:          data.Metrics.Passed,
	}
	encoded, err := toml.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode run document: %w", err)
	}
	if err := db.ldb.Put(docKey(key), encoded, nil); err != nil {
		return 0, fmt.Errorf("store run document: %w", err)
	}
	if err := db.ldb.Put(heightKey(key), encodeHeights(data.Elevation), nil); err != nil {
		return 0, fmt.Errorf("store heights: %w", err)
	}
	db.log.Debug("run stored", "key", uint64(key), "run_id", doc.RunID)
	return key, nil
}

// Load reads the run stored under the key passed, verifying the document
// format version and the height blob digest.
func (db *DB) Load(key RunKey) (*StoredRun, error) {
	rawDoc, err := db.ldb.Get(docKey(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load run document: %w", err)
	}
	var doc Document
	if err := toml.Unmarshal(rawDoc, &doc); err != nil {
		return nil, fmt.Errorf("decode run document: %w", err)
	}
	if !semver.IsValid(doc.FormatVersion) || semver.Major(doc.FormatVersion) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("%w: stored %q, supported %q", ErrFormatVersion, doc.FormatVersion, FormatVersion)
	}

	rawHeights, err := db.ldb.Get(heightKey(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load heights: %w", err)
	}
	f, err := decodeHeights(rawHeights)
	if err != nil {
		return nil, err
	}
	if digest := strconv.FormatUint(f.Digest(), 16); digest != doc.ElevationDigest {
		return nil, fmt.Errorf("%w: digest %s, document says %s", ErrCorrupted, digest, doc.ElevationDigest)
	}
	return &StoredRun{Key: key, Document: doc, Elevation: f}, nil
}

// encodeHeights serialises a field as dimensions plus little-endian float64
// cells.
func encodeHeights(f *field.Field) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 8+f.Len()*8))
	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[0:4], uint32(f.Width()))
	binary.LittleEndian.PutUint32(scratch[4:8], uint32(f.Height()))
	buf.Write(scratch[:])
	for _, v := range f.Values() {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
		buf.Write(scratch[:])
	}
	return buf.Bytes()
}

func decodeHeights(data []byte) (*field.Field, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: blob too short", ErrCorrupted)
	}
	w := int(binary.LittleEndian.Uint32(data[0:4]))
	h := int(binary.LittleEndian.Uint32(data[4:8]))
	f, err := field.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if len(data) != 8+f.Len()*8 {
		return nil, fmt.Errorf("%w: blob length %d for %dx%d grid", ErrCorrupted, len(data), w, h)
	}
	for i := range f.Values() {
		f.Values()[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8+i*8:]))
	}
	return f, nil
}
