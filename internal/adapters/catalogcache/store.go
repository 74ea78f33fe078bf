package catalogcache

import (
	"bufio"
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
)

// FormatVersion is bumped whenever the gob payload changes shape
const FormatVersion = 1

// Header is the uncompressed-JSON first line of the decompressed stream. It can
// be read without decoding the whole catalog.
type Header struct {
	Version   int       `json:"version"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Buildings int       `json:"buildings"`
	Recipes   int       `json:"recipes"`
	Materials int       `json:"materials"`
	Planets   int       `json:"planets"`
}

type payload struct {
	Records catalog.Records
}

// Store keeps one zstd-compressed catalog snapshot on disk
type Store struct {
	path string
}

// NewStore creates a store for the snapshot file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

var _ common.SnapshotStore = (*Store)(nil)

// Path returns the snapshot file location
func (s *Store) Path() string {
	return s.path
}

// Save writes the snapshot to a temporary file and renames it into place
func (s *Store) Save(ctx context.Context, snapshot *common.CatalogSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, snapshot); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to move cache file into place: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "catalog snapshot written", map[string]interface{}{
		"path":       s.path,
		"fetched_at": snapshot.FetchedAt,
	})
	return nil
}

func encode(w io.Writer, snapshot *common.CatalogSnapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	r := snapshot.Records
	hb, _ := json.Marshal(Header{
		Version:   FormatVersion,
		Source:    snapshot.Source,
		FetchedAt: snapshot.FetchedAt,
		Buildings: len(r.Buildings),
		Recipes:   len(r.Recipes),
		Materials: len(r.Materials),
		Planets:   len(r.Planets),
	})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&payload{Records: r}); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// Load reads the snapshot; a missing file yields common.ErrSnapshotNotFound
func (s *Store) Load(ctx context.Context) (*common.CatalogSnapshot, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, common.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog snapshot: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	header, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := gob.NewDecoder(br).Decode(&p); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}

	return &common.CatalogSnapshot{
		Source:    header.Source,
		FetchedAt: header.FetchedAt,
		Records:   p.Records,
	}, nil
}

// ReadHeader returns only the snapshot header
func (s *Store) ReadHeader() (Header, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Header{}, common.ErrSnapshotNotFound
	}
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Header{}, err
	}
	defer dec.Close()

	return readHeader(bufio.NewReader(dec))
}

func readHeader(br *bufio.Reader) (Header, error) {
	var h Header
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("invalid snapshot header: %w", err)
	}
	if h.Version != FormatVersion {
		return h, fmt.Errorf("unsupported snapshot version %d (want %d)", h.Version, FormatVersion)
	}
	return h, nil
}
