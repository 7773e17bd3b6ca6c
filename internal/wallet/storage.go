package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/fileutil"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/seal"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

const (
	// WalletsFile is the file holding the JSON array of records.
	WalletsFile = "wallets.json"

	walletFilePermissions = 0o600
)

// Storage persists the whole wallet list under a single key. Writes replace
// the list wholesale; a missing key reads as an empty list.
type Storage interface {
	// Read returns the stored list in insertion order.
	Read() ([]Record, error)

	// Write replaces the stored list.
	Write(records []Record) error
}

// FileStorage keeps the list in one JSON file, optionally sealed with age.
type FileStorage struct {
	path   string
	sealer *seal.Sealer
	now    func() time.Time
}

// FileOption configures a FileStorage.
type FileOption func(*FileStorage)

// WithSealer encrypts the file with s. Existing plaintext files are still
// readable and get sealed on the next write.
func WithSealer(s *seal.Sealer) FileOption {
	return func(fs *FileStorage) { fs.sealer = s }
}

// WithClock overrides the clock used to name quarantined files.
func WithClock(now func() time.Time) FileOption {
	return func(fs *FileStorage) { fs.now = now }
}

// NewFileStorage stores the list in dir/wallets.json.
func NewFileStorage(dir string, opts ...FileOption) *FileStorage {
	fs := &FileStorage{
		path: filepath.Join(dir, WalletsFile),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Path returns the wallet file location.
func (s *FileStorage) Path() string {
	return s.path
}

// Read loads the list. A file that does not decode is renamed to
// wallets.json.corrupt-<unix> and reported as ErrStorage; the next Read
// starts from an empty list.
func (s *FileStorage) Read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, skerr.Wrap(skerr.ErrStorage, "reading %s: %v", WalletsFile, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	if seal.IsSealed(data) {
		if s.sealer == nil {
			return nil, skerr.WithSuggestion(skerr.ErrDecryptionFailed,
				"the wallet file is encrypted; set SKIBIDI_PASSPHRASE or enable storage.encrypt")
		}
		if data, err = s.sealer.Open(data); err != nil {
			return nil, err
		}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		moved, mvErr := fileutil.MoveAside(s.path, s.now())
		if mvErr != nil {
			return nil, skerr.Wrap(skerr.ErrStorage, "decoding %s: %v", WalletsFile, err)
		}
		return nil, skerr.WithDetails(
			skerr.Wrap(skerr.ErrStorage, "decoding %s: %v", WalletsFile, err),
			map[string]string{"moved_to": moved},
		)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Write replaces the file atomically.
func (s *FileStorage) Write(records []Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	if s.sealer != nil {
		if data, err = s.sealer.Seal(data); err != nil {
			return skerr.Wrap(skerr.ErrStorage, "sealing %s: %v", WalletsFile, err)
		}
	}

	if err := fileutil.WriteAtomic(s.path, data, walletFilePermissions); err != nil {
		return skerr.Wrap(skerr.ErrStorage, "writing %s: %v", WalletsFile, err)
	}
	return nil
}

// MemoryStorage keeps the encoded list in memory.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte

	// FailWrites makes every Write return ErrStorage.
	FailWrites bool
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Read decodes the last written list.
func (m *MemoryStorage) Read() ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(m.data, &records); err != nil {
		return nil, skerr.Wrap(skerr.ErrStorage, "decoding memory store: %v", err)
	}
	return records, nil
}

// Write encodes and keeps records.
func (m *MemoryStorage) Write(records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return skerr.Wrap(skerr.ErrStorage, "memory store is read-only")
	}
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding wallet list: %w", err)
	}
	return data, nil
}
