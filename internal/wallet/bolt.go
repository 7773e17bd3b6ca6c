package wallet

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

const (
	// BoltFile is the database file used by the bolt driver.
	BoltFile = "wallets.db"

	boltBucket = "skibidi"
	boltKey    = "wallets"
)

// BoltStorage keeps the list as one JSON value in a bbolt database.
type BoltStorage struct {
	db *bbolt.DB
}

// OpenBoltStorage opens or creates dir/wallets.db. The file lock is held
// until Close; a second process waits up to one second and then fails.
func OpenBoltStorage(dir string) (*BoltStorage, error) {
	path := filepath.Join(dir, BoltFile)
	db, err := bbolt.Open(path, walletFilePermissions, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, skerr.Wrap(skerr.ErrStorage, "opening %s: %v", BoltFile, err)
	}
	return &BoltStorage{db: db}, nil
}

// Read returns the stored list.
func (b *BoltStorage) Read() ([]Record, error) {
	records := []Record{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(boltKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &records)
	})
	if err != nil {
		return nil, skerr.Wrap(skerr.ErrStorage, "reading %s: %v", BoltFile, err)
	}
	return records, nil
}

// Write replaces the stored list in one transaction.
func (b *BoltStorage) Write(records []Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		return bucket.Put([]byte(boltKey), data)
	})
	if err != nil {
		return skerr.Wrap(skerr.ErrStorage, "writing %s: %v", BoltFile, err)
	}
	return nil
}

// Close releases the database file.
func (b *BoltStorage) Close() error {
	return b.db.Close()
}
