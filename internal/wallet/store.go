package wallet

import (
	"fmt"
	"sync"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// ConflictError is returned when a record with the same id is already
// stored. Callers offer cancel or clear-all.
type ConflictError struct {
	// Existing is the stored record with the clashing id.
	Existing Record
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("wallet %q (%s) is already saved on this device", e.Existing.Name, e.Existing.ID)
}

// Unwrap lets errors.Is match ErrWalletExists.
func (e *ConflictError) Unwrap() error {
	return skerr.ErrWalletExists
}

// Listener receives the full list after every successful write.
type Listener func(records []Record)

// Store is the in-memory view of the persisted wallet list. It reads storage
// once when opened and writes the whole list back on every change. The list
// is never edited in place: each change builds a new slice.
type Store struct {
	mu        sync.RWMutex
	storage   Storage
	records   []Record
	listeners map[int]Listener
	nextID    int
}

// OpenStore reads storage once and returns the store.
func OpenStore(storage Storage) (*Store, error) {
	records, err := storage.Read()
	if err != nil {
		return nil, err
	}
	return &Store{
		storage:   storage,
		records:   records,
		listeners: make(map[int]Listener),
	}, nil
}

// List returns a copy of the records in insertion order.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.records)
}

// Len returns the number of stored wallets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Newest returns the last appended record.
func (s *Store) Newest() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Find returns the record with id.
func (s *Store) Find(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Names returns every display name in insertion order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.records))
	for i, r := range s.records {
		names[i] = r.Name
	}
	return names
}

// Append adds rec to the end of the list. A record whose id is already
// stored is refused with *ConflictError and nothing is written.
func (s *Store) Append(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	for _, r := range s.records {
		if r.ID == rec.ID {
			s.mu.Unlock()
			return &ConflictError{Existing: r}
		}
	}
	next := append(cloneRecords(s.records), rec)
	return s.commit(next)
}

// Remove drops the record with id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	next := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(s.records) {
		s.mu.Unlock()
		return skerr.WithDetails(skerr.ErrWalletNotFound, map[string]string{"id": id})
	}
	return s.commit(next)
}

// Clear removes every record.
func (s *Store) Clear() error {
	s.mu.Lock()
	return s.commit([]Record{})
}

// Subscribe registers fn for change notifications and returns a function
// that unregisters it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// commit must be called with s.mu held. It releases the lock before
// notifying listeners.
func (s *Store) commit(next []Record) error {
	if err := s.storage.Write(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.records = next

	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneRecords(next))
	}
	return nil
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	copy(out, in)
	return out
}
