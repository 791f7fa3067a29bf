package storage

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Compile-time proof that BoltStore satisfies the Store interface.
var _ Store = (*BoltStore)(nil)

var bucketLists = []byte("lists")

// BoltStore is an ACID bbolt-backed implementation of Store.
// It is safe for concurrent use.
type BoltStore struct {
	db *bolt.DB
}

// Open opens (or creates) a bbolt database at path and initialises the
// lists bucket.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLists)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: init buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(name string) (Snapshot, bool, error) {
	if err := validateName(name); err != nil {
		return Snapshot{}, false, err
	}
	var (
		snap Snapshot
		ok   bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketLists).Get([]byte(name))
		if data == nil {
			return nil
		}
		ok = true
		return decodeSnapshot(data, &snap)
	})
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("storage: load %s: %w", name, err)
	}
	return snap, ok, nil
}

func (s *BoltStore) Save(name string, snap Snapshot) error {
	return s.Update(name, func(cur *Snapshot) error {
		*cur = copySnapshot(snap)
		return nil
	})
}

func (s *BoltStore) Update(name string, fn func(snap *Snapshot) error) error {
	if err := validateName(name); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLists)
		var snap Snapshot
		if data := b.Get([]byte(name)); data != nil {
			if err := decodeSnapshot(data, &snap); err != nil {
				return err
			}
		}
		if err := fn(&snap); err != nil {
			return err
		}
		snap.UpdatedAt = time.Now().UTC()
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		return b.Put([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("storage: update %s: %w", name, err)
	}
	return nil
}

func (s *BoltStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLists).Delete([]byte(name))
	}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

func (s *BoltStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLists).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: names: %w", err)
	}
	return names, nil
}

func decodeSnapshot(data []byte, snap *Snapshot) error {
	if err := json.Unmarshal(data, snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return nil
}

// DBPath returns the filesystem path of the database file.
func (s *BoltStore) DBPath() string { return s.db.Path() }

// Close cleanly closes the underlying bbolt database.
func (s *BoltStore) Close() error { return s.db.Close() }
