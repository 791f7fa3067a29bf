package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory implementation of Store for use in unit tests.
// It is exported so that session tests can use it without creating a file
// on disk.
type MemStore struct {
	mu    sync.Mutex
	lists map[string]Snapshot
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{lists: make(map[string]Snapshot)}
}

func (m *MemStore) Load(name string) (Snapshot, bool, error) {
	if err := validateName(name); err != nil {
		return Snapshot{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.lists[name]
	return copySnapshot(snap), ok, nil
}

func (m *MemStore) Save(name string, snap Snapshot) error {
	return m.Update(name, func(cur *Snapshot) error {
		*cur = copySnapshot(snap)
		return nil
	})
}

func (m *MemStore) Update(name string, fn func(snap *Snapshot) error) error {
	if err := validateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := copySnapshot(m.lists[name])
	if err := fn(&snap); err != nil {
		return fmt.Errorf("storage: update %s: %w", name, err)
	}
	snap.UpdatedAt = time.Now().UTC()
	m.lists[name] = copySnapshot(snap)
	return nil
}

func (m *MemStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, name)
	return nil
}

func (m *MemStore) Names() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.lists))
	for k := range m.lists {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// DBPath returns "" for the in-memory store.
func (m *MemStore) DBPath() string { return "" }

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error { return nil }
