// Package storage persists counted-list snapshots between CLI invocations.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidName is returned for list names that cannot be used as keys.
var ErrInvalidName = errors.New("storage: invalid list name")

// Snapshot is the persisted state of one counted list.
type Snapshot struct {
	Values     []int     `json:"values"`
	TotalAdded int       `json:"total_added"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store is the persistence abstraction behind a session. Implementations must
// be safe for concurrent use.
type Store interface {
	// Load returns the snapshot stored under name. ok is false when nothing
	// has been saved yet.
	Load(name string) (snap Snapshot, ok bool, err error)

	Save(name string, snap Snapshot) error

	// Update loads, mutates and saves the snapshot under name in one
	// transaction. fn receives a zero Snapshot when nothing is stored; an
	// error from fn aborts the write.
	Update(name string, fn func(snap *Snapshot) error) error

	Delete(name string) error

	// Names lists stored snapshot names in ascending order.
	Names() ([]string, error)

	// DBPath returns the filesystem path of the database file ("" for in-memory).
	DBPath() string

	Close() error
}

// validateName rejects names that are empty or carry control bytes.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] == 0x7f {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// copySnapshot detaches Values from the caller's backing array.
func copySnapshot(s Snapshot) Snapshot {
	if s.Values != nil {
		s.Values = append([]int(nil), s.Values...)
	}
	return s
}
