// Package session ties a persisted snapshot to a live counted list so that
// operations issued across separate CLI invocations accumulate.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/developingchet/counted-sortedlist/internal/config"
	"github.com/developingchet/counted-sortedlist/internal/counter"
	"github.com/developingchet/counted-sortedlist/internal/ops"
	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
	"github.com/developingchet/counted-sortedlist/internal/storage"
)

// DBFile is the database file name inside the data directory.
const DBFile = "lists.db"

// Session is one variant's list backed by a Store. Each variant is stored
// under its own name, so switching variants never mixes tallies.
type Session struct {
	store        storage.Store
	variant      counter.Variant
	synchronized bool
}

// Open creates the data directory if needed, opens the bbolt store inside it
// and returns a session for the configured variant.
func Open(cfg *config.Config) (*Session, error) {
	v, err := counter.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create data dir: %w", err)
	}
	store, err := storage.Open(filepath.Join(cfg.DataDir, DBFile))
	if err != nil {
		return nil, err
	}
	return New(store, v, cfg.Synchronized), nil
}

// New returns a session over an already-open store. The session takes
// ownership of store and closes it in Close.
func New(store storage.Store, v counter.Variant, synchronized bool) *Session {
	return &Session{store: store, variant: v, synchronized: synchronized}
}

func (s *Session) Variant() counter.Variant { return s.variant }

// DBPath returns the store's file path ("" for in-memory stores).
func (s *Session) DBPath() string { return s.store.DBPath() }

// List returns the current persisted list. Mutating it does not write back;
// use Apply for that.
func (s *Session) List() (counter.Counted, error) {
	snap, _, err := s.store.Load(string(s.variant))
	if err != nil {
		return nil, err
	}
	return s.restore(snap)
}

// Apply loads the list, runs ops against it and saves the result in one store
// transaction. Errors carried in the Results (such as an out-of-range get) do
// not abort the save.
func (s *Session) Apply(in []ops.Op) ([]ops.Result, counter.Counted, error) {
	var (
		results []ops.Result
		list    counter.Counted
	)
	err := s.store.Update(string(s.variant), func(snap *storage.Snapshot) error {
		l, err := s.restore(*snap)
		if err != nil {
			return err
		}
		results = ops.Run(l, in)
		snap.Values = sortedlist.Values(l)
		snap.TotalAdded = l.TotalAdded()
		list = l
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Debug().
		Str("variant", string(s.variant)).
		Int("ops", len(in)).
		Int("size", list.Size()).
		Int("total_added", list.TotalAdded()).
		Msg("session saved")
	return results, list, nil
}

// Reset discards the persisted list for this session's variant.
func (s *Session) Reset() error {
	if err := s.store.Delete(string(s.variant)); err != nil {
		return fmt.Errorf("session: reset %s: %w", s.variant, err)
	}
	log.Debug().Str("variant", string(s.variant)).Msg("session reset")
	return nil
}

// Close closes the underlying store.
func (s *Session) Close() error { return s.store.Close() }

func (s *Session) restore(snap storage.Snapshot) (counter.Counted, error) {
	l, err := counter.Restore(s.variant, snap.Values, snap.TotalAdded)
	if err != nil {
		return nil, fmt.Errorf("session: restore %s: %w", s.variant, err)
	}
	if s.synchronized {
		return counter.Synchronized(l), nil
	}
	return l, nil
}
