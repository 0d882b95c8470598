package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/savegame"
)

// Ensure Store and Slot can persist the suspended session.
var (
	_ savegame.Persister = (*Store)(nil)
	_ savegame.Persister = Slot{}
)

// DefaultSlot holds the local player's suspended session.
const DefaultSlot = "default"

// Slot is a named save slot. SSH sessions get one per user.
type Slot struct {
	store *Store
	name  string
}

// Slot returns the save slot with the given name.
func (s *Store) Slot(name string) Slot {
	if name == "" {
		name = DefaultSlot
	}
	return Slot{store: s, name: name}
}

// Name returns the slot name.
func (sl Slot) Name() string { return sl.name }

// SaveSnapshot stores an encoded session snapshot, replacing the previous one.
func (sl Slot) SaveSnapshot(data []byte) error {
	_, err := sl.store.db.Exec(
		`INSERT INTO saved_games (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		sl.name, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot %q: %w", sl.name, err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil when there is none.
func (sl Slot) LoadSnapshot() ([]byte, error) {
	var data []byte
	err := sl.store.db.QueryRow("SELECT data FROM saved_games WHERE slot = ?", sl.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load snapshot %q: %w", sl.name, err)
	}
	return data, nil
}

// Clear removes the stored snapshot.
func (sl Slot) Clear() error {
	if _, err := sl.store.db.Exec("DELETE FROM saved_games WHERE slot = ?", sl.name); err != nil {
		return fmt.Errorf("storage: cannot clear snapshot %q: %w", sl.name, err)
	}
	return nil
}

// SaveSnapshot stores a snapshot in the default slot.
func (s *Store) SaveSnapshot(data []byte) error {
	return s.Slot(DefaultSlot).SaveSnapshot(data)
}

// LoadSnapshot loads the snapshot from the default slot.
func (s *Store) LoadSnapshot() ([]byte, error) {
	return s.Slot(DefaultSlot).LoadSnapshot()
}

// ClearSnapshot removes the snapshot from the default slot.
func (s *Store) ClearSnapshot() error {
	return s.Slot(DefaultSlot).Clear()
}
