package savegame

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// formatVersion is bumped whenever Snapshot changes incompatibly.
const formatVersion = 1

// ErrFormat is returned when persisted data cannot be decoded.
var ErrFormat = errors.New("savegame: unsupported snapshot format")

// Persister stores an encoded snapshot outside the process.
// LoadSnapshot returns nil data and no error when nothing is stored.
type Persister interface {
	SaveSnapshot(data []byte) error
	LoadSnapshot() ([]byte, error)
}

type envelope struct {
	Version  int      `msgpack:"v"`
	Snapshot Snapshot `msgpack:"s"`
}

// Encode serializes a snapshot with msgpack.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(envelope{Version: formatVersion, Snapshot: snap})
	if err != nil {
		return nil, fmt.Errorf("savegame: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses data produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if env.Version != formatVersion {
		return Snapshot{}, fmt.Errorf("%w: version %d", ErrFormat, env.Version)
	}
	return env.Snapshot, nil
}

// Persist writes the current snapshot, valid or not, to p.
func (s *Store) Persist(p Persister) error {
	data, err := Encode(s.Snapshot())
	if err != nil {
		return err
	}
	if err := p.SaveSnapshot(data); err != nil {
		return fmt.Errorf("savegame: cannot persist snapshot: %w", err)
	}
	return nil
}

// Load replaces the stored snapshot with the one held by p. When p holds
// nothing the store is left untouched.
func (s *Store) Load(p Persister) error {
	data, err := p.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("savegame: cannot load snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	snap, err := Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}
