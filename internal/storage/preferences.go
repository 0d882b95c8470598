package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Preference keys.
const (
	PrefDifficulty   = "difficulty"
	PrefSinglePlayer = "single-player-mode"
)

// Preference returns the stored value for key and whether it was set.
func (s *Store) Preference(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read preference %s: %w", key, err)
	}
	return value, true, nil
}

// SetPreference stores value under key, replacing any previous value.
func (s *Store) SetPreference(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
	}
	return nil
}

// PreferenceInt returns an integer preference, or def when it is unset or
// not a number.
func (s *Store) PreferenceInt(key string, def int) (int, error) {
	value, ok, err := s.Preference(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// PreferenceBool returns a boolean preference, or def when it is unset or
// unparsable.
func (s *Store) PreferenceBool(key string, def bool) (bool, error) {
	value, ok, err := s.Preference(key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def, nil
	}
	return b, nil
}

// SetPreferenceInt stores an integer preference.
func (s *Store) SetPreferenceInt(key string, n int) error {
	return s.SetPreference(key, strconv.Itoa(n))
}

// SetPreferenceBool stores a boolean preference.
func (s *Store) SetPreferenceBool(key string, b bool) error {
	return s.SetPreference(key, strconv.FormatBool(b))
}
