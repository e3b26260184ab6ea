package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	"voltraggio/internal/adapters/file"
	"voltraggio/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const defaultFilePerm = 0o600

// Store owns the settings file. Every write re-reads the file and merges the
// known fields over it, so keys added by hand are preserved.
type Store struct {
	path     string
	mu       sync.Mutex
	settings domain.Settings
}

func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s domain.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedSettings, path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("admins", len(s.Admins)).
		Int("triggers", len(s.Triggers)).
		Int64("sent", s.GifSent).
		Msg("loaded settings")

	return &Store{path: path, settings: s}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Settings returns a copy that callers may modify freely.
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.Clone()
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.Token
}

func (s *Store) SendCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.GifSent
}

func (s *Store) Admins() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.settings.Admins)
}

func (s *Store) IsAdmin(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Contains(s.settings.Admins, chatID)
}

func (s *Store) Triggers() domain.TriggerMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.settings.Triggers)
}

func (s *Store) StartDate() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ParseStartDate(s.settings.StartDate)
}

func (s *Store) AnimationPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.AnimationPath
}

func (s *Store) ImagePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.ImagePath
}

// IncrementSendCount bumps the counter and persists it before returning. When
// the write fails the in-memory value stays incremented, so it is never behind
// the file.
func (s *Store) IncrementSendCount() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.GifSent++

	if err := s.persist(); err != nil {
		return s.settings.GifSent, fmt.Errorf("failed to persist send count: %w", err)
	}

	return s.settings.GifSent, nil
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist()
}

// persist must be called with s.mu held.
func (s *Store) persist() error {
	return withFileLock(s.path+".lock", func() error {
		merged, perm, err := readRaw(s.path)
		if err != nil {
			return err
		}

		current, err := json.Marshal(s.settings)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(current, &fields); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}

		maps.Copy(merged, fields)

		out, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}

		return file.WriteAtomic(s.path, append(out, '\n'), perm)
	})
}

// readRaw returns the current on-disk object. A missing or empty file yields
// an empty object.
func readRaw(path string) (map[string]json.RawMessage, os.FileMode, error) {
	raw := make(map[string]json.RawMessage)

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("settings file disappeared, recreating it")
		return raw, defaultFilePerm, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat settings file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read settings file: %w", err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %w", domain.ErrMalformedSettings, path, err)
		}
	}

	return raw, info.Mode().Perm(), nil
}
