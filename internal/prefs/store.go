package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Record keys. Each screen owns its keys; nothing links them.
const (
	KeyUserProfile    = "userProfile"
	KeyScanHistory    = "scanHistory"
	KeySkillProgress  = "skillProgress"
	KeyTheme          = "theme"
	KeyPrivacyMode    = "privacyMode"
	KeyLastResumeText = "lastResumeText"
)

// AllKeys lists every key a workspace may hold.
var AllKeys = []string{
	KeyUserProfile,
	KeyScanHistory,
	KeySkillProgress,
	KeyTheme,
	KeyPrivacyMode,
	KeyLastResumeText,
}

// ErrQuotaExceeded is returned when a serialized record is larger than the store allows.
var ErrQuotaExceeded = errors.New("preference value exceeds storage quota")

// DefaultMaxValueBytes mirrors the few-megabyte quota of browser local storage.
const DefaultMaxValueBytes = 5 * 1024 * 1024

// Store reads and writes typed records on top of a KV. Reads never fail on
// bad data: absent or malformed values come back as "not found" and the
// typed accessors fill in defaults.
type Store struct {
	kv            KV
	logger        *slog.Logger
	maxValueBytes int
	now           func() time.Time
}

// NewStore builds a Store. maxValueBytes <= 0 uses DefaultMaxValueBytes.
func NewStore(kv KV, logger *slog.Logger, maxValueBytes int) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if maxValueBytes <= 0 {
		maxValueBytes = DefaultMaxValueBytes
	}
	return &Store{
		kv:            kv,
		logger:        logger.With(slog.String("component", "prefs")),
		maxValueBytes: maxValueBytes,
		now:           time.Now,
	}
}

// read decodes key into v. It reports false when the key is absent or holds
// something that does not decode; only backend failures are errors.
func (s *Store) read(ctx context.Context, workspace, key string, v any) (bool, error) {
	raw, err := s.kv.Get(ctx, workspace, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.logger.Warn("ignoring malformed preference",
			slog.String("workspace", workspace),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false, nil
	}
	return true, nil
}

// readRaw returns the stored bytes, or nil when absent.
func (s *Store) readRaw(ctx context.Context, workspace, key string) ([]byte, error) {
	raw, err := s.kv.Get(ctx, workspace, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, nil
}

// write serializes v and overwrites key.
func (s *Store) write(ctx context.Context, workspace, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if len(raw) > s.maxValueBytes {
		return fmt.Errorf("write %s (%d bytes): %w", key, len(raw), ErrQuotaExceeded)
	}
	if err := s.kv.Set(ctx, workspace, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every record of the workspace.
func (s *Store) ClearAll(ctx context.Context, workspace string) error {
	if err := s.kv.Delete(ctx, workspace, AllKeys...); err != nil {
		return fmt.Errorf("clear workspace: %w", err)
	}
	s.logger.Info("workspace data cleared", slog.String("workspace", workspace))
	return nil
}
