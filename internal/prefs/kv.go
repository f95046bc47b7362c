// Package prefs persists the small per-workspace records the screens keep
// between visits: profile, skill progress, scan history, settings and the
// last analyzed resume text.
package prefs

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("preference not found")

// KV is the durable key-value store behind Store. Values are opaque bytes;
// a Set overwrites whatever was there and the last writer wins.
type KV interface {
	Get(ctx context.Context, workspace, key string) ([]byte, error)
	Set(ctx context.Context, workspace, key string, value []byte) error
	Delete(ctx context.Context, workspace string, keys ...string) error
}
