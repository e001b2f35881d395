// Package state persists per-calculator input state as raw JSON keyed
// by calculator slug. Backends share one interface so the server can run
// on an in-memory map, Redis, Postgres, or Redis-in-front-of-Postgres
// without the handlers caring which.
package state

import (
	"context"
	"encoding/json"
)

// Store is the keyed state backend. Load reports found=false for a key
// that was never saved (or has expired); that is not an error.
type Store interface {
	Load(ctx context.Context, key string) (json.RawMessage, bool, error)
	Save(ctx context.Context, key string, state json.RawMessage) error
	Delete(ctx context.Context, key string) error
	Close() error
}
