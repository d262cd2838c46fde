package storage

import (
	"context"

	"github.com/acarlini/wordled/internal/model"
)

// Store persists the server state snapshot. Load runs exactly once at
// startup and Save exactly once at shutdown, after every worker and the
// rotation timer have stopped; implementations do not need to support
// concurrent calls.
type Store interface {
	// Load reads the saved snapshot, or model.ErrNoSnapshot if none exists.
	Load(ctx context.Context) (*model.Snapshot, error)

	// Save writes the snapshot atomically, replacing any previous one.
	Save(ctx context.Context, snap *model.Snapshot) error

	// Close releases any underlying resources.
	Close() error
}
