package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acarlini/wordled/internal/admin"
	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/services/directory"
	"github.com/acarlini/wordled/internal/services/word"
	"github.com/acarlini/wordled/internal/storage"
)

// Coordinator orchestrates graceful shutdown. The ordering is the central
// correctness invariant: the snapshot is taken only after every session
// and the rotation timer have fully stopped, so persistence never races
// with anything that could still mutate shared state.
type Coordinator struct {
	server    *Server
	rotator   *word.Rotator
	admin     *admin.Server
	store     storage.Store
	words     *word.Manager
	directory *directory.Directory
	grace     time.Duration
	logger    *slog.Logger
}

// NewCoordinator wires the components the shutdown sequence touches.
func NewCoordinator(
	srv *Server,
	rotator *word.Rotator,
	adminSrv *admin.Server,
	store storage.Store,
	words *word.Manager,
	dir *directory.Directory,
	grace time.Duration,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		server:    srv,
		rotator:   rotator,
		admin:     adminSrv,
		store:     store,
		words:     words,
		directory: dir,
		grace:     grace,
		logger:    logger,
	}
}

// Shutdown runs the full sequence, each step waiting for the previous:
// stop the listener, drain sessions with a bounded grace period, stop the
// rotation timer, stop the admin server, then persist the snapshot
// exactly once.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.logger.Info("shutdown started")

	if err := c.server.Close(); err != nil {
		c.logger.Warn("closing listener", slog.String("error", err.Error()))
	}

	c.server.Drain(c.grace)
	c.logger.Info("sessions drained")

	c.rotator.Stop()
	c.logger.Info("rotation timer stopped")

	if c.admin != nil {
		if err := c.admin.Shutdown(ctx); err != nil {
			c.logger.Warn("stopping admin server", slog.String("error", err.Error()))
		}
	}

	// Only this goroutine touches shared state from here on.
	snap := &model.Snapshot{
		Word:      model.NewWordRecord(c.words.Current()),
		UsedWords: c.words.UsedWords(),
		Users:     c.directory.Records(),
	}
	if err := c.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("persisting state: %w", err)
	}

	c.logger.Info("state persisted", slog.Int("users", len(snap.Users)))
	return nil
}
