// Package factory wires the application components together from a
// Config, restoring persisted state or drawing a fresh word on first run.
package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/acarlini/wordled/internal/admin"
	"github.com/acarlini/wordled/internal/broadcast"
	"github.com/acarlini/wordled/internal/config"
	"github.com/acarlini/wordled/internal/dependencies/clock"
	"github.com/acarlini/wordled/internal/dependencies/random"
	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/server"
	"github.com/acarlini/wordled/internal/services/dictionary"
	"github.com/acarlini/wordled/internal/services/directory"
	"github.com/acarlini/wordled/internal/services/word"
	"github.com/acarlini/wordled/internal/storage"
	filestorage "github.com/acarlini/wordled/internal/storage/file"
	redisstorage "github.com/acarlini/wordled/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	Dictionary  *dictionary.Dictionary
	Words       *word.Manager
	Rotator     *word.Rotator
	Directory   *directory.Directory
	Publisher   *broadcast.Publisher
	Server      *server.Server
	Admin       *admin.Server
	Coordinator *server.Coordinator
}

// New creates the application with all dependencies wired and state
// restored. A missing snapshot is not an error: a fresh word is drawn.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	dict, err := dictionary.Load(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	rnd := random.New()

	words := word.NewManager(dict, rnd, cfg.RotationPeriod, logger)
	dir := directory.New(logger)

	snap, err := store.Load(ctx)
	switch {
	case err == nil:
		words.Restore(snap.Word.ToWord(), snap.UsedWords)
		dir.Restore(snap.Users)
		logger.Info("state restored",
			slog.Int64("sequence", snap.Word.Sequence),
			slog.Int("users", len(snap.Users)))
	case errors.Is(err, model.ErrNoSnapshot):
		if _, err := words.Rotate(clk.Now()); err != nil {
			return nil, fmt.Errorf("drawing initial word: %w", err)
		}
		logger.Info("no saved state, fresh word drawn")
	default:
		return nil, err
	}

	rotator := word.NewRotator(words, clk, logger)

	publisher, err := broadcast.NewPublisher(cfg.MulticastGroup, cfg.MulticastPort, logger)
	if err != nil {
		return nil, err
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		AcceptRate:  cfg.AcceptRate,
		AcceptBurst: cfg.AcceptBurst,
	}, dir, words, dict, publisher, logger)

	adminSrv := admin.NewServer(cfg.AdminPort, srv, logger)

	coordinator := server.NewCoordinator(
		srv, rotator, adminSrv, store, words, dir, cfg.ShutdownGrace, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Dictionary:  dict,
		Words:       words,
		Rotator:     rotator,
		Directory:   dir,
		Publisher:   publisher,
		Server:      srv,
		Admin:       adminSrv,
		Coordinator: coordinator,
	}, nil
}

func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StorageType {
	case config.StorageTypeFile:
		return filestorage.New(cfg.SnapshotPath)
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		return redisstorage.New(redisCfg)
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
}
