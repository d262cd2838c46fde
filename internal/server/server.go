// Package server implements the TCP game server: the accept loop, the
// per-connection session state machine and the shutdown coordinator.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/acarlini/wordled/internal/broadcast"
	"github.com/acarlini/wordled/internal/services/dictionary"
	"github.com/acarlini/wordled/internal/services/directory"
	"github.com/acarlini/wordled/internal/services/word"
)

// Config holds the game server's settings.
type Config struct {
	Port        int
	AcceptRate  float64
	AcceptBurst int
}

// Server accepts connections and runs one session handler per connection.
// Sessions own no shared state: they mutate the directory and the word
// manager only through their synchronized operations.
type Server struct {
	cfg       Config
	logger    *slog.Logger
	directory *directory.Directory
	words     *word.Manager
	dict      *dictionary.Dictionary
	publisher *broadcast.Publisher
	limiter   *rate.Limiter

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}

	wg     sync.WaitGroup
	active atomic.Int64
}

// New creates a Server.
func New(
	cfg Config,
	dir *directory.Directory,
	words *word.Manager,
	dict *dictionary.Dictionary,
	publisher *broadcast.Publisher,
	logger *slog.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		directory: dir,
		words:     words,
		dict:      dict,
		publisher: publisher,
		limiter:   rate.NewLimiter(rate.Limit(cfg.AcceptRate), cfg.AcceptBurst),
		conns:     make(map[net.Conn]struct{}),
	}
}

// Start listens on the configured port and serves until the listener is
// closed by the coordinator.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ln)
}

// Serve runs the accept loop on an existing listener. It returns nil once
// the listener is closed.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("game server listening", slog.String("addr", ln.Addr().String()))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accepting connection: %w", err)
		}

		if !s.limiter.Allow() {
			s.logger.Warn("connection rejected by rate limiter",
				slog.String("remote", conn.RemoteAddr().String()))
			_ = conn.Close()
			continue
		}

		s.wg.Add(1)
		go s.handle(conn)
	}
}

// Addr returns the listener's address, for tests using port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops the listener so no new connections are accepted. In-flight
// sessions keep running until Drain.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.listener = nil
	return err
}

// Drain waits up to grace for in-flight sessions to finish, then
// force-closes the stragglers' connections and waits for their handlers
// to unwind.
func (s *Server) Drain(grace time.Duration) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(grace):
	}

	s.logger.Warn("grace period elapsed, force-closing sessions",
		slog.Int64("remaining", s.active.Load()))

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	<-done
}

// ActiveSessions returns the number of live sessions.
func (s *Server) ActiveSessions() int64 {
	return s.active.Load()
}

// CurrentSequence returns the current word's sequence id.
func (s *Server) CurrentSequence() int64 {
	return s.words.Current().Sequence
}

// RegisteredUsers returns the number of registered users.
func (s *Server) RegisteredUsers() int {
	return s.directory.Count()
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
