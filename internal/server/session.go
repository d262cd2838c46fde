package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/protocol"
	"github.com/acarlini/wordled/internal/services/scoring"
)

// session is the per-connection protocol state machine. Requests are read
// one at a time; there is no pipelining.
type session struct {
	server *Server
	conn   net.Conn
	logger *slog.Logger

	// username is empty until register or login succeeds.
	username string
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()

	s.track(conn)
	s.active.Add(1)

	sess := &session{
		server: s,
		conn:   conn,
		logger: s.logger.With(
			slog.String("session_id", uuid.NewString()),
			slog.String("remote", conn.RemoteAddr().String()),
		),
	}

	defer func() {
		// The only cleanup needed on any exit path: profile mutations are
		// applied immediately during play, so nothing else can be lost.
		if sess.username != "" {
			s.directory.Logout(sess.username)
		}
		_ = conn.Close()
		s.untrack(conn)
		s.active.Add(-1)
	}()

	sess.logger.Info("session started")

	if err := sess.run(); err != nil {
		sess.logger.Info("session ended", slog.String("reason", err.Error()))
		return
	}
	sess.logger.Info("session closed")
}

// run drives the request loop until quit, a malformed request or an I/O
// failure.
func (sess *session) run() error {
	for {
		frame, err := protocol.ReadFrame(sess.conn)
		if err != nil {
			return err
		}

		req, err := protocol.ParseRequest(frame)
		if err != nil {
			// Malformed requests terminate the connection.
			return err
		}

		switch req.Code {
		case protocol.CodeRegister, protocol.CodeLogin:
			if sess.username != "" {
				err = sess.respond(protocol.CodeError, "already authenticated")
			} else {
				err = sess.authenticate(req)
			}
		case protocol.CodePlay:
			err = sess.authenticated(sess.play)
		case protocol.CodeStats:
			err = sess.authenticated(sess.stats)
		case protocol.CodeQuit:
			return nil
		default:
			err = sess.respond(protocol.CodeError, "unexpected request")
		}
		if err != nil {
			return err
		}
	}
}

// authenticated runs op if the session is logged in, otherwise reports an
// error to the client and stays in the unauthenticated state.
func (sess *session) authenticated(op func() error) error {
	if sess.username == "" {
		return sess.respond(protocol.CodeError, "authentication required")
	}
	return op()
}

func (sess *session) authenticate(req protocol.Request) error {
	username, password, err := req.Credentials()
	if err != nil {
		return err
	}

	var authErr error
	var success string
	if req.Code == protocol.CodeRegister {
		authErr = sess.server.directory.Register(username, password)
		success = "registered successfully"
	} else {
		authErr = sess.server.directory.Login(username, password)
		success = "logged in successfully"
	}

	if authErr != nil {
		return sess.respond(protocol.CodeError, authErr.Error())
	}

	sess.username = username
	sess.logger.Info("user authenticated", slog.String("username", username))
	return sess.respond(protocol.CodeOK, success)
}

func (sess *session) stats() error {
	summary, err := sess.server.directory.Summary(sess.username)
	if err != nil {
		return sess.respond(protocol.CodeError, err.Error())
	}
	return sess.respond(protocol.CodeOK, summary)
}

// play runs one game: up to MaxAttempts scored guesses against a snapshot
// of the current word, then the one-time share choice.
func (sess *session) play() error {
	current := sess.server.words.Current()

	priorStreak, err := sess.server.directory.StartGame(sess.username, current.ExpiresAt)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyPlayed) {
			return sess.respond(protocol.CodeError, err.Error())
		}
		return err
	}

	if err := sess.respond(protocol.CodeOK,
		fmt.Sprintf("Word %d: %d attempts to guess", current.Sequence, model.MaxAttempts)); err != nil {
		return err
	}

	transcript := &model.Transcript{Username: sess.username, Sequence: current.Sequence}

	for attempt := 1; attempt <= model.MaxAttempts; {
		guess, err := protocol.ReadFrame(sess.conn)
		if err != nil {
			return err
		}

		if guess == protocol.AbandonToken {
			// Abandoning counts as a loss; StartGame already zeroed the
			// streak. No share choice is offered.
			sess.logger.Info("game abandoned",
				slog.String("username", sess.username),
				slog.Int64("sequence", current.Sequence))
			return nil
		}

		if len(guess) != model.WordLength || !sess.server.dict.Contains(guess) {
			// Invalid guesses do not consume an attempt.
			if err := sess.respond(protocol.CodeError, model.ErrWordNotFound.Error()); err != nil {
				return err
			}
			continue
		}

		feedback := scoring.Score(guess, current.Text)
		transcript.Record(attempt, string(feedback))

		if feedback.Win() {
			sess.server.directory.RecordWin(sess.username, attempt, priorStreak)
			if err := sess.respond(protocol.CodeGameOver,
				fmt.Sprintf("Correct! Guessed at attempt %d", attempt)); err != nil {
				return err
			}
			break
		}

		if attempt == model.MaxAttempts {
			if err := sess.respond(protocol.CodeGameOver,
				fmt.Sprintf("Attempt %d: %s\nOut of attempts, try again at the next word",
					attempt, feedback)); err != nil {
				return err
			}
		} else {
			if err := sess.respond(protocol.CodeOK,
				fmt.Sprintf("Attempt %d: %s", attempt, feedback)); err != nil {
				return err
			}
		}
		attempt++
	}

	return sess.shareChoice(transcript)
}

// shareChoice reads exactly one frame after a finished game: a share
// request publishes the transcript, anything else declines silently.
func (sess *session) shareChoice(transcript *model.Transcript) error {
	frame, err := protocol.ReadFrame(sess.conn)
	if err != nil {
		return err
	}
	req, err := protocol.ParseRequest(frame)
	if err != nil {
		return err
	}
	if req.Code != protocol.CodeShare {
		return nil
	}

	if err := sess.server.publisher.Publish(transcript.Format()); err != nil {
		// Best-effort delivery: report over the connection, keep the session.
		sess.logger.Warn("share failed", slog.String("error", err.Error()))
		return sess.respond(protocol.CodeError, "share failed")
	}
	return sess.respond(protocol.CodeOK, "result shared")
}

func (sess *session) respond(code int, message string) error {
	return protocol.WriteFrame(sess.conn, protocol.FormatResponse(code, message))
}
