// Package client implements the interactive terminal client: the menu
// loop, the guess loop and the background multicast subscriber feeding
// the shared-results board.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"sync"

	"github.com/acarlini/wordled/internal/broadcast"
	"github.com/acarlini/wordled/internal/config"
	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/protocol"
)

var (
	credentialPattern = regexp.MustCompile(`^[A-Za-z0-9]{4,20}$`)
	guessPattern      = regexp.MustCompile(fmt.Sprintf(`^[a-z0-9]{%d}$`, model.WordLength))
)

// Client drives one interactive session against the server.
type Client struct {
	cfg    config.Config
	logger *slog.Logger

	conn  net.Conn
	stdin *bufio.Scanner
	out   io.Writer
	board *broadcast.Board
}

// New creates a Client reading commands from in and writing to out.
func New(cfg config.Config, in io.Reader, out io.Writer, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		stdin:  bufio.NewScanner(in),
		out:    out,
		board:  broadcast.NewBoard(),
	}
}

// Run connects and drives the menus until the user quits or input ends.
func (c *Client) Run(ctx context.Context) error {
	conn, err := net.Dial("tcp", c.cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.cfg.ServerAddr, err)
	}
	c.conn = conn
	defer func() { _ = conn.Close() }()

	c.printf("Welcome to Wordle!\n")

	loggedIn, err := c.authMenu()
	if err != nil || !loggedIn {
		return err
	}

	// The subscriber lives for the rest of the authenticated session.
	sub, err := broadcast.NewSubscriber(c.cfg.MulticastGroup, c.cfg.MulticastPort, c.board, c.logger)
	if err != nil {
		c.printf("Shared results unavailable: %v\n", err)
	}

	subCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	if sub != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub.Run(subCtx)
		}()
	}
	// Cancellation must reach the subscriber before we wait on it.
	defer wg.Wait()
	defer cancel()

	return c.sessionMenu()
}

// authMenu loops until the user registers, logs in or quits.
func (c *Client) authMenu() (bool, error) {
	for {
		c.printf("\nEnter:\n1 - Register\n2 - Login\n3 - Quit\n> ")
		choice, ok := c.readLine()
		if !ok {
			return false, nil
		}

		switch choice {
		case "1", "2":
			code := protocol.CodeLogin
			if choice == "1" {
				code = protocol.CodeRegister
			}
			done, err := c.authenticate(code)
			if err != nil {
				return false, err
			}
			if done {
				return true, nil
			}
		case "3":
			return false, c.request(protocol.CodeQuit)
		default:
			c.printf("Invalid choice\n")
		}
	}
}

// authenticate prompts for credentials until the server accepts them or
// the user backs out by entering "exit" as the username.
func (c *Client) authenticate(code int) (bool, error) {
	c.printf("Username and password must be 4-20 alphanumeric characters (enter EXIT to go back)\n")

	for {
		c.printf("\nUsername: ")
		username, ok := c.readLine()
		if !ok {
			return false, nil
		}
		if strings.EqualFold(username, "exit") {
			return false, nil
		}

		c.printf("Password: ")
		password, ok := c.readLine()
		if !ok {
			return false, nil
		}

		if !credentialPattern.MatchString(username) || !credentialPattern.MatchString(password) {
			c.printf("\nUsername / password not valid\n")
			continue
		}

		if err := c.request(code, username, password); err != nil {
			return false, err
		}
		resp, err := c.response()
		if err != nil {
			return false, err
		}

		c.printf("\n%s\n", resp.Message)
		if resp.Code == protocol.CodeOK {
			return true, nil
		}
	}
}

// sessionMenu is the authenticated main loop.
func (c *Client) sessionMenu() error {
	for {
		c.printf("\nEnter:\n1 - Play\n2 - Profile statistics\n3 - Shared results board\n4 - Logout\n> ")
		choice, ok := c.readLine()
		if !ok {
			return c.request(protocol.CodeQuit)
		}

		switch choice {
		case "1":
			if err := c.play(); err != nil {
				return err
			}
		case "2":
			if err := c.stats(); err != nil {
				return err
			}
		case "3":
			c.showBoard()
		case "4":
			return c.request(protocol.CodeQuit)
		default:
			c.printf("Invalid choice\n")
		}
	}
}

// play runs the guess loop for one game.
func (c *Client) play() error {
	if err := c.request(protocol.CodePlay); err != nil {
		return err
	}
	resp, err := c.response()
	if err != nil {
		return err
	}
	c.printf("\n%s\n", resp.Message)
	if resp.Code == protocol.CodeError {
		// Already played this rotation.
		return nil
	}

	for {
		c.printf("\nEnter word (EXIT to give up): ")
		guess, ok := c.readLine()
		if !ok {
			guess = protocol.AbandonToken
		}
		guess = strings.ToLower(guess)

		if guess == protocol.AbandonToken {
			return protocol.WriteFrame(c.conn, guess)
		}
		if !guessPattern.MatchString(guess) {
			c.printf("Invalid word\n")
			continue
		}

		if err := protocol.WriteFrame(c.conn, guess); err != nil {
			return err
		}
		resp, err := c.response()
		if err != nil {
			return err
		}

		c.printf("\n%s\n", resp.Message)
		if resp.Code == protocol.CodeGameOver {
			break
		}
	}

	return c.shareChoice()
}

// shareChoice asks whether to multicast the finished game's transcript.
func (c *Client) shareChoice() error {
	for {
		c.printf("\nEnter:\n1 - Share result\n2 - Back to menu\n> ")
		choice, ok := c.readLine()
		if !ok {
			choice = "2"
		}

		switch choice {
		case "1":
			if err := c.request(protocol.CodeShare); err != nil {
				return err
			}
			resp, err := c.response()
			if err != nil {
				return err
			}
			c.printf("%s\n", resp.Message)
			return nil
		case "2":
			// Any non-share frame declines; the server accepts it silently.
			return c.request(protocol.CodeOK)
		default:
			c.printf("Invalid choice\n")
		}
	}
}

func (c *Client) stats() error {
	if err := c.request(protocol.CodeStats); err != nil {
		return err
	}
	resp, err := c.response()
	if err != nil {
		return err
	}
	c.printf("\n%s\n", resp.Message)
	return nil
}

func (c *Client) showBoard() {
	entries := c.board.Entries()
	if len(entries) == 0 {
		c.printf("\nNo shared results yet\n")
		return
	}
	c.printf("\n")
	for _, entry := range entries {
		c.printf("%s\n", entry)
	}
}

func (c *Client) request(code int, args ...string) error {
	return protocol.WriteFrame(c.conn, protocol.FormatRequest(code, args...))
}

func (c *Client) response() (protocol.Response, error) {
	frame, err := protocol.ReadFrame(c.conn)
	if err != nil {
		return protocol.Response{}, err
	}
	return protocol.ParseResponse(frame)
}

func (c *Client) readLine() (string, bool) {
	if !c.stdin.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.stdin.Text()), true
}

func (c *Client) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
