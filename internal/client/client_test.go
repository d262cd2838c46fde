package client

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/acarlini/wordled/internal/config"
	"github.com/acarlini/wordled/internal/protocol"
	"github.com/acarlini/wordled/internal/testutil"
)

// step is one exchange of the scripted server: the frame it expects from
// the client and the frame it replies with (empty for no reply).
type step struct {
	expect string
	reply  string
}

type ClientSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

// runScript starts a one-connection server speaking the given script,
// drives the client with stdin and returns the client's terminal output.
func (s *ClientSuite) runScript(stdin string, script []step) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	defer func() { _ = ln.Close() }()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- func() error {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			for i, st := range script {
				frame, err := readTestFrame(conn)
				if err != nil {
					return fmt.Errorf("step %d: %w", i, err)
				}
				if frame != st.expect {
					return fmt.Errorf("step %d: got frame %q, want %q", i, frame, st.expect)
				}
				if st.reply != "" {
					if err := writeTestFrame(conn, st.reply); err != nil {
						return fmt.Errorf("step %d: %w", i, err)
					}
				}
			}
			return nil
		}()
	}()

	cfg := config.Default()
	cfg.ServerAddr = ln.Addr().String()
	cfg.MulticastPort = 0

	var out bytes.Buffer
	c := New(cfg, strings.NewReader(stdin), &out, testutil.NopLogger())
	s.Require().NoError(c.Run(context.Background()))
	s.Require().NoError(<-serverErr)
	return out.String()
}

func (s *ClientSuite) TestRegisterPlayWinShare() {
	stdin := strings.Join([]string{
		"1", // register
		"alice1",
		"secret99",
		"1", // play
		"blackboard",
		"1", // share the result
		"4", // logout
	}, "\n") + "\n"

	out := s.runScript(stdin, []step{
		{expect: "10;alice1;secret99", reply: "200;registered successfully"},
		{expect: "30;", reply: "200;Word 1: 12 attempts to guess"},
		{expect: "blackboard", reply: "201;Correct! Guessed at attempt 1"},
		{expect: "60;", reply: "200;result shared"},
		{expect: "50;"},
	})

	s.Contains(out, "registered successfully")
	s.Contains(out, "Word 1: 12 attempts to guess")
	s.Contains(out, "Correct! Guessed at attempt 1")
	s.Contains(out, "result shared")
}

func (s *ClientSuite) TestLoginPlayDecline() {
	stdin := strings.Join([]string{
		"2", // login
		"alice1",
		"secret99",
		"1",          // play
		"aa",         // rejected locally, never sent
		"BLACKBOARD", // lowercased before sending
		"2",          // decline the share
		"4",          // logout
	}, "\n") + "\n"

	out := s.runScript(stdin, []step{
		{expect: "20;alice1;secret99", reply: "200;logged in successfully"},
		{expect: "30;", reply: "200;Word 1: 12 attempts to guess"},
		{expect: "blackboard", reply: "201;Correct! Guessed at attempt 1"},
		{expect: "200;"},
		{expect: "50;"},
	})

	s.Contains(out, "Invalid word")
	s.Contains(out, "logged in successfully")
}

func (s *ClientSuite) TestInvalidCredentialsRetriedLocally() {
	stdin := strings.Join([]string{
		"2",  // login
		"ab", // too short, never sent
		"secret99",
		"alice1",
		"secret99",
		"4", // logout
	}, "\n") + "\n"

	out := s.runScript(stdin, []step{
		{expect: "20;alice1;secret99", reply: "200;logged in successfully"},
		{expect: "50;"},
	})

	s.Contains(out, "Username / password not valid")
}

func (s *ClientSuite) TestQuitFromAuthMenu() {
	stdin := "3\n"
	out := s.runScript(stdin, []step{
		{expect: "50;"},
	})
	s.Contains(out, "Welcome to Wordle!")
}

func (s *ClientSuite) TestAbandonGame() {
	stdin := strings.Join([]string{
		"2", // login
		"alice1",
		"secret99",
		"1",    // play
		"EXIT", // give up mid-game
		"4",    // logout
	}, "\n") + "\n"

	s.runScript(stdin, []step{
		{expect: "20;alice1;secret99", reply: "200;logged in successfully"},
		{expect: "30;", reply: "200;Word 1: 12 attempts to guess"},
		{expect: "exit"},
		{expect: "50;"},
	})
}

func readTestFrame(conn net.Conn) (string, error) {
	return protocol.ReadFrame(conn)
}

func writeTestFrame(conn net.Conn, payload string) error {
	return protocol.WriteFrame(conn, payload)
}
