package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"
)

// pollInterval is the receive deadline, and therefore the longest the
// subscriber can take to notice a cancelled context.
const pollInterval = 2 * time.Second

// Subscriber joins the multicast group and appends every received
// transcript to a Board. It runs for the duration of one authenticated
// client session.
type Subscriber struct {
	conn   *net.UDPConn
	board  *Board
	logger *slog.Logger
}

// NewSubscriber joins the multicast group.
func NewSubscriber(group string, port int, board *Board, logger *slog.Logger) (*Subscriber, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", group, port))
	if err != nil {
		return nil, fmt.Errorf("resolving multicast group: %w", err)
	}

	conn, err := net.ListenMulticastUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("joining multicast group: %w", err)
	}

	return &Subscriber{conn: conn, board: board, logger: logger}, nil
}

// Run receives datagrams until ctx is cancelled, polling with a bounded
// read deadline so cancellation is observed between receives. The socket
// is released exactly once, whichever exit path is taken.
func (s *Subscriber) Run(ctx context.Context) {
	defer func() { _ = s.conn.Close() }()

	buf := make([]byte, MaxPayload)
	for {
		if ctx.Err() != nil {
			return
		}

		_ = s.conn.SetReadDeadline(time.Now().Add(pollInterval))
		n, _, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if ctx.Err() == nil {
				s.logger.Warn("multicast receive failed", slog.String("error", err.Error()))
			}
			return
		}

		s.board.Add(string(buf[:n]))
	}
}
