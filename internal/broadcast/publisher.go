// Package broadcast implements best-effort sharing of finished-game
// transcripts over a UDP multicast group: the server publishes one
// datagram per shared result, and each client session runs a subscriber
// that accumulates received transcripts into a session-local board.
package broadcast

import (
	"fmt"
	"log/slog"
	"net"
)

// MaxPayload bounds a transcript datagram. Receivers allocate this much;
// anything longer is truncated before sending.
const MaxPayload = 512

// Publisher sends transcripts to the multicast group. Delivery is
// best-effort: no acknowledgment, no retry.
type Publisher struct {
	group  *net.UDPAddr
	logger *slog.Logger
}

// NewPublisher resolves the multicast group address.
func NewPublisher(group string, port int, logger *slog.Logger) (*Publisher, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", group, port))
	if err != nil {
		return nil, fmt.Errorf("resolving multicast group: %w", err)
	}
	return &Publisher{group: addr, logger: logger}, nil
}

// Publish sends one transcript as a single datagram.
func (p *Publisher) Publish(transcript string) error {
	payload := []byte(transcript)
	if len(payload) > MaxPayload {
		payload = payload[:MaxPayload]
	}

	conn, err := net.DialUDP("udp", nil, p.group)
	if err != nil {
		return fmt.Errorf("opening multicast send socket: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("sending transcript: %w", err)
	}

	p.logger.Debug("transcript published", slog.Int("bytes", len(payload)))
	return nil
}
