// Package protocol implements the wire format spoken between client and
// server: length-prefixed UTF-8 text frames carrying delimiter-separated
// requests and responses.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize bounds a single frame's payload. The length prefix is a
// 16-bit big-endian integer, so this is also the encoding limit.
const MaxFrameSize = 1<<16 - 1

// WriteFrame writes one length-prefixed text frame.
func WriteFrame(w io.Writer, payload string) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("frame payload too large: %d bytes", len(payload))
	}
	buf := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(buf[:2], uint16(len(payload)))
	copy(buf[2:], payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed text frame.
func ReadFrame(r io.Reader) (string, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return "", fmt.Errorf("reading frame header: %w", err)
	}
	n := binary.BigEndian.Uint16(header[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", fmt.Errorf("reading frame payload: %w", err)
	}
	return string(payload), nil
}
