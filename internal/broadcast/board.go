package broadcast

import "sync"

// Board is the thread-safe ordered log of transcripts received during one
// client session. The subscriber appends from its background goroutine;
// the foreground menu reads.
type Board struct {
	mu      sync.Mutex
	entries []string
}

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{}
}

// Add appends one received transcript.
func (b *Board) Add(entry string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry)
}

// Entries returns a copy of the log, oldest first.
func (b *Board) Entries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of received transcripts.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
