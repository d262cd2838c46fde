package model

import (
	"fmt"
	"strings"
)

// TranscriptAttempt is one scored guess within a game.
type TranscriptAttempt struct {
	Number   int
	Feedback string
}

// Transcript is the ordered per-attempt feedback for one completed game.
// It exists only for the duration of the game and is discarded after the
// optional multicast share.
type Transcript struct {
	Username string
	Sequence int64
	Attempts []TranscriptAttempt
}

// Record appends one attempt's feedback to the transcript.
func (t *Transcript) Record(number int, feedback string) {
	t.Attempts = append(t.Attempts, TranscriptAttempt{Number: number, Feedback: feedback})
}

// Format renders the transcript as the text blob sent over multicast.
// The guessed letters themselves are never included, only the feedback.
func (t *Transcript) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shared by %s - Word %d:\n", t.Username, t.Sequence)
	for _, a := range t.Attempts {
		fmt.Fprintf(&b, "- Attempt %d: %s\n", a.Number, a.Feedback)
	}
	return b.String()
}
