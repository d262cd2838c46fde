package model

import "time"

// WordLength is the fixed byte length of every playable word.
const WordLength = 10

// MaxAttempts is the number of guesses a player gets per word.
const MaxAttempts = 12

// SecretWord is the word currently in play. At most one SecretWord is
// current at any instant; Sequence strictly increases across rotations.
type SecretWord struct {
	Text      string
	Sequence  int64
	ExpiresAt time.Time
}

// Expired reports whether the word's rotation window has passed.
func (w SecretWord) Expired(now time.Time) bool {
	return !now.Before(w.ExpiresAt)
}
