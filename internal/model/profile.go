package model

import (
	"fmt"
	"strings"
	"time"
)

// UserProfile holds one registered user's credentials and play statistics.
// The username is the immutable unique key. Profiles are only ever mutated
// through the user directory, which serializes access per entry.
type UserProfile struct {
	Username     string
	PasswordHash string

	GamesPlayed       int
	GamesWon          int
	CurrentWinStreak  int
	BestWinStreak     int
	AttemptsHistogram [MaxAttempts]int

	// LastPlayedExpiry is the expiry of the last word this user started.
	// Equality with the current word's expiry means "already played".
	LastPlayedExpiry time.Time

	// LoggedIn is true for at most one live session at a time.
	LoggedIn bool
}

// Summary formats the profile's statistics as the multi-line text block
// sent in response to a stats request.
func (p *UserProfile) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "User %s:\n", p.Username)
	fmt.Fprintf(&b, "- Games played: %d\n", p.GamesPlayed)
	fmt.Fprintf(&b, "- Games won: %d\n", p.GamesWon)
	fmt.Fprintf(&b, "- Current win streak: %d\n", p.CurrentWinStreak)
	fmt.Fprintf(&b, "- Best win streak: %d\n", p.BestWinStreak)
	b.WriteString("- Wins by attempt:")
	for i, n := range p.AttemptsHistogram {
		fmt.Fprintf(&b, "\n\tAttempt %d: %d", i+1, n)
	}
	return b.String()
}
