package model

import "time"

// Snapshot is the durable encoding of the full server state: the current
// secret word, the set of previously used words and every user profile.
// It is written exactly once at shutdown and read exactly once at startup,
// and must round-trip byte-for-byte through a save/restore cycle.
type Snapshot struct {
	Word      WordRecord   `json:"word"`
	UsedWords []string     `json:"usedWords"`
	Users     []UserRecord `json:"users"`
}

// WordRecord is the persisted form of a SecretWord. Timestamps are stored
// as Unix milliseconds so the encoding is stable across time zones.
type WordRecord struct {
	Text            string `json:"text"`
	Sequence        int64  `json:"id"`
	ExpiresAtMillis int64  `json:"expiresAtMillis"`
}

// UserRecord is the persisted form of a UserProfile. The logged-in flag is
// deliberately absent: it is session state, not durable state.
type UserRecord struct {
	Username               string           `json:"username"`
	PasswordHash           string           `json:"passwordHash"`
	GamesPlayed            int              `json:"gamesPlayed"`
	GamesWon               int              `json:"gamesWon"`
	CurrentWinStreak       int              `json:"currentWinStreak"`
	BestWinStreak          int              `json:"bestWinStreak"`
	AttemptsHistogram      [MaxAttempts]int `json:"attemptsHistogram"`
	LastPlayedExpiryMillis int64            `json:"lastPlayedExpiryMillis"`
}

// ToWord converts the persisted record back into a SecretWord.
func (r WordRecord) ToWord() SecretWord {
	return SecretWord{
		Text:      r.Text,
		Sequence:  r.Sequence,
		ExpiresAt: time.UnixMilli(r.ExpiresAtMillis),
	}
}

// NewWordRecord converts a SecretWord into its persisted form.
func NewWordRecord(w SecretWord) WordRecord {
	return WordRecord{
		Text:            w.Text,
		Sequence:        w.Sequence,
		ExpiresAtMillis: w.ExpiresAt.UnixMilli(),
	}
}

// ToProfile converts the persisted record back into a UserProfile.
func (r UserRecord) ToProfile() *UserProfile {
	return &UserProfile{
		Username:          r.Username,
		PasswordHash:      r.PasswordHash,
		GamesPlayed:       r.GamesPlayed,
		GamesWon:          r.GamesWon,
		CurrentWinStreak:  r.CurrentWinStreak,
		BestWinStreak:     r.BestWinStreak,
		AttemptsHistogram: r.AttemptsHistogram,
		LastPlayedExpiry:  time.UnixMilli(r.LastPlayedExpiryMillis),
	}
}

// NewUserRecord converts a UserProfile into its persisted form.
func NewUserRecord(p *UserProfile) UserRecord {
	return UserRecord{
		Username:               p.Username,
		PasswordHash:           p.PasswordHash,
		GamesPlayed:            p.GamesPlayed,
		GamesWon:               p.GamesWon,
		CurrentWinStreak:       p.CurrentWinStreak,
		BestWinStreak:          p.BestWinStreak,
		AttemptsHistogram:      p.AttemptsHistogram,
		LastPlayedExpiryMillis: p.LastPlayedExpiry.UnixMilli(),
	}
}
