// Package directory is the concurrent username -> profile mapping:
// registration, authentication, the single-active-session rule, and every
// per-profile statistics mutation. One lock serializes observe-then-mutate
// sequences on any profile, so operations on a single user are linearized.
package directory

import (
	"log/slog"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/acarlini/wordled/internal/model"
)

// credentialPattern constrains usernames and passwords to 4-20
// alphanumeric characters.
var credentialPattern = regexp.MustCompile(`^[A-Za-z0-9]{4,20}$`)

// Directory maps usernames to profiles, shared by every session handler.
type Directory struct {
	logger *slog.Logger

	mu    sync.Mutex
	users map[string]*model.UserProfile
}

// New creates an empty Directory.
func New(logger *slog.Logger) *Directory {
	return &Directory{
		logger: logger,
		users:  make(map[string]*model.UserProfile),
	}
}

// Restore installs profiles recovered from a snapshot. Every profile
// starts logged out: the flag is session state, never durable state.
func (d *Directory) Restore(records []model.UserRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users = make(map[string]*model.UserProfile, len(records))
	for _, r := range records {
		d.users[r.Username] = r.ToProfile()
	}
}

// Register creates a new profile and marks it logged in. Usernames are
// permanent: a duplicate always fails, whether or not its owner is
// currently connected.
func (d *Directory) Register(username, password string) error {
	if !credentialPattern.MatchString(username) || !credentialPattern.MatchString(password) {
		return model.ErrInvalidCredential
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[username]; exists {
		return model.ErrUsernameTaken
	}

	d.users[username] = &model.UserProfile{
		Username:     username,
		PasswordHash: HashPassword(password),
		LoggedIn:     true,
	}

	d.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Login authenticates a user and marks the profile logged in. Only the
// password's digest is ever compared, by exact equality of the fixed-width
// hex strings.
func (d *Directory) Login(username, password string) error {
	if !credentialPattern.MatchString(username) || !credentialPattern.MatchString(password) {
		return model.ErrInvalidCredential
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	profile, exists := d.users[username]
	if !exists {
		return model.ErrUnknownUser
	}
	if profile.LoggedIn {
		return model.ErrAlreadyLoggedIn
	}
	if HashPassword(password) != profile.PasswordHash {
		return model.ErrWrongPassword
	}

	profile.LoggedIn = true
	return nil
}

// Logout clears the logged-in flag. Idempotent: called on explicit quit
// and on every abnormal disconnect.
func (d *Directory) Logout(username string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if profile, exists := d.users[username]; exists {
		profile.LoggedIn = false
	}
}

// StartGame records that the user is playing the word expiring at
// wordExpiry. It fails with model.ErrAlreadyPlayed if the user already
// started this rotation's word. On success it increments the games-played
// counter (once per game, up front) and zeroes the win streak so that an
// abandoned or disconnected game counts as a loss; the prior streak is
// returned for RecordWin to restore and extend on a win.
func (d *Directory) StartGame(username string, wordExpiry time.Time) (priorStreak int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	profile, exists := d.users[username]
	if !exists {
		return 0, model.ErrUnknownUser
	}
	if profile.LastPlayedExpiry.Equal(wordExpiry) {
		return 0, model.ErrAlreadyPlayed
	}

	profile.GamesPlayed++
	profile.LastPlayedExpiry = wordExpiry
	priorStreak = profile.CurrentWinStreak
	profile.CurrentWinStreak = 0
	return priorStreak, nil
}

// RecordWin records a win at the given attempt number (1-based),
// restoring and extending the streak banked by StartGame.
func (d *Directory) RecordWin(username string, attempt, priorStreak int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	profile, exists := d.users[username]
	if !exists {
		return
	}

	profile.GamesWon++
	profile.CurrentWinStreak = priorStreak + 1
	if profile.CurrentWinStreak > profile.BestWinStreak {
		profile.BestWinStreak = profile.CurrentWinStreak
	}
	if attempt >= 1 && attempt <= model.MaxAttempts {
		profile.AttemptsHistogram[attempt-1]++
	}
}

// Summary returns the formatted statistics block for a user.
func (d *Directory) Summary(username string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	profile, exists := d.users[username]
	if !exists {
		return "", model.ErrUnknownUser
	}
	return profile.Summary(), nil
}

// Count returns the number of registered users.
func (d *Directory) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}

// Records returns every profile in persisted form, sorted by username so
// snapshots are deterministic.
func (d *Directory) Records() []model.UserRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	usernames := lo.Keys(d.users)
	sort.Strings(usernames)

	records := make([]model.UserRecord, 0, len(usernames))
	for _, name := range usernames {
		records = append(records, model.NewUserRecord(d.users[name]))
	}
	return records
}
