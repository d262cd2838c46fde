// Package word owns the single current secret word: atomic reads, atomic
// rotation to a previously unused word, and the recurring rotation timer.
package word

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/acarlini/wordled/internal/dependencies/random"
	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/services/dictionary"
)

// Manager holds the current SecretWord and the monotonically growing set
// of previously used words. All access goes through its methods; callers
// never hold a live reference into the state.
type Manager struct {
	dict   *dictionary.Dictionary
	random random.Random
	period time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	current model.SecretWord
	used    map[string]struct{}
}

// NewManager creates a Manager with no current word. Call Restore or
// Rotate before serving reads.
func NewManager(dict *dictionary.Dictionary, rnd random.Random, period time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		dict:   dict,
		random: rnd,
		period: period,
		logger: logger,
		used:   make(map[string]struct{}),
	}
}

// Restore installs the word and used set recovered from a snapshot.
func (m *Manager) Restore(word model.SecretWord, usedWords []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = word
	m.used = make(map[string]struct{}, len(usedWords))
	for _, w := range usedWords {
		m.used[w] = struct{}{}
	}
}

// Current returns a snapshot of the current word. The copy stays
// consistent for the caller even if a rotation happens concurrently.
func (m *Manager) Current() model.SecretWord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Rotate replaces the current word with a randomly drawn, previously
// unused one, advancing the sequence id and setting the expiry to
// now + period. It fails with model.ErrDictionaryExhausted once every
// dictionary word has been used.
func (m *Manager) Rotate(now time.Time) (model.SecretWord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.used) >= m.dict.Len() {
		return model.SecretWord{}, model.ErrDictionaryExhausted
	}

	var text string
	for {
		text = m.dict.WordAt(m.random.Intn(m.dict.Len()))
		if _, done := m.used[text]; !done {
			break
		}
	}

	m.used[text] = struct{}{}
	m.current = model.SecretWord{
		Text:      text,
		Sequence:  m.current.Sequence + 1,
		ExpiresAt: now.Add(m.period),
	}

	m.logger.Info("word rotated",
		slog.Int64("sequence", m.current.Sequence),
		slog.Time("expires_at", m.current.ExpiresAt))

	return m.current, nil
}

// UsedWords returns the used set as a sorted slice for persistence.
func (m *Manager) UsedWords() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	words := lo.Keys(m.used)
	sort.Strings(words)
	return words
}
