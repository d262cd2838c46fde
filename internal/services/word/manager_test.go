package word

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/acarlini/wordled/internal/dependencies/mocks"
	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/services/dictionary"
	"github.com/acarlini/wordled/internal/testutil"
)

var testWords = []string{
	"applesauce",
	"basketball",
	"blackboard",
	"chessboard",
}

type ManagerSuite struct {
	suite.Suite

	dict   *dictionary.Dictionary
	random *mocks.MockRandom
	now    time.Time
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.dict = loadTestDictionary(s.T(), testWords)
	s.random = mocks.NewMockRandom()
	s.now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func loadTestDictionary(t *testing.T, words []string) *dictionary.Dictionary {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	var buf []byte
	for _, w := range words {
		buf = append(buf, w...)
		buf = append(buf, '\n')
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	dict, err := dictionary.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return dict
}

func (s *ManagerSuite) newManager(period time.Duration) *Manager {
	return NewManager(s.dict, s.random, period, testutil.NopLogger())
}

func (s *ManagerSuite) TestRotateDrawsAndStamps() {
	m := s.newManager(10 * time.Minute)
	s.random.QueueIntn(2)

	word, err := m.Rotate(s.now)
	s.Require().NoError(err)
	s.Equal("blackboard", word.Text)
	s.Equal(int64(1), word.Sequence)
	s.Equal(s.now.Add(10*time.Minute), word.ExpiresAt)
	s.Equal(word, m.Current())
}

func (s *ManagerSuite) TestRotateSkipsUsedWords() {
	m := s.newManager(time.Minute)
	// First draw takes index 1; second draws index 1 again, then 3.
	s.random.QueueIntn(1, 1, 3)

	first, err := m.Rotate(s.now)
	s.Require().NoError(err)
	s.Equal("basketball", first.Text)

	second, err := m.Rotate(s.now)
	s.Require().NoError(err)
	s.Equal("chessboard", second.Text)
}

func (s *ManagerSuite) TestSequenceIsMonotonic() {
	m := s.newManager(time.Minute)
	s.random.QueueIntn(0, 1, 2, 3)

	for want := int64(1); want <= 4; want++ {
		word, err := m.Rotate(s.now)
		s.Require().NoError(err)
		s.Equal(want, word.Sequence)
	}
}

func (s *ManagerSuite) TestRotateExhaustsDictionary() {
	m := s.newManager(time.Minute)
	s.random.QueueIntn(0, 1, 2, 3)

	for i := 0; i < len(testWords); i++ {
		_, err := m.Rotate(s.now)
		s.Require().NoError(err)
	}

	_, err := m.Rotate(s.now)
	s.ErrorIs(err, model.ErrDictionaryExhausted)
}

func (s *ManagerSuite) TestRestoreContinuesSequence() {
	m := s.newManager(time.Minute)
	m.Restore(model.SecretWord{
		Text:      "basketball",
		Sequence:  7,
		ExpiresAt: s.now.Add(30 * time.Second),
	}, []string{"applesauce", "basketball"})

	s.Equal(int64(7), m.Current().Sequence)

	// Indexes 0 and 1 are restored as used, so the draw lands on 2.
	s.random.QueueIntn(0, 1, 2)
	word, err := m.Rotate(s.now)
	s.Require().NoError(err)
	s.Equal("blackboard", word.Text)
	s.Equal(int64(8), word.Sequence)
}

func (s *ManagerSuite) TestUsedWordsSorted() {
	m := s.newManager(time.Minute)
	s.random.QueueIntn(3, 0)

	_, err := m.Rotate(s.now)
	s.Require().NoError(err)
	_, err = m.Rotate(s.now)
	s.Require().NoError(err)

	s.Equal([]string{"applesauce", "chessboard"}, m.UsedWords())
}

func (s *ManagerSuite) TestCurrentIsACopy() {
	m := s.newManager(time.Minute)
	s.random.QueueIntn(0, 1)

	_, err := m.Rotate(s.now)
	s.Require().NoError(err)
	before := m.Current()

	_, err = m.Rotate(s.now.Add(time.Minute))
	s.Require().NoError(err)

	s.Equal("applesauce", before.Text)
	s.Equal(int64(1), before.Sequence)
}

type RotatorSuite struct {
	suite.Suite
}

func TestRotatorSuite(t *testing.T) {
	suite.Run(t, new(RotatorSuite))
}

func (s *RotatorSuite) TestRotatesOnExpiryAndStops() {
	dict := loadTestDictionary(s.T(), testWords)
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0, 1, 2, 3)
	m := NewManager(dict, rnd, 20*time.Millisecond, testutil.NopLogger())

	// An already-expired word makes the first firing immediate.
	now := time.Now()
	m.Restore(model.SecretWord{
		Text:      "applesauce",
		Sequence:  1,
		ExpiresAt: now.Add(-time.Second),
	}, []string{"applesauce"})

	r := NewRotator(m, mocks.NewMockClock(now), testutil.NopLogger())
	r.Start()

	s.Eventually(func() bool {
		return m.Current().Sequence >= 2
	}, time.Second, 5*time.Millisecond)

	r.Stop()
	after := m.Current().Sequence

	// The loop is fully stopped, so the sequence no longer moves.
	time.Sleep(50 * time.Millisecond)
	s.Equal(after, m.Current().Sequence)
}

func (s *RotatorSuite) TestReportsExhaustionAsFatal() {
	dict := loadTestDictionary(s.T(), []string{"applesauce"})
	rnd := mocks.NewMockRandom()
	m := NewManager(dict, rnd, 10*time.Millisecond, testutil.NopLogger())

	now := time.Now()
	m.Restore(model.SecretWord{
		Text:      "applesauce",
		Sequence:  1,
		ExpiresAt: now.Add(-time.Second),
	}, []string{"applesauce"})

	r := NewRotator(m, mocks.NewMockClock(now), testutil.NopLogger())
	r.Start()

	select {
	case err := <-r.Failed():
		s.ErrorIs(err, model.ErrDictionaryExhausted)
	case <-time.After(time.Second):
		s.Fail("expected a rotation failure")
	}
}
