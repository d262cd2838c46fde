package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

var testWords = []string{
	"applesauce",
	"basketball",
	"blackboard",
	"chessboard",
	"dishwasher",
	"programmer",
	"watermelon",
}

type DictionarySuite struct {
	suite.Suite
}

func TestDictionarySuite(t *testing.T) {
	suite.Run(t, new(DictionarySuite))
}

func (s *DictionarySuite) writeList(words []string) string {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	var buf []byte
	for _, w := range words {
		buf = append(buf, w...)
		buf = append(buf, '\n')
	}
	s.Require().NoError(os.WriteFile(path, buf, 0o644))
	return path
}

func (s *DictionarySuite) TestLoad() {
	dict, err := Load(s.writeList(testWords))
	s.Require().NoError(err)
	s.Equal(len(testWords), dict.Len())
	for i, w := range testWords {
		s.Equal(w, dict.WordAt(i))
	}
}

func (s *DictionarySuite) TestContains() {
	dict, err := Load(s.writeList(testWords))
	s.Require().NoError(err)

	for _, w := range testWords {
		s.True(dict.Contains(w), "expected %q in dictionary", w)
	}
	for _, w := range []string{"aaaaaaaaaa", "basketbalk", "zzzzzzzzzz", ""} {
		s.False(dict.Contains(w), "did not expect %q in dictionary", w)
	}
}

func (s *DictionarySuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "nope.txt"))
	s.Error(err)
}

func (s *DictionarySuite) TestLoadWrongRecordWidth() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("short\n"), 0o644))

	_, err := Load(path)
	s.ErrorContains(err, "record width")
}

func (s *DictionarySuite) TestLoadMisalignedNewlines() {
	// Right total size, but the newline falls mid-record.
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("short\nshortbasketball\n"), 0o644))

	_, err := Load(path)
	s.ErrorContains(err, "newline")
}

func (s *DictionarySuite) TestLoadUnsorted() {
	_, err := Load(s.writeList([]string{"watermelon", "applesauce"}))
	s.ErrorContains(err, "not sorted")
}

func (s *DictionarySuite) TestLoadEmpty() {
	dict, err := Load(s.writeList(nil))
	s.Require().NoError(err)
	s.Equal(0, dict.Len())
}
