// Package dictionary loads the fixed-width word list and answers
// membership queries. The file format is concatenated records of exactly
// model.WordLength bytes plus a newline, sorted ascending; that layout is
// what makes binary search and random draw-by-index possible.
package dictionary

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/acarlini/wordled/internal/model"
)

// recordWidth is the on-disk size of one word record: the word itself
// plus the line terminator.
const recordWidth = model.WordLength + 1

// Dictionary is an immutable, sorted collection of fixed-length words.
// It is safe for unsynchronized concurrent reads after Load returns.
type Dictionary struct {
	words []string
}

// Load reads the word list from path. It fails if the file is unreadable,
// if any record has the wrong width, or if the records are not sorted.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}

	if len(data)%recordWidth != 0 {
		return nil, fmt.Errorf("dictionary %s: size %d is not a multiple of record width %d",
			path, len(data), recordWidth)
	}

	count := len(data) / recordWidth
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		record := data[i*recordWidth : (i+1)*recordWidth]
		if record[recordWidth-1] != '\n' {
			return nil, fmt.Errorf("dictionary %s: record %d is not newline-terminated", path, i)
		}
		word := string(record[:recordWidth-1])
		if strings.ContainsRune(word, '\n') {
			return nil, fmt.Errorf("dictionary %s: record %d has the wrong width", path, i)
		}
		words = append(words, word)
	}

	if !sort.StringsAreSorted(words) {
		return nil, fmt.Errorf("dictionary %s: words are not sorted", path)
	}

	return &Dictionary{words: words}, nil
}

// Contains reports whether word is in the dictionary, by binary search.
func (d *Dictionary) Contains(word string) bool {
	i := sort.SearchStrings(d.words, word)
	return i < len(d.words) && d.words[i] == word
}

// WordAt returns the word at index i.
func (d *Dictionary) WordAt(i int) string {
	return d.words[i]
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}
