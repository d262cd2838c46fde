// Package scoring computes per-character feedback for a guess against a
// target word using the classic two-pass algorithm, which handles repeated
// letters correctly: each target character is credited to at most one guess
// position.
package scoring

// Marks making up a feedback string.
const (
	MarkExact   = '+' // correct character in the correct position
	MarkPresent = '?' // character present elsewhere in the target
	MarkAbsent  = 'x' // character not present (or occurrences exhausted)
)

// Feedback is the per-character classification of one guess, the same
// length as the guess, over the alphabet {'+', '?', 'x'}.
type Feedback string

// Win reports whether every position is exact.
func (f Feedback) Win() bool {
	for i := 0; i < len(f); i++ {
		if f[i] != MarkExact {
			return false
		}
	}
	return len(f) > 0
}

// Score computes the feedback for guess against target. Both must be
// equal-length lowercase strings; the caller validates before scoring.
//
// Pass 1 marks exact matches and counts the remaining target characters.
// Pass 2 resolves the rest: a character with remaining count is present
// but misplaced and consumes one occurrence, otherwise it is absent.
func Score(guess, target string) Feedback {
	n := len(guess)
	result := make([]byte, n)

	remaining := make(map[byte]int, n)
	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			result[i] = MarkExact
		} else {
			remaining[target[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if result[i] == MarkExact {
			continue
		}
		if remaining[guess[i]] > 0 {
			result[i] = MarkPresent
			remaining[guess[i]]--
		} else {
			result[i] = MarkAbsent
		}
	}

	return Feedback(result)
}
