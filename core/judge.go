package tutor

import (
	"strings"

	"github.com/koscakluka/ema-tutor/core/speechtotext"
)

// MatchAnswer reports whether heard satisfies expected. Both are lower-cased
// and trimmed; heard matches when it equals expected or contains it. An empty
// expected answer accepts any non-empty utterance.
func MatchAnswer(heard, expected string) bool {
	heard = speechtotext.Normalize(heard)
	expected = speechtotext.Normalize(expected)

	if heard == "" {
		return false
	}
	if expected == "" {
		return true
	}

	return heard == expected || strings.Contains(heard, expected)
}
