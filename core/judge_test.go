package tutor

import "testing"

func TestMatchAnswer(t *testing.T) {
	testCases := []struct {
		name     string
		heard    string
		expected string
		match    bool
	}{
		{name: "exact", heard: "8", expected: "8", match: true},
		{name: "surrounding whitespace", heard: " 8 ", expected: "8", match: true},
		{name: "contained in sentence", heard: "the answer is 8", expected: "8", match: true},
		{name: "case insensitive", heard: "CIRCLE", expected: "circle", match: true},
		{name: "number word is not a digit", heard: "eight", expected: "8", match: false},
		{name: "wrong number", heard: "7", expected: "8", match: false},
		{name: "empty utterance", heard: "  ", expected: "8", match: false},
		{name: "open question accepts anything", heard: "blue", expected: "", match: true},
		{name: "open question rejects silence", heard: "", expected: "", match: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := MatchAnswer(testCase.heard, testCase.expected); got != testCase.match {
				t.Fatalf("expected MatchAnswer(%q, %q) to be %t, got %t", testCase.heard, testCase.expected, testCase.match, got)
			}
		})
	}
}
