package portaudio

import "testing"

func TestSplitFramesKeepsIncompleteTail(t *testing.T) {
	chunks, rest := splitFrames([]byte{1, 2, 3, 4, 5}, 2)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(rest) != 1 || rest[0] != 5 {
		t.Fatalf("expected tail [5], got %v", rest)
	}
}

func TestSplitFramesExactMultiple(t *testing.T) {
	chunks, rest := splitFrames([]byte{1, 2, 3, 4}, 2)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(rest) != 0 {
		t.Fatalf("expected empty tail, got %v", rest)
	}
}

func TestSplitFramesInvalidSize(t *testing.T) {
	chunks, rest := splitFrames([]byte{1, 2}, 0)

	if chunks != nil {
		t.Fatalf("expected no chunks for invalid size, got %v", chunks)
	}
	if len(rest) != 2 {
		t.Fatalf("expected input returned as tail, got %v", rest)
	}
}
