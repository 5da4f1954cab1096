package miniaudio

import "testing"

func TestPlaybackBufferReadPadsWithSilence(t *testing.T) {
	buffer := playbackBuffer{}
	buffer.write([]byte{1, 2, 3})

	out := []byte{9, 9, 9, 9, 9}
	if n := buffer.read(out); n != 3 {
		t.Fatalf("expected 3 bytes consumed, got %d", n)
	}
	want := []byte{1, 2, 3, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}
}

func TestPlaybackBufferMarkFiresAfterQueuedAudioPlayed(t *testing.T) {
	buffer := playbackBuffer{}
	buffer.write([]byte{1, 2, 3, 4})

	fired := 0
	buffer.mark(func() { fired++ })

	buffer.read(make([]byte, 2))
	if fired != 0 {
		t.Fatalf("expected mark to stay pending with audio left, got %d calls", fired)
	}

	buffer.read(make([]byte, 2))
	if fired != 1 {
		t.Fatalf("expected mark to fire once after audio played, got %d calls", fired)
	}

	buffer.read(make([]byte, 2))
	if fired != 1 {
		t.Fatalf("expected mark to fire only once, got %d calls", fired)
	}
}

func TestPlaybackBufferMarkOnEmptyBufferFiresImmediately(t *testing.T) {
	buffer := playbackBuffer{}

	fired := false
	buffer.mark(func() { fired = true })

	if !fired {
		t.Fatalf("expected mark on empty buffer to fire immediately")
	}
}

func TestPlaybackBufferClearReleasesPendingMarks(t *testing.T) {
	buffer := playbackBuffer{}
	buffer.write([]byte{1, 2, 3, 4})

	fired := 0
	buffer.mark(func() { fired++ })
	buffer.clear()

	if fired != 1 {
		t.Fatalf("expected clear to release pending mark, got %d calls", fired)
	}
	if n := buffer.read(make([]byte, 4)); n != 0 {
		t.Fatalf("expected cleared buffer to be empty, got %d bytes", n)
	}
}
