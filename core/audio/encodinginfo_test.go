package audio

import (
	"testing"
	"time"
)

func TestDefaultEncodingInfoIsLinear16Mono(t *testing.T) {
	info := GetDefaultEncodingInfo()

	if info.SampleRate != DefaultSampleRate {
		t.Fatalf("expected sample rate %d, got %d", DefaultSampleRate, info.SampleRate)
	}
	if info.Format != EncodingLinear16 {
		t.Fatalf("expected format %q, got %q", EncodingLinear16, info.Format)
	}
	if got := info.FrameSize(); got != 2 {
		t.Fatalf("expected frame size 2, got %d", got)
	}
}

func TestEncodingInfoBytesForAndDurationOfAreInverse(t *testing.T) {
	info := GetDefaultEncodingInfo()

	n := info.BytesFor(250 * time.Millisecond)
	if n != 8000 {
		t.Fatalf("expected 8000 bytes for 250ms, got %d", n)
	}
	if got := info.DurationOf(n); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
}

func TestEncodingInfoZeroValue(t *testing.T) {
	if !(EncodingInfo{}).IsZero() {
		t.Fatalf("expected zero encoding info to report IsZero")
	}
	if got := (EncodingInfo{}).DurationOf(100); got != 0 {
		t.Fatalf("expected zero duration for unknown format, got %s", got)
	}
}

func TestParseFormat(t *testing.T) {
	if format, ok := ParseFormat("mulaw"); !ok || format != EncodingMulaw {
		t.Fatalf("expected mulaw to parse, got %q %t", format, ok)
	}
	if _, ok := ParseFormat("opus"); ok {
		t.Fatalf("expected opus to be rejected")
	}
}

func TestSilenceValue(t *testing.T) {
	cases := map[encodingFormat]byte{
		EncodingALaw:     0x55,
		EncodingMulaw:    0xFF,
		EncodingLinear16: 0,
	}
	for format, want := range cases {
		if got := (EncodingInfo{SampleRate: 8000, Format: format}).SilenceValue(); got != want {
			t.Fatalf("expected silence %#x for %s, got %#x", want, format, got)
		}
	}
}
