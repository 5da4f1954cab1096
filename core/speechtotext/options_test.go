package speechtotext

import (
	"testing"
	"time"
)

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	if got := Normalize("  The Answer Is 8 \n"); got != "the answer is 8" {
		t.Fatalf("expected normalized transcript, got %q", got)
	}
}

func TestNewRecognizeOptionsDefaults(t *testing.T) {
	options := NewRecognizeOptions()

	if options.Locale != DefaultLocale {
		t.Fatalf("expected default locale %q, got %q", DefaultLocale, options.Locale)
	}
	if options.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout %s, got %s", DefaultTimeout, options.Timeout)
	}
}

func TestNewRecognizeOptionsIgnoresEmptyLocale(t *testing.T) {
	options := NewRecognizeOptions(WithLocale(""), WithTimeout(time.Second))

	if options.Locale != DefaultLocale {
		t.Fatalf("expected empty locale to be ignored, got %q", options.Locale)
	}
	if options.Timeout != time.Second {
		t.Fatalf("expected timeout override, got %s", options.Timeout)
	}
}
