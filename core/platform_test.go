package tutor

import "testing"

func TestPlatformAcquirePreemptsHolder(t *testing.T) {
	platform := NewPlatform()

	cancelled := false
	first := platform.Acquire(func() { cancelled = true })
	second := platform.Acquire(func() {})

	if !cancelled {
		t.Fatalf("expected first holder to be cancelled")
	}
	if first.held() {
		t.Fatalf("expected first lease to be lost")
	}
	if !second.held() {
		t.Fatalf("expected second lease to hold the platform")
	}
}

func TestPlatformStaleReleaseIsNoop(t *testing.T) {
	platform := NewPlatform()

	first := platform.Acquire(func() {})
	second := platform.Acquire(func() {})
	first.Release()

	if !second.held() {
		t.Fatalf("expected stale release to leave the current holder in place")
	}

	second.Release()
	if second.held() {
		t.Fatalf("expected release to free the platform")
	}
}

func TestNilLeaseIsSafe(t *testing.T) {
	var lease *Lease
	lease.Release()
	if lease.held() {
		t.Fatalf("expected nil lease not to be held")
	}
}
