package tutor

import (
	"context"
	"sync"
)

// Platform is the speech device shared by every player in the process. Only
// one lease holds it at a time; acquiring a new lease cancels the holder.
type Platform struct {
	mu     sync.Mutex
	holder *Lease
}

// DefaultPlatform is shared by players that are not given their own.
var DefaultPlatform = NewPlatform()

func NewPlatform() *Platform {
	return &Platform{}
}

// Lease is one player's hold on the platform.
type Lease struct {
	platform *Platform
	cancel   context.CancelFunc
}

// Acquire takes the platform, cancelling whoever held it.
func (p *Platform) Acquire(cancel context.CancelFunc) *Lease {
	lease := &Lease{platform: p, cancel: cancel}

	p.mu.Lock()
	previous := p.holder
	p.holder = lease
	p.mu.Unlock()

	if previous != nil && previous.cancel != nil {
		previous.cancel()
	}
	return lease
}

// Release gives the platform back. It is a no-op once another lease has
// taken over.
func (l *Lease) Release() {
	if l == nil || l.platform == nil {
		return
	}

	l.platform.mu.Lock()
	defer l.platform.mu.Unlock()
	if l.platform.holder == l {
		l.platform.holder = nil
	}
}

// held reports whether the lease still owns the platform.
func (l *Lease) held() bool {
	if l == nil || l.platform == nil {
		return false
	}

	l.platform.mu.Lock()
	defer l.platform.mu.Unlock()
	return l.platform.holder == l
}
