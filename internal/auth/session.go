package auth

import (
	"sync"

	"github.com/campus-connect/campus-events-api/internal/models"
)

// Identity is the opaque handle for an authenticated principal.
type Identity struct {
	ID    string
	Email string
}

// Session is the resolved (identity, role) pair for the current caller.
// Resolved=false means resolution has not finished and no allow/deny decision
// may be made from it.
type Session struct {
	Identity *Identity
	Role     models.Role
	Resolved bool
}

// Decision is the outcome of gating a request against a session.
type Decision int

const (
	// DecisionWait: the session is not resolved yet; neither allow nor deny.
	DecisionWait Decision = iota
	// DecisionDenyUnauthenticated: no identity; the caller belongs at sign-in.
	DecisionDenyUnauthenticated
	// DecisionDenyForbidden: authenticated but the role is not permitted;
	// the caller belongs at the default landing view.
	DecisionDenyForbidden
	// DecisionAllow: render the guarded view.
	DecisionAllow
)

// Authorize gates a session against an optional set of required roles. It is
// pure and must be re-evaluated on every request; sessions change underneath.
func Authorize(s Session, required ...models.Role) Decision {
	if !s.Resolved {
		return DecisionWait
	}
	if s.Identity == nil {
		return DecisionDenyUnauthenticated
	}
	if len(required) > 0 {
		for _, r := range required {
			if s.Role == r {
				return DecisionAllow
			}
		}
		return DecisionDenyForbidden
	}
	return DecisionAllow
}

// Broadcaster fans the latest session out to subscribers whenever the auth
// state changes. Delivery is last-write-wins: a slow subscriber sees only the
// most recent session, never a backlog.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Session]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Session]struct{})}
}

// Subscribe returns a channel carrying session updates and a cancel func that
// releases it.
func (b *Broadcaster) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish replaces any undelivered session with s for every subscriber.
func (b *Broadcaster) Publish(s Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- s:
		default:
			// Drop the stale value, keep the latest.
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}
