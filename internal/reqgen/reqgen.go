// Package reqgen makes "last request wins" explicit. Every request issues a
// token for its scope; a response may only be applied while its token is
// still the newest one for that scope.
package reqgen

import "sync"

type Token struct {
	scope string
	gen   uint64
}

func (t Token) Scope() string { return t.scope }

// Tracker holds one entry per scope with a request in flight. Generations
// come from a single counter, so a scope whose entry was released never
// hands an old generation out again.
type Tracker struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{latest: map[string]uint64{}}
}

// Issue starts a new generation for scope, superseding earlier tokens.
func (t *Tracker) Issue(scope string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.latest[scope] = t.next
	return Token{scope: scope, gen: t.next}
}

func (t *Tracker) IsCurrent(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isCurrentLocked(tok)
}

func (t *Tracker) isCurrentLocked(tok Token) bool {
	return tok.gen != 0 && t.latest[tok.scope] == tok.gen
}

// Apply runs fn while holding the tracker lock, but only if tok is current.
// It reports whether fn ran. A token is spent once applied.
func (t *Tracker) Apply(tok Token, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.isCurrentLocked(tok) {
		return false
	}
	fn()
	delete(t.latest, tok.scope)
	return true
}

// Release marks the request behind tok as finished. The scope entry is
// dropped if tok is still the newest; releasing a superseded or applied
// token is a no-op.
func (t *Tracker) Release(tok Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isCurrentLocked(tok) {
		delete(t.latest, tok.scope)
	}
}

// Invalidate supersedes every outstanding token of scope.
func (t *Tracker) Invalidate(scope string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.latest, scope)
}

// Pending reports how many scopes have a request in flight.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.latest)
}
