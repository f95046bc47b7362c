package reqgen

import (
	"sync"
	"testing"
)

func TestLatestTokenWins(t *testing.T) {
	tr := NewTracker()
	first := tr.Issue("ws/jobs")
	second := tr.Issue("ws/jobs")

	if tr.IsCurrent(first) {
		t.Fatal("first token should be superseded")
	}
	applied := ""
	if tr.Apply(first, func() { applied = "first" }) {
		t.Fatal("stale token must not apply")
	}
	if !tr.Apply(second, func() { applied = "second" }) || applied != "second" {
		t.Fatalf("current token should apply, got %q", applied)
	}
}

func TestScopesAreIndependent(t *testing.T) {
	tr := NewTracker()
	a := tr.Issue("a/jobs")
	tr.Issue("b/jobs")
	if !tr.IsCurrent(a) {
		t.Fatal("issuing in another scope must not supersede")
	}
}

func TestInvalidateAndZeroToken(t *testing.T) {
	tr := NewTracker()
	tok := tr.Issue("ws/dashboard")
	tr.Invalidate("ws/dashboard")
	if tr.IsCurrent(tok) {
		t.Fatal("invalidated token should not be current")
	}
	if tr.IsCurrent(Token{}) {
		t.Fatal("zero token is never current")
	}
}

func TestConcurrentIssueKeepsOnlyOneCurrent(t *testing.T) {
	tr := NewTracker()
	tokens := make(chan Token, 50)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- tr.Issue("ws/jobs")
		}()
	}
	wg.Wait()
	close(tokens)

	current := 0
	for tok := range tokens {
		if tr.IsCurrent(tok) {
			current++
		}
	}
	if current != 1 {
		t.Fatalf("expected exactly one current token, got %d", current)
	}
}

func TestFinishedScopesAreForgotten(t *testing.T) {
	tr := NewTracker()

	stale := tr.Issue("a/jobs")
	applied := tr.Issue("a/jobs")
	failed := tr.Issue("b/jobs")
	if got := tr.Pending(); got != 2 {
		t.Fatalf("expected 2 pending scopes, got %d", got)
	}

	if !tr.Apply(applied, func() {}) {
		t.Fatal("current token should apply")
	}
	tr.Release(applied)
	tr.Release(failed)
	if got := tr.Pending(); got != 0 {
		t.Fatalf("expected no pending scopes, got %d", got)
	}

	if tr.Apply(stale, func() {}) || tr.IsCurrent(applied) {
		t.Fatal("tokens of a forgotten scope must not become current again")
	}
	next := tr.Issue("a/jobs")
	if tr.IsCurrent(stale) || !tr.IsCurrent(next) {
		t.Fatal("a fresh token must not revive older generations")
	}
}

func TestReleaseOfSupersededTokenKeepsNewer(t *testing.T) {
	tr := NewTracker()
	old := tr.Issue("ws/skills")
	newer := tr.Issue("ws/skills")

	tr.Release(old)
	if !tr.IsCurrent(newer) {
		t.Fatal("releasing an old token must not supersede the newer one")
	}
}
