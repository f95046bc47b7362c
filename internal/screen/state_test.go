package screen

import (
	"fmt"
	"testing"
)

func TestStateForgetsLeastRecentlyUsedWorkspace(t *testing.T) {
	state := newStateWithLimit(2)

	for _, ws := range []string{"a", "b"} {
		tok := state.issue(ws, scopeDashboard)
		if !state.commitAnalysis(tok, ws, &AnalysisView{}) {
			t.Fatalf("%s: commit should apply", ws)
		}
	}
	// Touch a so b becomes the oldest.
	if state.analysis("a") == nil {
		t.Fatal("a should be held")
	}
	tok := state.issue("c", scopeJobs)
	if !state.commitJobs(tok, "c", &JobsView{}) {
		t.Fatal("c: commit should apply")
	}

	if got := state.workspaces(); got != 2 {
		t.Fatalf("expected 2 workspaces, got %d", got)
	}
	if state.analysis("b") != nil {
		t.Fatal("b should have been evicted")
	}
	if state.analysis("a") == nil || state.jobResults("c") == nil {
		t.Fatal("a and c should be kept")
	}
}

func TestStateDoesNotGrowWithWorkspaceIDs(t *testing.T) {
	state := newStateWithLimit(8)

	for i := 0; i < 100; i++ {
		ws := fmt.Sprintf("ws-%d", i)
		tok := state.issue(ws, scopeJobs)
		state.commitJobs(tok, ws, &JobsView{})
		state.release(tok)

		failed := state.issue(ws, scopeDashboard)
		state.release(failed)
	}

	if got := state.workspaces(); got != 8 {
		t.Fatalf("expected state bounded at 8 workspaces, got %d", got)
	}
	if got := state.gens.Pending(); got != 0 {
		t.Fatalf("finished requests should leave no tokens behind, got %d", got)
	}
}

func TestDropSupersedesInFlightRequest(t *testing.T) {
	state := NewState()
	tok := state.issue("ws", scopeDashboard)
	state.Drop("ws")

	if state.commitAnalysis(tok, "ws", &AnalysisView{}) {
		t.Fatal("a request issued before Drop must not apply")
	}
	if state.analysis("ws") != nil {
		t.Fatal("nothing should be held after Drop")
	}
}
