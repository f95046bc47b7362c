package screen

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/anantbhadani/CareerCraft/internal/reqgen"
)

const (
	scopeDashboard = "dashboard"
	scopeJobs      = "jobs"
	scopeSkills    = "skills"
)

// DefaultMaxWorkspaces bounds how many workspaces keep screen state in
// memory. The least recently used workspace is forgotten first.
const DefaultMaxWorkspaces = 1024

// State is the per-workspace screen state that lives only in memory: the
// result on display and the last job search. Writes go through generation
// tokens so an older response never replaces a newer one.
type State struct {
	gens *reqgen.Tracker

	mu    sync.Mutex
	views *lru.Cache
}

type workspaceViews struct {
	analysis *AnalysisView
	jobs     *JobsView
}

func NewState() *State {
	return newStateWithLimit(DefaultMaxWorkspaces)
}

func newStateWithLimit(maxWorkspaces int) *State {
	return &State{
		gens:  reqgen.NewTracker(),
		views: lru.New(maxWorkspaces),
	}
}

func scope(workspace, screen string) string {
	return workspace + "/" + screen
}

func (s *State) issue(workspace, screen string) reqgen.Token {
	return s.gens.Issue(scope(workspace, screen))
}

// release ends a request. Callers defer it right after issue.
func (s *State) release(tok reqgen.Token) {
	s.gens.Release(tok)
}

// apply runs fn under the state lock if tok is still the newest token.
func (s *State) apply(tok reqgen.Token, fn func()) bool {
	return s.gens.Apply(tok, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
}

func (s *State) commitAnalysis(tok reqgen.Token, workspace string, view *AnalysisView) bool {
	return s.apply(tok, func() { s.entryLocked(workspace).analysis = view })
}

func (s *State) commitJobs(tok reqgen.Token, workspace string, view *JobsView) bool {
	return s.apply(tok, func() { s.entryLocked(workspace).jobs = view })
}

// entryLocked returns the views of workspace, creating them if needed.
// s.mu must be held.
func (s *State) entryLocked(workspace string) *workspaceViews {
	if v, ok := s.views.Get(workspace); ok {
		return v.(*workspaceViews)
	}
	entry := &workspaceViews{}
	s.views.Add(workspace, entry)
	return entry
}

func (s *State) lookup(workspace string) *workspaceViews {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views.Get(workspace); ok {
		entry := *v.(*workspaceViews)
		return &entry
	}
	return &workspaceViews{}
}

func (s *State) analysis(workspace string) *AnalysisView {
	return s.lookup(workspace).analysis
}

func (s *State) jobResults(workspace string) *JobsView {
	return s.lookup(workspace).jobs
}

// workspaces reports how many workspaces currently hold screen state.
func (s *State) workspaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views.Len()
}

// Drop forgets everything held for workspace and supersedes in-flight requests.
func (s *State) Drop(workspace string) {
	for _, screen := range []string{scopeDashboard, scopeJobs, scopeSkills} {
		s.gens.Invalidate(scope(workspace, screen))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Remove(workspace)
}
