package screen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/resume"
)

const progressDate = "2006-01-02"

// Card actions.
const (
	ActionStartLearning = "start_learning"
	ActionMarkMastered  = "mark_mastered"
)

type SkillRecommender interface {
	GetSkillRecommendations(ctx context.Context, missingSkills []string) ([]resume.SkillRecord, error)
}

type Skills struct {
	client SkillRecommender
	store  *prefs.Store
	state  *State
	logger *slog.Logger
	now    func() time.Time
}

func NewSkills(client SkillRecommender, store *prefs.Store, state *State, logger *slog.Logger) *Skills {
	if logger == nil {
		logger = slog.Default()
	}
	return &Skills{
		client: client,
		store:  store,
		state:  state,
		logger: logger.With(slog.String("screen", "skills")),
		now:    time.Now,
	}
}

type SkillCard struct {
	Index int `json:"index"`
	resume.SkillRecord
	Actions []string `json:"actions"`
}

type SkillsView struct {
	Skills   []SkillCard            `json:"skills"`
	Progress []resume.ProgressPoint `json:"progress"`
	// Sample is true while the list is the built-in example, not yet saved.
	Sample bool    `json:"sample"`
	Notice *Notice `json:"notice,omitempty"`
}

// SampleSkills is what a new workspace starts with.
func SampleSkills() resume.SkillProgress {
	return resume.SkillProgress{
		Skills: []resume.SkillRecord{
			{
				Name:   "Python Programming",
				Status: resume.StatusInProgress,
				Resources: []resume.LearningResource{
					{Name: "Python Crash Course", Type: "course", URL: "https://coursera.org", Platform: "Coursera"},
					{Name: "Learn Python", Type: "tutorial", URL: "https://freecodecamp.org", Platform: "freeCodeCamp"},
				},
				GithubProject: "Build a REST API using Flask",
			},
			{
				Name:   "React.js",
				Status: resume.StatusPending,
				Resources: []resume.LearningResource{
					{Name: "React Complete Guide", Type: "course", URL: "https://udemy.com", Platform: "Udemy"},
				},
				GithubProject: "Create a todo app with hooks",
			},
			{
				Name:   "Machine Learning",
				Status: resume.StatusPending,
				Resources: []resume.LearningResource{
					{Name: "ML Specialization", Type: "course", URL: "https://coursera.org", Platform: "Coursera"},
				},
				GithubProject: "Train a sentiment analysis model",
			},
		},
		Progress: []resume.ProgressPoint{},
	}
}

func (s *Skills) load(ctx context.Context, workspace string) (resume.SkillProgress, bool, error) {
	progress, found, err := s.store.SkillProgress(ctx, workspace)
	if err != nil {
		return resume.SkillProgress{}, false, fmt.Errorf("load skills: %w", err)
	}
	if !found {
		return SampleSkills(), true, nil
	}
	return progress, false, nil
}

func (s *Skills) Open(ctx context.Context, workspace string) (*SkillsView, error) {
	progress, sample, err := s.load(ctx, workspace)
	if err != nil {
		return nil, err
	}
	return newSkillsView(progress, sample), nil
}

// UpdateStatus moves the skill at index to in_progress or mastered and saves
// the whole collection. Mastered skills are final.
func (s *Skills) UpdateStatus(ctx context.Context, workspace string, index int, status resume.SkillStatus) (*SkillsView, error) {
	if status != resume.StatusInProgress && status != resume.StatusMastered {
		return nil, invalid("Status must be in_progress or mastered", nil)
	}

	progress, _, err := s.load(ctx, workspace)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(progress.Skills) {
		return nil, ErrSkillNotFound
	}
	if progress.Skills[index].Status == resume.StatusMastered {
		return nil, ErrSkillLocked
	}

	progress.Skills[index].Status = status
	progress.Progress = recordProgress(progress.Progress, s.now().Format(progressDate), masteredCount(progress.Skills))

	if err := s.store.SaveSkillProgress(ctx, workspace, progress); err != nil {
		return nil, fmt.Errorf("save skills: %w", err)
	}

	label := "in progress"
	if status == resume.StatusMastered {
		label = "mastered"
	}
	view := newSkillsView(progress, false)
	view.Notice = success("Skill marked as " + label)
	return view, nil
}

// Recommend fetches learning paths for missingSkills and adds the ones not
// tracked yet. Names are compared case-insensitively.
func (s *Skills) Recommend(ctx context.Context, workspace string, missingSkills []string) (*SkillsView, error) {
	names := make([]string, 0, len(missingSkills))
	for _, name := range missingSkills {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, invalid("Please provide at least one skill", nil)
	}

	tok := s.state.issue(workspace, scopeSkills)
	defer s.state.release(tok)
	records, err := s.client.GetSkillRecommendations(ctx, names)
	if err != nil {
		return nil, err
	}
	if !s.state.gens.IsCurrent(tok) {
		return nil, ErrSuperseded
	}

	progress, _, err := s.load(ctx, workspace)
	if err != nil {
		return nil, err
	}
	tracked := make(map[string]bool, len(progress.Skills))
	for _, skill := range progress.Skills {
		tracked[strings.ToLower(skill.Name)] = true
	}
	added := 0
	for _, record := range records {
		key := strings.ToLower(strings.TrimSpace(record.Name))
		if key == "" || tracked[key] {
			continue
		}
		tracked[key] = true
		progress.Skills = append(progress.Skills, record)
		added++
	}

	if added > 0 {
		if err := s.store.SaveSkillProgress(ctx, workspace, progress); err != nil {
			return nil, fmt.Errorf("save skills: %w", err)
		}
	}

	view := newSkillsView(progress, false)
	if added == 0 {
		view.Notice = info("All recommended skills are already tracked")
	} else {
		view.Notice = success(fmt.Sprintf("Added %d skills to your plan", added))
	}
	return view, nil
}

func newSkillsView(progress resume.SkillProgress, sample bool) *SkillsView {
	view := &SkillsView{
		Skills:   make([]SkillCard, 0, len(progress.Skills)),
		Progress: progress.Progress,
		Sample:   sample,
	}
	if view.Progress == nil {
		view.Progress = []resume.ProgressPoint{}
	}
	for i, skill := range progress.Skills {
		view.Skills = append(view.Skills, SkillCard{Index: i, SkillRecord: skill, Actions: actionsFor(skill.Status)})
	}
	return view
}

func actionsFor(status resume.SkillStatus) []string {
	if status == resume.StatusMastered {
		return []string{}
	}
	return []string{ActionStartLearning, ActionMarkMastered}
}

func masteredCount(skills []resume.SkillRecord) int {
	n := 0
	for _, skill := range skills {
		if skill.Status == resume.StatusMastered {
			n++
		}
	}
	return n
}

// recordProgress appends a chart point, replacing the one for the same date.
func recordProgress(points []resume.ProgressPoint, date string, mastered int) []resume.ProgressPoint {
	point := resume.ProgressPoint{Date: date, Skills: mastered}
	if n := len(points); n > 0 && points[n-1].Date == date {
		out := append([]resume.ProgressPoint{}, points...)
		out[n-1] = point
		return out
	}
	return append(append([]resume.ProgressPoint{}, points...), point)
}
