package screen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/meter"
	"github.com/anantbhadani/CareerCraft/internal/resume"
)

const (
	cardMatchedSkills = 5
	cardMissingSkills = 3
)

type JobRecommender interface {
	GetJobRecommendations(ctx context.Context, resumeText, location string, limit int) (*resume.JobRecommendations, error)
}

// ResumeTextSource supplies the resume text cached by the last analysis.
type ResumeTextSource interface {
	LastResumeText(ctx context.Context, workspace string) (string, error)
}

type Jobs struct {
	client JobRecommender
	source ResumeTextSource
	state  *State
	limit  int
	logger *slog.Logger
}

// NewJobs wires the jobs screen. limit <= 0 lets the client pick its default.
func NewJobs(client JobRecommender, source ResumeTextSource, state *State, limit int, logger *slog.Logger) *Jobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jobs{
		client: client,
		source: source,
		state:  state,
		limit:  limit,
		logger: logger.With(slog.String("screen", "jobs")),
	}
}

// JobCard is a listing plus what the card renders from it.
type JobCard struct {
	resume.JobListing
	Band       meter.Band `json:"band"`
	Color      string     `json:"color"`
	TopMatched []string   `json:"topMatched"`
	TopMissing []string   `json:"topMissing"`
}

type JobsView struct {
	HasResume     bool      `json:"hasResume"`
	NeedsAnalysis bool      `json:"needsAnalysis"`
	Location      string    `json:"location"`
	Jobs          []JobCard `json:"jobs"`
	Notice        *Notice   `json:"notice,omitempty"`
}

// Open does not search on its own. It only reports whether a cached resume
// is available and shows the last results.
func (j *Jobs) Open(ctx context.Context, workspace string) (*JobsView, error) {
	text, err := j.source.LastResumeText(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load cached resume: %w", err)
	}

	view := &JobsView{Jobs: []JobCard{}}
	if last := j.state.jobResults(workspace); last != nil {
		view.Location = last.Location
		view.Jobs = last.Jobs
	}
	if strings.TrimSpace(text) == "" {
		view.NeedsAnalysis = true
		view.Notice = info("Please analyze a resume in Dashboard first")
		return view, nil
	}
	view.HasResume = true
	return view, nil
}

// Search asks for jobs matching resumeText, or the cached resume when it is blank.
func (j *Jobs) Search(ctx context.Context, workspace, resumeText, location string) (*JobsView, error) {
	if strings.TrimSpace(resumeText) == "" {
		cached, err := j.source.LastResumeText(ctx, workspace)
		if err != nil {
			return nil, fmt.Errorf("load cached resume: %w", err)
		}
		resumeText = cached
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, invalid("Please analyze a resume first or paste your resume text", nil)
	}

	tok := j.state.issue(workspace, scopeJobs)
	defer j.state.release(tok)
	recs, err := j.client.GetJobRecommendations(ctx, resumeText, strings.TrimSpace(location), j.limit)
	if err != nil {
		return nil, withMessage(err, analysis.FallbackMessage(analysis.OpJobs))
	}

	view := &JobsView{
		HasResume: true,
		Location:  strings.TrimSpace(location),
		Jobs:      make([]JobCard, 0, len(recs.Jobs)),
	}
	for _, job := range recs.Jobs {
		view.Jobs = append(view.Jobs, newJobCard(job))
	}
	if len(view.Jobs) == 0 {
		view.Notice = info("No matching jobs found. Try adjusting your skills or location.")
	} else {
		view.Notice = success(fmt.Sprintf("Found %d job recommendations!", len(view.Jobs)))
	}

	if !j.state.commitJobs(tok, workspace, view) {
		j.logger.Info("dropping superseded job search", slog.String("workspace", workspace))
		return nil, ErrSuperseded
	}
	return view, nil
}

// newJobCard bands the raw match score; only the meter rounds.
func newJobCard(job resume.JobListing) JobCard {
	band := meter.ThresholdBand(job.MatchScore)
	return JobCard{
		JobListing: job,
		Band:       band,
		Color:      band.Color(),
		TopMatched: firstN(job.MatchedSkills, cardMatchedSkills),
		TopMissing: firstN(job.MissingSkills, cardMissingSkills),
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return append([]string{}, items...)
}
