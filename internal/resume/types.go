package resume

// AnalysisResult is the payload returned by the remote analyze endpoint.
// Only the analysis screen holds it; nothing here is computed locally.
type AnalysisResult struct {
	ATSScore        float64                  `json:"atsScore"`
	MatchedKeywords []string                 `json:"matchedKeywords"`
	MissingKeywords []string                 `json:"missingKeywords"`
	MissingSkills   []string                 `json:"missingSkills,omitempty"`
	SoftSkillsScore Text                     `json:"softSkillsScore,omitempty"`
	Suggestions     []RewriteSuggestion      `json:"suggestions,omitempty"`
	SectionAnalysis map[string]SectionReport `json:"sectionAnalysis,omitempty"`
	ScoreBreakdown  *ScoreBreakdown          `json:"scoreBreakdown,omitempty"`
	GenAI           *AIFeedback              `json:"genAI,omitempty"`
}

// RewriteSuggestion proposes a replacement for a line of the resume.
type RewriteSuggestion struct {
	Current   string `json:"current"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason,omitempty"`
}

// Section statuses reported by the backend.
const (
	SectionGood             = "good"
	SectionNeedsImprovement = "needs_improvement"
	SectionCritical         = "critical"
)

// SectionReport is the per-section breakdown of the analysis.
type SectionReport struct {
	Status          string   `json:"status"`
	Score           float64  `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// ScoreBreakdown holds the sub-scores that make up the ATS score.
type ScoreBreakdown struct {
	Keywords    float64 `json:"keywords"`
	Formatting  float64 `json:"formatting"`
	ActionVerbs float64 `json:"actionVerbs"`
	SoftSkills  float64 `json:"softSkills"`
}

// AIFeedback is the optional generated-feedback block.
type AIFeedback struct {
	AIFeedback       bool              `json:"aiFeedback"`
	OverallSummary   string            `json:"overallSummary,omitempty"`
	Strengths        []string          `json:"strengths,omitempty"`
	Weaknesses       []string          `json:"weaknesses,omitempty"`
	ImprovementTips  []ImprovementTip  `json:"improvementTips,omitempty"`
	OptimizedPhrases []OptimizedPhrase `json:"optimizedPhrases,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty"`
}

type ImprovementTip struct {
	Category string `json:"category"`
	Tip      string `json:"tip"`
	Priority string `json:"priority,omitempty"`
}

type OptimizedPhrase struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
	Reason    string `json:"reason,omitempty"`
}

// JobListing is one entry of a job recommendation response.
type JobListing struct {
	ID            Text     `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Salary        string   `json:"salary,omitempty"`
	MatchScore    float64  `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
	Description   string   `json:"description,omitempty"`
	URL           string   `json:"url,omitempty"`
}

// JobRecommendations wraps the job list; an empty list is a valid answer.
type JobRecommendations struct {
	Jobs []JobListing `json:"jobs"`
}

// SkillStatus is the learning state of a tracked skill.
type SkillStatus string

const (
	StatusPending    SkillStatus = "pending"
	StatusInProgress SkillStatus = "in_progress"
	StatusMastered   SkillStatus = "mastered"
)

// Valid reports whether s is one of the known statuses.
func (s SkillStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusMastered:
		return true
	}
	return false
}

// SkillRecord is a tracked skill with its learning resources.
type SkillRecord struct {
	Name          string             `json:"name"`
	Status        SkillStatus        `json:"status"`
	Resources     []LearningResource `json:"resources"`
	GithubProject string             `json:"githubProject,omitempty"`
}

type LearningResource struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

// ProgressPoint is one sample of the mastered-skills chart.
type ProgressPoint struct {
	Date   string `json:"date"`
	Skills int    `json:"skills"`
}

// SkillProgress is stored as a whole under one key.
type SkillProgress struct {
	Skills   []SkillRecord   `json:"skills"`
	Progress []ProgressPoint `json:"progress"`
}

// UserProfile is the locally kept profile card.
type UserProfile struct {
	Name       string `json:"name"`
	Profession string `json:"profession"`
	Email      string `json:"email"`
	JoinedDate string `json:"joinedDate"`
}

// ScanEntry summarizes one successful analysis for the profile history.
type ScanEntry struct {
	JobTitle string  `json:"jobTitle"`
	Score    float64 `json:"score"`
	Date     string  `json:"date"`
}

// Theme names accepted by the settings screen.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings groups the two persisted toggles.
type Settings struct {
	Theme       string `json:"theme"`
	PrivacyMode bool   `json:"privacyMode"`
}
