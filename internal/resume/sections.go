package resume

// Section names a resume section in display order.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Sections lists the sections the analysis may report, in the order they are shown.
var Sections = []Section{
	{Key: "contact", Title: "Contact Information"},
	{Key: "summary", Title: "Professional Summary"},
	{Key: "experience", Title: "Work Experience"},
	{Key: "skills", Title: "Skills Section"},
	{Key: "education", Title: "Education"},
	{Key: "formatting", Title: "Formatting & Structure"},
}

// SectionView pairs a section title with its report.
type SectionView struct {
	Section
	SectionReport
	LooksGreat bool `json:"looksGreat"`
}

// OrderedSections returns the reported sections in display order, skipping absent ones.
func (r *AnalysisResult) OrderedSections() []SectionView {
	views := make([]SectionView, 0, len(Sections))
	if r == nil || len(r.SectionAnalysis) == 0 {
		return views
	}
	for _, s := range Sections {
		report, ok := r.SectionAnalysis[s.Key]
		if !ok {
			continue
		}
		views = append(views, SectionView{
			Section:       s,
			SectionReport: report,
			LooksGreat:    report.Status == SectionGood && len(report.Issues) == 0,
		})
	}
	return views
}
