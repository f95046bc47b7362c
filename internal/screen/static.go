package screen

type Link struct {
	Path        string `json:"path"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type HeroView struct {
	Headline     []string  `json:"headline"`
	Tagline      string    `json:"tagline"`
	CallToAction Link      `json:"callToAction"`
	Features     []Feature `json:"features"`
}

// Hero is the landing page.
func Hero() HeroView {
	return HeroView{
		Headline: []string{"Get Past the Bots.", "Build Your Career Smarter."},
		Tagline: "Analyze resumes for ATS compatibility, compare with job descriptions, " +
			"and unlock personalized skill development insights.",
		CallToAction: Link{Path: "/dashboard", Label: "Start Scan", Description: "Analyze your resume"},
		Features: []Feature{
			{Title: "Instant Analysis", Description: "Get ATS scores in seconds"},
			{Title: "Keyword Matching", Description: "Find missing critical skills"},
			{Title: "Skill Growth", Description: "Personalized learning paths"},
			{Title: "Privacy First", Description: "Your data stays secure"},
		},
	}
}

type NotFoundView struct {
	Status     int    `json:"status"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Path       string `json:"path"`
	QuickLinks []Link `json:"quickLinks"`
}

// NotFound is shown for any path no screen handles.
func NotFound(path string) NotFoundView {
	return NotFoundView{
		Status:  404,
		Title:   "Page Not Found",
		Message: "The page you're looking for seems to have wandered off. Here are some ways back.",
		Path:    path,
		QuickLinks: []Link{
			{Path: "/", Label: "Home", Description: "Go to homepage"},
			{Path: "/dashboard", Label: "Dashboard", Description: "Analyze your resume"},
			{Path: "/jobs", Label: "Jobs", Description: "Find opportunities"},
		},
	}
}
