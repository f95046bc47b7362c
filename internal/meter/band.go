package meter

import "math"

// Band classifies a score for colouring and the verdict line.
type Band string

const (
	BandSuccess Band = "success"
	BandPrimary Band = "primary"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

// Round rounds half up, so 79.5 becomes 80 and -0.5 becomes 0.
func Round(score float64) int {
	return int(math.Floor(score + 0.5))
}

// Score bounds. A meter never shows anything outside them.
const (
	MinScore = 0
	MaxScore = 100
)

// Clamp limits score to [MinScore, MaxScore]. NaN becomes MinScore.
func Clamp(score float64) float64 {
	if math.IsNaN(score) || score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// BandFor compares the rounded score against the band thresholds.
func BandFor(score float64) Band {
	return ThresholdBand(float64(Round(score)))
}

// ThresholdBand applies the band thresholds to score as given, without rounding.
func ThresholdBand(score float64) Band {
	switch {
	case score >= 80:
		return BandSuccess
	case score >= 60:
		return BandPrimary
	case score >= 40:
		return BandWarning
	default:
		return BandDanger
	}
}

// Color returns the hex colour of the band.
func (b Band) Color() string {
	switch b {
	case BandSuccess:
		return "#10b981"
	case BandPrimary:
		return "#38BDF8"
	case BandWarning:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// Verdict is the one-line summary shown under the meter.
func Verdict(score float64) string {
	switch BandFor(score) {
	case BandSuccess:
		return "Excellent! Your resume is highly ATS-friendly."
	case BandPrimary:
		return "Good job! Minor improvements can boost your score."
	case BandWarning:
		return "There's room for improvement. Focus on keywords and formatting."
	default:
		return "Your resume needs significant optimization for ATS systems."
	}
}

// Summary is the static view of a score: what the meter settles on.
type Summary struct {
	Score   int    `json:"score"`
	Band    Band   `json:"band"`
	Color   string `json:"color"`
	Verdict string `json:"verdict"`
}

// Summarize clamps score to the meter range before classifying it.
func Summarize(score float64) Summary {
	score = Clamp(score)
	band := BandFor(score)
	return Summary{
		Score:   Round(score),
		Band:    band,
		Color:   band.Color(),
		Verdict: Verdict(score),
	}
}
