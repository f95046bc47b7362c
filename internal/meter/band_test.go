package meter

import "testing"

func TestBandFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{100, BandSuccess},
		{80, BandSuccess},
		{79.5, BandSuccess},
		{79.4, BandPrimary},
		{72, BandPrimary},
		{60, BandPrimary},
		{59.49, BandWarning},
		{39.5, BandWarning},
		{39.4, BandDanger},
		{0, BandDanger},
		{-0.5, BandDanger},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{72.5: 73, 72.49: 72, -0.5: 0, -1.5: -1, 0.5: 1}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(72)
	if s.Score != 72 || s.Band != BandPrimary || s.Color != "#38BDF8" {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Verdict != "Good job! Minor improvements can boost your score." {
		t.Fatalf("unexpected verdict %q", s.Verdict)
	}
}

func TestThresholdBandUsesRawScore(t *testing.T) {
	if got := ThresholdBand(79.6); got != BandPrimary {
		t.Fatalf("ThresholdBand(79.6) = %q, want primary", got)
	}
	if got := BandFor(79.6); got != BandSuccess {
		t.Fatalf("BandFor(79.6) = %q, want success", got)
	}
}

func TestClamp(t *testing.T) {
	cases := map[float64]float64{-3: 0, 0: 0, 55.5: 55.5, 100: 100, 1e19: 100, -1e19: 0}
	for in, want := range cases {
		if got := Clamp(in); got != want {
			t.Errorf("Clamp(%v) = %v, want %v", in, got, want)
		}
	}
	if got := Summarize(1e19); got.Score != 100 || got.Band != BandSuccess {
		t.Fatalf("unexpected summary %+v", got)
	}
}
