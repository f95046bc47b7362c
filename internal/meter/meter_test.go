package meter

import (
	"context"
	"sync"
	"testing"
	"time"
)

type frameLog struct {
	mu     sync.Mutex
	frames []Frame
}

func (l *frameLog) add(f Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, f)
}

func (l *frameLog) snapshot() []Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Frame(nil), l.frames...)
}

func waitDone(t *testing.T, m *Meter) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("meter did not settle")
	}
}

func TestMeterSettlesOnRoundedScore(t *testing.T) {
	for _, score := range []float64{0, 1, 59.5, 72, 72.4, 99.99, 100} {
		log := &frameLog{}
		m := New(WithDuration(20*time.Millisecond), WithSteps(10), WithFrameFunc(log.add))
		m.Start(context.Background(), score)
		waitDone(t, m)

		frames := log.snapshot()
		if len(frames) == 0 {
			t.Fatalf("score %v: no frames emitted", score)
		}
		last := frames[len(frames)-1]
		if !last.Done || last.Value != Round(score) || last.Target != Round(score) {
			t.Fatalf("score %v: unexpected final frame %+v", score, last)
		}
		if last.Band != BandFor(score) || last.Verdict != Verdict(score) {
			t.Fatalf("score %v: final frame band %q verdict %q", score, last.Band, last.Verdict)
		}
		for i := 1; i < len(frames); i++ {
			if frames[i].Value < frames[i-1].Value {
				t.Fatalf("score %v: values went backwards: %+v", score, frames)
			}
			if frames[i-1].Done {
				t.Fatalf("score %v: frame after done", score)
			}
		}
		if m.State() != Settled {
			t.Fatalf("score %v: expected settled state, got %s", score, m.State())
		}
	}
}

func TestMeterClampsOutOfRangeScores(t *testing.T) {
	for score, want := range map[float64]int{1e19: 100, 250: 100, -40: 0} {
		log := &frameLog{}
		m := New(WithDuration(20*time.Millisecond), WithSteps(5), WithFrameFunc(log.add))
		m.Start(context.Background(), score)
		waitDone(t, m)

		frames := log.snapshot()
		if len(frames) == 0 {
			t.Fatalf("score %v: no frames emitted", score)
		}
		last := frames[len(frames)-1]
		if last.Value != want || last.Target != want {
			t.Fatalf("score %v: expected to settle at %d, got %+v", score, want, last)
		}
	}
}

func TestMeterStopSnapsToTargetWithoutFrames(t *testing.T) {
	log := &frameLog{}
	m := New(WithDuration(time.Second), WithSteps(10), WithFrameFunc(log.add))
	m.Start(context.Background(), 88)
	m.Stop()

	emitted := len(log.snapshot())
	snap := m.Snapshot()
	if snap.Value != 88 || !snap.Done || m.State() != Settled {
		t.Fatalf("expected snapped display, got %+v state=%s", snap, m.State())
	}

	time.Sleep(250 * time.Millisecond)
	if got := len(log.snapshot()); got != emitted {
		t.Fatalf("frames emitted after stop: before=%d after=%d", emitted, got)
	}
}

func TestMeterRestartReplacesPreviousRun(t *testing.T) {
	log := &frameLog{}
	m := New(WithDuration(40*time.Millisecond), WithSteps(8), WithFrameFunc(log.add))
	m.Start(context.Background(), 90)
	m.Start(context.Background(), 45)
	waitDone(t, m)

	frames := log.snapshot()
	last := frames[len(frames)-1]
	if last.Value != 45 || last.Band != BandWarning {
		t.Fatalf("expected the second run to win, got %+v", last)
	}
	for _, f := range frames {
		if f.Done && f.Target == 90 {
			t.Fatalf("first run should never settle: %+v", frames)
		}
	}
}

func TestMeterContextCancelSettlesSilently(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := New(WithDuration(time.Second), WithSteps(10))
	m.Start(ctx, 64)
	cancel()
	waitDone(t, m)

	if snap := m.Snapshot(); snap.Value != 64 || !snap.Done {
		t.Fatalf("expected settled snapshot, got %+v", snap)
	}
}

func TestIdleMeter(t *testing.T) {
	m := New()
	if m.State() != Idle {
		t.Fatalf("expected idle, got %s", m.State())
	}
	m.Stop()
	waitDone(t, m)
}
