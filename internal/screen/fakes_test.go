package screen

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/resume"
)

func newTestStore() *prefs.Store {
	return prefs.NewStore(prefs.NewMemoryKV(), nil, 0)
}

type fakeAnalysis struct {
	calls   atomic.Int32
	result  *resume.AnalysisResult
	blob    *analysis.Blob
	err     error
	lastReq analysis.AnalyzeRequest
}

func (f *fakeAnalysis) AnalyzeResume(_ context.Context, req analysis.AnalyzeRequest) (*resume.AnalysisResult, error) {
	f.calls.Add(1)
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAnalysis) ExportResume(context.Context, any) (*analysis.Blob, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.blob, nil
}

type fakeScanner struct{ err error }

func (f fakeScanner) Scan(context.Context, []byte) error { return f.err }

type fakeBlobs struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deleted  []string
	presigns []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) Put(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeBlobs) PresignedURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presigns = append(f.presigns, key)
	return "https://blobs.example.com/" + key + "?sig=abc", nil
}

func (f *fakeBlobs) DeletePrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, prefix)
	return nil
}

// fakeJobs answers each call through respond, which may block.
type fakeJobs struct {
	calls   atomic.Int32
	respond func(call int32, resumeText, location string) (*resume.JobRecommendations, error)
}

func (f *fakeJobs) GetJobRecommendations(_ context.Context, resumeText, location string, _ int) (*resume.JobRecommendations, error) {
	call := f.calls.Add(1)
	return f.respond(call, resumeText, location)
}

type fakeSkills struct {
	calls   atomic.Int32
	records []resume.SkillRecord
	err     error
}

func (f *fakeSkills) GetSkillRecommendations(context.Context, []string) ([]resume.SkillRecord, error) {
	f.calls.Add(1)
	return f.records, f.err
}
