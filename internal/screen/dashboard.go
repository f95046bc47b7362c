package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/extract"
	"github.com/anantbhadani/CareerCraft/internal/meter"
	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/resume"
	"github.com/anantbhadani/CareerCraft/internal/upload"
)

// ExportLinkExpiry is how long a presigned export link stays valid.
const ExportLinkExpiry = 15 * time.Minute

const maxJobTitleRunes = 60

// AnalysisService is the part of the analysis API the dashboard uses.
type AnalysisService interface {
	AnalyzeResume(ctx context.Context, req analysis.AnalyzeRequest) (*resume.AnalysisResult, error)
	ExportResume(ctx context.Context, optimized any) (*analysis.Blob, error)
}

// BlobStore keeps exported documents. storage.Client implements it.
type BlobStore interface {
	Put(ctx context.Context, objectKey string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectKey, filename string, expiry time.Duration) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

type Dashboard struct {
	client  AnalysisService
	store   *prefs.Store
	state   *State
	scanner upload.Scanner
	blobs   BlobStore
	logger  *slog.Logger
}

// NewDashboard wires the dashboard. scanner and blobs may be nil.
func NewDashboard(client AnalysisService, store *prefs.Store, state *State, scanner upload.Scanner, blobs BlobStore, logger *slog.Logger) *Dashboard {
	if scanner == nil {
		scanner = upload.NopScanner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		client:  client,
		store:   store,
		state:   state,
		scanner: scanner,
		blobs:   blobs,
		logger:  logger.With(slog.String("screen", "dashboard")),
	}
}

type UploadRules struct {
	Accept   []string `json:"accept"`
	MaxBytes int64    `json:"maxBytes"`
}

// AnalysisView is a finished analysis as the dashboard shows it.
type AnalysisView struct {
	Result   *resume.AnalysisResult `json:"result"`
	Meter    meter.Summary          `json:"meter"`
	Sections []resume.SectionView   `json:"sections"`
	Notice   *Notice                `json:"notice,omitempty"`
}

type DashboardView struct {
	Analysis *AnalysisView `json:"analysis"`
	Upload   UploadRules   `json:"upload"`
}

// Current returns the analysis on display for workspace, if any.
func (d *Dashboard) Current(workspace string) DashboardView {
	return DashboardView{
		Analysis: d.state.analysis(workspace),
		Upload: UploadRules{
			Accept:   []string{".pdf", ".docx"},
			MaxBytes: upload.MaxFileBytes,
		},
	}
}

type AnalyzeInput struct {
	ResumeText     string
	File           *analysis.File
	JobDescription string
}

// Analyze validates the input, sends it to the analysis API and keeps the
// result on display. The resume text and a scan entry are saved on a best
// effort basis; a storage failure never fails a finished analysis.
func (d *Dashboard) Analyze(ctx context.Context, workspace string, in AnalyzeInput) (*AnalysisView, error) {
	if in.File != nil {
		in.File.ContentType = upload.DetectContentType(in.File.ContentType, in.File.Data)
		if err := upload.Validate(in.File.Name, in.File.ContentType, int64(len(in.File.Data))); err != nil {
			return nil, fileRejection(err)
		}
	}

	req := analysis.AnalyzeRequest{
		ResumeText:     in.ResumeText,
		File:           in.File,
		JobDescription: in.JobDescription,
	}
	if err := req.Validate(); err != nil {
		switch {
		case errors.Is(err, analysis.ErrResumeMissing):
			return nil, invalid("Please upload a resume or paste text", err)
		case errors.Is(err, analysis.ErrJobDescriptionMissing):
			return nil, invalid("Please enter a job description", err)
		}
		return nil, invalid(err.Error(), err)
	}

	if in.File != nil {
		if err := d.scanner.Scan(ctx, in.File.Data); err != nil {
			if errors.Is(err, upload.ErrInfected) {
				return nil, invalid("Malicious file detected", err)
			}
			return nil, fmt.Errorf("scan upload: %w", err)
		}
	}

	tok := d.state.issue(workspace, scopeDashboard)
	defer d.state.release(tok)
	result, err := d.client.AnalyzeResume(ctx, req)
	if err != nil {
		return nil, err
	}

	view := &AnalysisView{
		Result:   result,
		Meter:    meter.Summarize(result.ATSScore),
		Sections: result.OrderedSections(),
		Notice:   success("Analysis complete!"),
	}
	if !d.state.commitAnalysis(tok, workspace, view) {
		return nil, ErrSuperseded
	}

	d.remember(ctx, workspace, in, result)
	return view, nil
}

func fileRejection(err error) error {
	switch {
	case errors.Is(err, upload.ErrUnsupportedType):
		return invalid("Please upload a PDF or DOCX file", err)
	case errors.Is(err, upload.ErrTooLarge):
		return invalid("File size must be less than 5MB", err)
	}
	return invalid(err.Error(), err)
}

// remember caches the resume text for the jobs screen and records the scan.
func (d *Dashboard) remember(ctx context.Context, workspace string, in AnalyzeInput, result *resume.AnalysisResult) {
	log := d.logger.With(slog.String("workspace", workspace))

	text := in.ResumeText
	if in.File != nil {
		extracted, err := extract.ResumeText(upload.ExtractionType(in.File.Name, in.File.ContentType), in.File.Data)
		if err != nil {
			log.Warn("extract resume text failed", slog.String("file", in.File.Name), slog.Any("error", err))
		} else {
			text = extracted
		}
	}
	if strings.TrimSpace(text) != "" {
		if err := d.store.SaveLastResumeText(ctx, workspace, text); err != nil {
			log.Warn("cache resume text failed", slog.Any("error", err))
		}
	}

	entry := resume.ScanEntry{JobTitle: jobTitle(in.JobDescription), Score: result.ATSScore}
	if err := d.store.AppendScan(ctx, workspace, entry); err != nil {
		log.Warn("record scan failed", slog.Any("error", err))
	}
}

// jobTitle uses the first non-empty line of the job description.
func jobTitle(description string) string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxJobTitleRunes {
			line = strings.TrimSpace(string([]rune(line)[:maxJobTitleRunes])) + "…"
		}
		return line
	}
	return ""
}

// ExportResult carries either a download link or the document itself.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	URL         string `json:"url,omitempty"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
	Data        []byte `json:"-"`
}

// Export asks the analysis API to render the optimized resume. With a blob
// store configured the document is uploaded and a presigned link returned.
func (d *Dashboard) Export(ctx context.Context, workspace string, optimized any) (*ExportResult, error) {
	if optimized == nil {
		return nil, invalid("Nothing to export", nil)
	}
	blob, err := d.client.ExportResume(ctx, optimized)
	if err != nil {
		return nil, err
	}

	contentType := upload.DetectContentType(blob.ContentType, blob.Data)
	out := &ExportResult{
		Filename:    "optimized-resume" + exportExtension(contentType),
		ContentType: contentType,
		Data:        blob.Data,
	}
	if d.blobs == nil {
		return out, nil
	}

	key := path.Join(exportPrefix(workspace), uuid.NewString()+exportExtension(contentType))
	if err := d.blobs.Put(ctx, key, blob.Data, contentType); err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}
	link, err := d.blobs.PresignedURL(ctx, key, out.Filename, ExportLinkExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign export link: %w", err)
	}
	out.URL = link
	out.ExpiresAt = time.Now().Add(ExportLinkExpiry).UTC().Format(time.RFC3339)
	out.Data = nil
	d.logger.Info("export stored", slog.String("workspace", workspace), slog.String("key", key))
	return out, nil
}

func exportPrefix(workspace string) string {
	return "exports/" + workspace + "/"
}

func exportExtension(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(mediaType) {
	case upload.MIMEPDF:
		return ".pdf"
	case upload.MIMEDOCX:
		return ".docx"
	case "text/plain":
		return ".txt"
	case "application/json":
		return ".json"
	default:
		return ".bin"
	}
}
