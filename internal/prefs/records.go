package prefs

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anantbhadani/CareerCraft/internal/resume"
)

// DisplayDate is the layout used for dates shown on the profile screen.
const DisplayDate = "1/2/2006"

// MaxScanHistory bounds the scan history list; older entries fall off.
const MaxScanHistory = 50

// Profile defaults.
const (
	DefaultName       = "User"
	DefaultProfession = "Software Developer"
	DefaultEmail      = "user@example.com"
)

// DefaultProfile is the profile shown before anything was saved.
func (s *Store) DefaultProfile() resume.UserProfile {
	return resume.UserProfile{
		Name:       DefaultName,
		Profession: DefaultProfession,
		Email:      DefaultEmail,
		JoinedDate: s.now().Format(DisplayDate),
	}
}

// Profile loads the profile. Fields missing from the stored record take their
// default; fields stored as "" stay empty.
func (s *Store) Profile(ctx context.Context, workspace string) (resume.UserProfile, error) {
	def := s.DefaultProfile()

	p := def
	found, err := s.read(ctx, workspace, KeyUserProfile, &p)
	if err != nil || !found {
		return def, err
	}
	return p, nil
}

// SaveProfile overwrites the whole profile record.
func (s *Store) SaveProfile(ctx context.Context, workspace string, p resume.UserProfile) error {
	return s.write(ctx, workspace, KeyUserProfile, p)
}

// SkillProgress loads the tracked skills. found is false when nothing usable is stored.
func (s *Store) SkillProgress(ctx context.Context, workspace string) (progress resume.SkillProgress, found bool, err error) {
	found, err = s.read(ctx, workspace, KeySkillProgress, &progress)
	if err != nil || !found {
		return resume.SkillProgress{Skills: []resume.SkillRecord{}, Progress: []resume.ProgressPoint{}}, false, err
	}
	return normalizeProgress(progress), true, nil
}

// SaveSkillProgress overwrites the full collection; there is no per-skill patch.
func (s *Store) SaveSkillProgress(ctx context.Context, workspace string, progress resume.SkillProgress) error {
	return s.write(ctx, workspace, KeySkillProgress, normalizeProgress(progress))
}

func normalizeProgress(p resume.SkillProgress) resume.SkillProgress {
	if p.Skills == nil {
		p.Skills = []resume.SkillRecord{}
	}
	if p.Progress == nil {
		p.Progress = []resume.ProgressPoint{}
	}
	for i := range p.Skills {
		if !p.Skills[i].Status.Valid() {
			p.Skills[i].Status = resume.StatusPending
		}
		if p.Skills[i].Resources == nil {
			p.Skills[i].Resources = []resume.LearningResource{}
		}
	}
	return p
}

// ScanHistory returns past analyses, newest first.
func (s *Store) ScanHistory(ctx context.Context, workspace string) ([]resume.ScanEntry, error) {
	var history []resume.ScanEntry
	found, err := s.read(ctx, workspace, KeyScanHistory, &history)
	if err != nil || !found || history == nil {
		return []resume.ScanEntry{}, err
	}
	return history, nil
}

// AppendScan prepends entry to the history with a read-modify-write.
func (s *Store) AppendScan(ctx context.Context, workspace string, entry resume.ScanEntry) error {
	history, err := s.ScanHistory(ctx, workspace)
	if err != nil {
		return err
	}
	if entry.Date == "" {
		entry.Date = s.now().Format(DisplayDate)
	}
	history = append([]resume.ScanEntry{entry}, history...)
	if len(history) > MaxScanHistory {
		history = history[:MaxScanHistory]
	}
	return s.write(ctx, workspace, KeyScanHistory, history)
}

// Settings loads theme and privacy mode. The theme defaults to dark and
// privacy mode to on. A theme stored as a bare word, not a JSON string, is accepted.
func (s *Store) Settings(ctx context.Context, workspace string) (resume.Settings, error) {
	settings := resume.Settings{Theme: resume.ThemeDark, PrivacyMode: true}

	raw, err := s.readRaw(ctx, workspace, KeyTheme)
	if err != nil {
		return settings, err
	}
	if theme := decodeLooseString(raw); theme == resume.ThemeDark || theme == resume.ThemeLight {
		settings.Theme = theme
	}

	var privacy bool
	found, err := s.read(ctx, workspace, KeyPrivacyMode, &privacy)
	if err != nil {
		return settings, err
	}
	if found {
		settings.PrivacyMode = privacy
	}
	return settings, nil
}

func (s *Store) SaveTheme(ctx context.Context, workspace, theme string) error {
	return s.write(ctx, workspace, KeyTheme, theme)
}

func (s *Store) SavePrivacyMode(ctx context.Context, workspace string, enabled bool) error {
	return s.write(ctx, workspace, KeyPrivacyMode, enabled)
}

// LastResumeText returns the resume text cached by the last analysis, or "".
func (s *Store) LastResumeText(ctx context.Context, workspace string) (string, error) {
	raw, err := s.readRaw(ctx, workspace, KeyLastResumeText)
	if err != nil {
		return "", err
	}
	return decodeLooseString(raw), nil
}

func (s *Store) SaveLastResumeText(ctx context.Context, workspace, text string) error {
	return s.write(ctx, workspace, KeyLastResumeText, text)
}

// decodeLooseString reads a JSON string, falling back to the raw bytes for
// values written unquoted by older clients.
func decodeLooseString(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// DataExport is the downloadable copy of a workspace. Each field holds the
// stored JSON text of the record, or null when it was never written.
type DataExport struct {
	Profile *string `json:"profile"`
	Skills  *string `json:"skills"`
	Scans   *string `json:"scans"`
}

// Export collects the profile, skill and scan records as stored.
func (s *Store) Export(ctx context.Context, workspace string) (DataExport, error) {
	var out DataExport
	for key, dst := range map[string]**string{
		KeyUserProfile:   &out.Profile,
		KeySkillProgress: &out.Skills,
		KeyScanHistory:   &out.Scans,
	} {
		raw, err := s.readRaw(ctx, workspace, key)
		if err != nil {
			return DataExport{}, err
		}
		if raw != nil {
			text := string(raw)
			*dst = &text
		}
	}
	return out, nil
}
