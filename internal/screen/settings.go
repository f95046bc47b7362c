package screen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/resume"
)

// ExportFilename is the name of the downloaded data file.
const ExportFilename = "careercraft-data.json"

type Settings struct {
	store  *prefs.Store
	state  *State
	blobs  BlobStore
	logger *slog.Logger
}

// NewSettings wires the settings screen. blobs may be nil.
func NewSettings(store *prefs.Store, state *State, blobs BlobStore, logger *slog.Logger) *Settings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Settings{
		store:  store,
		state:  state,
		blobs:  blobs,
		logger: logger.With(slog.String("screen", "settings")),
	}
}

type SettingsView struct {
	Theme              string `json:"theme"`
	PrivacyMode        bool   `json:"privacyMode"`
	PrivacyDescription string `json:"privacyDescription"`
	// ThemeApplied stays false: the stored theme is not used for rendering yet.
	ThemeApplied bool    `json:"themeApplied"`
	Notice       *Notice `json:"notice,omitempty"`
}

func (s *Settings) Open(ctx context.Context, workspace string) (*SettingsView, error) {
	settings, err := s.store.Settings(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return newSettingsView(settings), nil
}

func newSettingsView(settings resume.Settings) *SettingsView {
	description := "Data may be synced to cloud (if enabled)"
	if settings.PrivacyMode {
		description = "Your data is stored locally only"
	}
	return &SettingsView{
		Theme:              settings.Theme,
		PrivacyMode:        settings.PrivacyMode,
		PrivacyDescription: description,
	}
}

func (s *Settings) ToggleTheme(ctx context.Context, workspace string) (*SettingsView, error) {
	settings, err := s.store.Settings(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.Theme == resume.ThemeDark {
		settings.Theme = resume.ThemeLight
	} else {
		settings.Theme = resume.ThemeDark
	}
	if err := s.store.SaveTheme(ctx, workspace, settings.Theme); err != nil {
		return nil, fmt.Errorf("save theme: %w", err)
	}
	view := newSettingsView(settings)
	view.Notice = success("Theme switched to " + settings.Theme)
	return view, nil
}

func (s *Settings) TogglePrivacy(ctx context.Context, workspace string) (*SettingsView, error) {
	settings, err := s.store.Settings(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings.PrivacyMode = !settings.PrivacyMode
	if err := s.store.SavePrivacyMode(ctx, workspace, settings.PrivacyMode); err != nil {
		return nil, fmt.Errorf("save privacy mode: %w", err)
	}
	state := "disabled"
	if settings.PrivacyMode {
		state = "enabled"
	}
	view := newSettingsView(settings)
	view.Notice = success("Privacy mode " + state)
	return view, nil
}

// ClearData removes every stored record of the workspace, forgets the
// in-memory screen state and deletes exported documents.
func (s *Settings) ClearData(ctx context.Context, workspace string) (*SettingsView, error) {
	if err := s.store.ClearAll(ctx, workspace); err != nil {
		return nil, err
	}
	s.state.Drop(workspace)
	if s.blobs != nil {
		if err := s.blobs.DeletePrefix(ctx, exportPrefix(workspace)); err != nil {
			s.logger.Warn("delete exports failed", slog.String("workspace", workspace), slog.Any("error", err))
		}
	}
	view := newSettingsView(resume.Settings{Theme: resume.ThemeDark, PrivacyMode: true})
	view.Notice = success("All data cleared")
	return view, nil
}

// DataFile is the downloadable copy of a workspace's records.
type DataFile struct {
	Filename string
	Data     []byte
	Notice   *Notice
}

func (s *Settings) ExportData(ctx context.Context, workspace string) (*DataFile, error) {
	exported, err := s.store.Export(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}
	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return &DataFile{
		Filename: ExportFilename,
		Data:     data,
		Notice:   success("Data exported successfully"),
	}, nil
}
