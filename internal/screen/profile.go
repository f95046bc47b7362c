package screen

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/resume"
)

// Editable profile fields.
const (
	FieldName       = "name"
	FieldProfession = "profession"
	FieldEmail      = "email"
)

type Profile struct {
	store *prefs.Store
}

func NewProfile(store *prefs.Store) *Profile {
	return &Profile{store: store}
}

type ProfileView struct {
	Profile resume.UserProfile `json:"profile"`
	Initial string             `json:"initial"`
	Scans   []resume.ScanEntry `json:"scans"`
	Notice  *Notice            `json:"notice,omitempty"`
}

func (p *Profile) Open(ctx context.Context, workspace string) (*ProfileView, error) {
	profile, err := p.store.Profile(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	scans, err := p.store.ScanHistory(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load scan history: %w", err)
	}
	return &ProfileView{Profile: profile, Initial: initial(profile.Name), Scans: scans}, nil
}

// Update sets one field and writes the whole profile back at once.
func (p *Profile) Update(ctx context.Context, workspace, field, value string) (*ProfileView, error) {
	profile, err := p.store.Profile(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	switch field {
	case FieldName:
		profile.Name = value
	case FieldProfession:
		profile.Profession = value
	case FieldEmail:
		profile.Email = value
	default:
		return nil, invalid(fmt.Sprintf("Unknown profile field %q", field), nil)
	}

	if err := p.store.SaveProfile(ctx, workspace, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	view, err := p.Open(ctx, workspace)
	if err != nil {
		return nil, err
	}
	view.Notice = success("Profile updated!")
	return view, nil
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
