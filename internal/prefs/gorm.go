package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anantbhadani/CareerCraft/internal/database"
)

// GormKV keeps records in the preferences table, one row per workspace and key.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (g *GormKV) Get(ctx context.Context, workspace, key string) ([]byte, error) {
	var pref database.Preference
	err := g.db.WithContext(ctx).
		Where(&database.Preference{Workspace: workspace, Key: key}).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query preference %s: %w", key, err)
	}
	return []byte(pref.Value), nil
}

// Set upserts the row for workspace and key.
func (g *GormKV) Set(ctx context.Context, workspace, key string, value []byte) error {
	pref := database.Preference{
		Workspace: workspace,
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "workspace"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&pref).Error
	if err != nil {
		return fmt.Errorf("upsert preference %s: %w", key, err)
	}
	return nil
}

func (g *GormKV) Delete(ctx context.Context, workspace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := g.db.WithContext(ctx).
		Where("workspace = ? AND record_key IN ?", workspace, keys).
		Delete(&database.Preference{}).Error
	if err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
