package service

import (
	"context"
	"log/slog"

	"github.com/forgo/community/api/internal/model"
)

// SettingsRepository defines the interface for site-wide settings
type SettingsRepository interface {
	// GetBool reports found=false when the key was never written
	GetBool(ctx context.Context, key string) (value bool, found bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
	// ToggleBool flips the stored value, starting from def when unset
	ToggleBool(ctx context.Context, key string, def bool) (bool, error)
}

// SiteService handles the under-construction flag
type SiteService struct {
	repo                     SettingsRepository
	defaultUnderConstruction bool
}

// SiteServiceConfig holds configuration for the site service
type SiteServiceConfig struct {
	Repo SettingsRepository
	// UnderConstruction is the flag value until an administrator sets one
	UnderConstruction bool
}

// NewSiteService creates a new site service
func NewSiteService(cfg SiteServiceConfig) *SiteService {
	return &SiteService{
		repo:                     cfg.Repo,
		defaultUnderConstruction: cfg.UnderConstruction,
	}
}

// Status returns the public site flags
func (s *SiteService) Status(ctx context.Context) (*model.SiteStatus, error) {
	value, found, err := s.repo.GetBool(ctx, model.SettingUnderConstruction)
	if err != nil {
		return nil, err
	}
	if !found {
		value = s.defaultUnderConstruction
	}
	return &model.SiteStatus{UnderConstruction: value}, nil
}

// SetUnderConstruction stores the flag. A nil value is rejected.
func (s *SiteService) SetUnderConstruction(ctx context.Context, value *bool) (*model.SiteStatus, error) {
	if value == nil {
		return nil, ErrUnderConstructionRequired
	}
	if err := s.repo.SetBool(ctx, model.SettingUnderConstruction, *value); err != nil {
		return nil, err
	}
	slog.Info("site status changed", slog.Bool("under_construction", *value))
	return &model.SiteStatus{UnderConstruction: *value}, nil
}

// ToggleUnderConstruction flips the flag
func (s *SiteService) ToggleUnderConstruction(ctx context.Context) (*model.SiteStatus, error) {
	value, err := s.repo.ToggleBool(ctx, model.SettingUnderConstruction, s.defaultUnderConstruction)
	if err != nil {
		return nil, err
	}
	slog.Info("site status changed", slog.Bool("under_construction", value))
	return &model.SiteStatus{UnderConstruction: value}, nil
}
